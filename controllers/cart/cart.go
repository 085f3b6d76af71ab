package cartControllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
	ErrProductInactive = errors.New("product is not active")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// InsufficientStockError names the offending product so the message can be
// surfaced as-is.
type InsufficientStockError struct {
	ProductID uint
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (available: %d)", e.Title, e.Available)
}

// ResolveCartByUser returns the user's newest cart, creating an empty one
// when none exists. Carts are not unique per owner; newest wins.
func ResolveCartByUser(db *gorm.DB, userID string) (*models.Cart, error) {
	return resolveCart(db, "user_id = ?", userID, &models.Cart{UserID: &userID})
}

// ResolveCartBySession is the anonymous-channel counterpart of
// ResolveCartByUser.
func ResolveCartBySession(db *gorm.DB, sessionID string) (*models.Cart, error) {
	return resolveCart(db, "session_id = ?", sessionID, &models.Cart{SessionID: &sessionID})
}

func resolveCart(db *gorm.DB, query string, arg string, blank *models.Cart) (*models.Cart, error) {
	var cart models.Cart
	err := preloaded(db).Where(query, arg).Order("created_at DESC").First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	blank.ID = uuid.NewString()
	blank.DeliveryType = models.DeliveryPickup
	if err := db.Create(blank).Error; err != nil {
		return nil, err
	}
	blank.Items = []models.CartItem{}
	return blank, nil
}

// AddItem puts quantity units of a product into the cart. An existing line
// for the product accumulates quantity; its subtotal is recomputed from the
// current product price. Stock is checked against the absolute product
// stock, not against other carts; nothing is reserved until order time.
func AddItem(db *gorm.DB, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	var cart models.Cart
	if err := db.First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if !product.Active {
		return nil, ErrProductInactive
	}
	if product.Stock < quantity {
		return nil, &InsufficientStockError{ProductID: product.ID, Title: product.Title, Available: product.Stock}
	}

	var item models.CartItem
	err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		item.SubTotal = product.Price * float64(item.Quantity)
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			SubTotal:  product.Price * float64(quantity),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := recomputeTotal(db, cartID); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity replaces the line's quantity and recomputes its
// subtotal from the current product price.
func UpdateItemQuantity(db *gorm.DB, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.Stock < quantity {
		return nil, &InsufficientStockError{ProductID: product.ID, Title: product.Title, Available: product.Stock}
	}

	item.Quantity = quantity
	item.SubTotal = product.Price * float64(quantity)
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}

	if err := recomputeTotal(db, cartID); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem drops one line from the cart.
func RemoveItem(db *gorm.DB, cartID string, productID uint) error {
	result := db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return recomputeTotal(db, cartID)
}

// ClearCart removes every line and zeroes the total. The cart row itself
// survives.
func ClearCart(db *gorm.DB, cartID string) error {
	var cart models.Cart
	if err := db.First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}

	if err := db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Model(&models.Cart{}).Where("id = ?", cartID).Update("total", 0).Error
}

// UpdateCart sets the delivery address and/or delivery type.
func UpdateCart(db *gorm.DB, cartID string, addressID *uint, deliveryType *models.DeliveryType) (*models.Cart, error) {
	var cart models.Cart
	if err := db.First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if addressID != nil {
		updates["address_id"] = *addressID
	}
	if deliveryType != nil {
		updates["delivery_type"] = *deliveryType
	}
	if len(updates) > 0 {
		if err := db.Model(&cart).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetCart(db, cartID)
}

// GetCart reloads a cart with its items, products and address.
func GetCart(db *gorm.DB, cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := preloaded(db).First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// TransferCartToUser merges the anonymous cart identified by sessionID into
// the user's cart. A user with no cart simply adopts the anonymous one.
// Per-line failures are skipped, not fatal: the merge is best-effort.
func TransferCartToUser(db *gorm.DB, sessionID, userID string) (*models.Cart, error) {
	var anon models.Cart
	if err := db.Preload("Items").Where("session_id = ?", sessionID).
		Order("created_at DESC").First(&anon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	var userCart models.Cart
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&userCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No user cart yet: re-own the anonymous one.
		updates := map[string]interface{}{"user_id": userID, "session_id": nil}
		if err := db.Model(&anon).Updates(updates).Error; err != nil {
			return nil, err
		}
		return GetCart(db, anon.ID)
	}
	if err != nil {
		return nil, err
	}

	for _, item := range anon.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			// Product gone since it was added; skip the line.
			log.Printf("⚠️ Skipping cart item for product %d during transfer: %v", item.ProductID, err)
			continue
		}

		var existing models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", userCart.ID, item.ProductID).First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += item.Quantity
			existing.SubTotal = product.Price * float64(existing.Quantity)
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("⚠️ Failed to merge cart item for product %d: %v", item.ProductID, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			copied := models.CartItem{
				CartID:    userCart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				SubTotal:  item.SubTotal,
			}
			if err := db.Create(&copied).Error; err != nil {
				log.Printf("⚠️ Failed to copy cart item for product %d: %v", item.ProductID, err)
			}
		default:
			log.Printf("⚠️ Failed to look up cart item for product %d: %v", item.ProductID, err)
		}
	}

	// Delivery settings follow the anonymous cart only when it had them.
	if anon.AddressID != nil {
		updates := map[string]interface{}{
			"address_id":    *anon.AddressID,
			"delivery_type": anon.DeliveryType,
		}
		if err := db.Model(&userCart).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := recomputeTotal(db, userCart.ID); err != nil {
		return nil, err
	}

	if err := db.Where("cart_id = ?", anon.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	if err := db.Delete(&models.Cart{}, "id = ?", anon.ID).Error; err != nil {
		return nil, err
	}

	return GetCart(db, userCart.ID)
}

// recomputeTotal stores the sum of line subtotals on the cart. Called after
// every mutation.
func recomputeTotal(db *gorm.DB, cartID string) error {
	var total float64
	if err := db.Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(sub_total), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return db.Model(&models.Cart{}).Where("id = ?", cartID).Update("total", total).Error
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at ASC") }).
		Preload("Items.Product").
		Preload("Items.Product.Images").
		Preload("Address")
}
