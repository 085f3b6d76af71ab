package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/MartinB1989/partners-api/controllers/cart"
	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError names the product that blocked the order.
type InsufficientStockError struct {
	ProductID uint
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (available: %d)", e.Title, e.Available)
}

// -------- Request Structs --------

// Monetary fields use min=0 rather than required: zero is a legitimate
// price for a promotional line and required rejects it.
type OrderItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	SubTotal  float64 `json:"sub_total" binding:"min=0"`
	ImageURL  string  `json:"image_url"`
}

type OrderAddressInput struct {
	Street  string `json:"street" binding:"required"`
	Number  string `json:"number" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country"`
}

type PlaceOrderRequest struct {
	Email        string              `json:"email" binding:"required,email"`
	Name         string              `json:"name" binding:"required"`
	Phone        string              `json:"phone"`
	Total        float64             `json:"total" binding:"min=0"`
	DeliveryType models.DeliveryType `json:"delivery_type" binding:"required,oneof=PICKUP SHIPPING"`
	Notes        string              `json:"notes"`
	Address      *OrderAddressInput  `json:"address"`
	Items        []OrderItemInput    `json:"items" binding:"required,min=1,dive"`
}

// -------- Core Logic --------

// PlaceOrder validates stock for every line up front, then creates the
// optional address snapshot, the order, its item snapshots and the stock
// decrements inside one transaction. Item fields are stored exactly as
// submitted, never re-read from the live product.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	// Fail fast before any writes.
	for _, item := range req.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{ProductID: product.ID, Title: product.Title, Available: product.Stock}
		}
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var addressID *uint
		if req.Address != nil {
			country := req.Address.Country
			if country == "" {
				country = "España"
			}
			// Snapshot row for this order only; never linked to a user.
			address := models.Address{
				Street:  req.Address.Street,
				Number:  req.Address.Number,
				City:    req.Address.City,
				State:   req.Address.State,
				ZipCode: req.Address.ZipCode,
				Country: country,
			}
			if err := tx.Create(&address).Error; err != nil {
				return err
			}
			addressID = &address.ID
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Title:     item.Title,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				SubTotal:  item.SubTotal,
				ImageURL:  item.ImageURL,
			})
		}

		order = models.Order{
			Email:        req.Email,
			Name:         req.Name,
			Phone:        req.Phone,
			Total:        req.Total,
			DeliveryType: req.DeliveryType,
			Status:       models.OrderStatusPendingPayment,
			Notes:        req.Notes,
			AddressID:    addressID,
			Items:        items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return &InsufficientStockError{ProductID: product.ID, Title: product.Title, Available: product.Stock}
			}
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrProductNotFound):
				response.Error(c, http.StatusNotFound, err.Error())
			case errors.As(err, &stockErr):
				response.Error(c, http.StatusBadRequest, stockErr.Error())
			default:
				response.Error(c, http.StatusBadRequest, "Failed to place order")
			}
			return
		}

		// Outside the transaction: clear the anonymous cart behind the
		// session cookie, if any. Failures are logged and swallowed.
		if sessionID, cerr := c.Cookie(cartControllers.SessionCookieName); cerr == nil && sessionID != "" {
			if cart, cerr := cartControllers.ResolveCartBySession(db, sessionID); cerr == nil {
				if cerr := cartControllers.ClearCart(db, cart.ID); cerr != nil {
					log.Printf("⚠️ Failed to clear cart after order %d: %v", order.ID, cerr)
				}
			} else {
				log.Printf("⚠️ Failed to resolve cart after order %d: %v", order.ID, cerr)
			}
		}

		broadcastNewOrder(*order)

		response.OK(c, http.StatusCreated, order, "Order placed successfully")
	}
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").Preload("Address").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}
		response.OK(c, http.StatusOK, order, "Order retrieved")
	}
}

// GET /orders (admin)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("Address").
			Order("created_at DESC").Find(&orders).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		response.OK(c, http.StatusOK, orders, "Orders retrieved")
	}
}
