package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

// SessionCookieName carries the anonymous shopper's cart session id.
const SessionCookieName = "cart_session_id"

const sessionCookieMaxAge = 30 * 24 * 60 * 60 // 30 days

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type UpdateCartInput struct {
	AddressID    *uint                `json:"address_id"`
	DeliveryType *models.DeliveryType `json:"delivery_type" binding:"omitempty,oneof=PICKUP SHIPPING"`
}

// GET /carts
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, cart, "Cart retrieved")
	}
}

// GET /carts/anonymous
func GetAnonymousCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCartBySession(db, EnsureSessionID(c))
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, cart, "Cart retrieved")
	}
}

// POST /carts/items
func AddItemToUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}

		item, err := AddItem(db, cart.ID, input.ProductID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusCreated, item, "Item added to cart")
	}
}

// POST /carts/anonymous/items
func AddItemToAnonymousCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartBySession(db, EnsureSessionID(c))
		if err != nil {
			respondCartError(c, err)
			return
		}

		item, err := AddItem(db, cart.ID, input.ProductID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusCreated, item, "Item added to cart")
	}
}

// PATCH /carts/items/:product_id
func UpdateUserItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}

		item, err := UpdateItemQuantity(db, cart.ID, productID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, item, "Item quantity updated")
	}
}

// PATCH /carts/anonymous/items/:product_id
func UpdateAnonymousItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSessionID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartBySession(db, sessionID)
		if err != nil {
			respondCartError(c, err)
			return
		}

		item, err := UpdateItemQuantity(db, cart.ID, productID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, item, "Item quantity updated")
	}
}

// DELETE /carts/items/:product_id
func RemoveUserItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}

		if err := RemoveItem(db, cart.ID, productID); err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, nil, "Item removed from cart")
	}
}

// DELETE /carts/anonymous/items/:product_id
func RemoveAnonymousItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSessionID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		cart, err := ResolveCartBySession(db, sessionID)
		if err != nil {
			respondCartError(c, err)
			return
		}

		if err := RemoveItem(db, cart.ID, productID); err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, nil, "Item removed from cart")
	}
}

// DELETE /carts/clear
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}
		if err := ClearCart(db, cart.ID); err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, nil, "Cart cleared")
	}
}

// DELETE /carts/anonymous/clear
func ClearAnonymousCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSessionID(c)
		if !ok {
			return
		}
		cart, err := ResolveCartBySession(db, sessionID)
		if err != nil {
			respondCartError(c, err)
			return
		}
		if err := ClearCart(db, cart.ID); err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, nil, "Cart cleared")
	}
}

// PATCH /carts
func UpdateUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartByUser(db, c.GetString("user_id"))
		if err != nil {
			respondCartError(c, err)
			return
		}

		updated, err := UpdateCart(db, cart.ID, input.AddressID, input.DeliveryType)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, updated, "Cart updated")
	}
}

// PATCH /carts/anonymous
func UpdateAnonymousCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSessionID(c)
		if !ok {
			return
		}
		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := ResolveCartBySession(db, sessionID)
		if err != nil {
			respondCartError(c, err)
			return
		}

		updated, err := UpdateCart(db, cart.ID, input.AddressID, input.DeliveryType)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.OK(c, http.StatusOK, updated, "Cart updated")
	}
}

// POST /carts/transfer
// Merges the anonymous cart named by the session cookie into the
// authenticated user's cart, then drops the cookie.
func TransferCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			// Nothing to merge; just hand back the user's cart.
			cart, err := ResolveCartByUser(db, userID)
			if err != nil {
				respondCartError(c, err)
				return
			}
			response.OK(c, http.StatusOK, cart, "Cart retrieved")
			return
		}

		cart, err := TransferCartToUser(db, sessionID, userID)
		if err != nil {
			if errors.Is(err, ErrCartNotFound) {
				cart, err = ResolveCartByUser(db, userID)
				if err != nil {
					respondCartError(c, err)
					return
				}
				clearSessionCookie(c)
				response.OK(c, http.StatusOK, cart, "Cart retrieved")
				return
			}
			respondCartError(c, err)
			return
		}

		clearSessionCookie(c)
		response.OK(c, http.StatusOK, cart, "Cart transferred")
	}
}

// EnsureSessionID returns the session id from the request cookie, minting a
// new id and setting the cookie when absent.
func EnsureSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil && sessionID != "" {
		return sessionID
	}
	sessionID = uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
	return sessionID
}

func requireSessionID(c *gin.Context) (string, bool) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		response.Error(c, http.StatusBadRequest, "No cart session found")
		return "", false
	}
	return sessionID, true
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func productIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product_id")
		return 0, false
	}
	return uint(id64), true
}

func respondCartError(c *gin.Context, err error) {
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrCartNotFound), errors.Is(err, ErrProductNotFound), errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrProductInactive):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &stockErr):
		response.Error(c, http.StatusBadRequest, stockErr.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process cart operation")
	}
}
