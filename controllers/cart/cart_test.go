package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MartinB1989/partners-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price float64, stock int, active bool) models.Product {
	t.Helper()
	product := models.Product{
		Title:  title,
		Price:  price,
		Stock:  stock,
		Active: active,
		UserID: "seller-1",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestResolveCartCreatesEmptyCart(t *testing.T) {
	db := setupTestDB(t)

	cart, err := ResolveCartByUser(db, "user-1")
	require.NoError(t, err)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, "user-1", *cart.UserID)
	assert.Nil(t, cart.SessionID)
	assert.Equal(t, models.DeliveryPickup, cart.DeliveryType)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	// A second resolve returns the same cart, not a new one.
	again, err := ResolveCartByUser(db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Miel de romero", 8.50, 10, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)

	_, err = AddItem(db, cart.ID, product.ID, 2)
	require.NoError(t, err)

	item, err := AddItem(db, cart.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.InDelta(t, 8.50*5, item.SubTotal, 0.001)

	// A single line, not two.
	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lines).Error)
	assert.EqualValues(t, 1, lines)

	reloaded, err := GetCart(db, cart.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.50*5, reloaded.Total, 0.001)
}

func TestAddItemRepricesAtCurrentPrice(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Queso curado", 10, 20, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)

	_, err = AddItem(db, cart.ID, product.ID, 2)
	require.NoError(t, err)

	// Price changes between adds; the whole line reprices.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 12).Error)

	item, err := AddItem(db, cart.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.InDelta(t, 12*3, item.SubTotal, 0.001)
}

func TestAddItemRejectsInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Aceite de oliva", 15, 2, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)

	_, err = AddItem(db, cart.ID, product.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Available)

	// The cart is untouched.
	reloaded, err := GetCart(db, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
	assert.Zero(t, reloaded.Total)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Vino retirado", 20, 5, false)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)

	_, err = AddItem(db, cart.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestAddItemUnknownCartOrProduct(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Miel", 5, 5, true)

	_, err := AddItem(db, "missing-cart", product.ID, 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)

	_, err = AddItem(db, cart.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemQuantityReplacesAndReprices(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mermelada", 4, 10, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, cart.ID, product.ID, 2)
	require.NoError(t, err)

	item, err := UpdateItemQuantity(db, cart.ID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
	assert.InDelta(t, 4*7, item.SubTotal, 0.001)

	_, err = UpdateItemQuantity(db, cart.ID, product.ID, 11)
	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)

	_, err = UpdateItemQuantity(db, cart.ID, 999, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	first := seedProduct(t, db, "Pan", 2, 10, true)
	second := seedProduct(t, db, "Huevos", 3, 10, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, cart.ID, first.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, cart.ID, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, cart.ID, first.ID))

	reloaded, err := GetCart(db, cart.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, second.ID, reloaded.Items[0].ProductID)
	assert.InDelta(t, 3*2, reloaded.Total, 0.001)

	assert.ErrorIs(t, RemoveItem(db, cart.ID, first.ID), ErrItemNotFound)
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Café", 6, 10, true)

	cart, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, cart.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, ClearCart(db, cart.ID))

	reloaded, err := GetCart(db, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
	assert.Zero(t, reloaded.Total)

	assert.ErrorIs(t, ClearCart(db, "missing-cart"), ErrCartNotFound)
}

func TestTransferAdoptsAnonymousCartWhenUserHasNone(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Miel", 8, 10, true)

	anon, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, anon.ID, product.ID, 2)
	require.NoError(t, err)

	merged, err := TransferCartToUser(db, "session-1", "user-1")
	require.NoError(t, err)

	// Same cart, re-owned: no copy happened.
	assert.Equal(t, anon.ID, merged.ID)
	require.NotNil(t, merged.UserID)
	assert.Equal(t, "user-1", *merged.UserID)
	assert.Nil(t, merged.SessionID)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, 2, merged.Items[0].Quantity)
}

func TestTransferMergesLineQuantities(t *testing.T) {
	db := setupTestDB(t)
	shared := seedProduct(t, db, "Queso", 10, 50, true)
	anonOnly := seedProduct(t, db, "Aceitunas", 3, 50, true)

	userCart, err := ResolveCartByUser(db, "user-1")
	require.NoError(t, err)
	_, err = AddItem(db, userCart.ID, shared.ID, 2)
	require.NoError(t, err)

	anon, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, anon.ID, shared.ID, 3)
	require.NoError(t, err)
	_, err = AddItem(db, anon.ID, anonOnly.ID, 1)
	require.NoError(t, err)

	merged, err := TransferCartToUser(db, "session-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, userCart.ID, merged.ID)
	require.Len(t, merged.Items, 2)

	byProduct := make(map[uint]models.CartItem)
	for _, item := range merged.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, 5, byProduct[shared.ID].Quantity)
	assert.InDelta(t, 10*5, byProduct[shared.ID].SubTotal, 0.001)
	assert.Equal(t, 1, byProduct[anonOnly.ID].Quantity)
	assert.InDelta(t, 10*5+3*1, merged.Total, 0.001)

	// The anonymous cart is gone.
	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", anon.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	_, err = TransferCartToUser(db, "session-1", "user-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestTransferPropagatesDeliverySettings(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Pan", 2, 50, true)

	userCart, err := ResolveCartByUser(db, "user-1")
	require.NoError(t, err)
	_, err = AddItem(db, userCart.ID, product.ID, 1)
	require.NoError(t, err)

	anon, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, anon.ID, product.ID, 1)
	require.NoError(t, err)

	address := models.Address{Street: "Gran Vía", Number: "12", City: "Madrid", State: "Madrid", ZipCode: "28013", Country: "España"}
	require.NoError(t, db.Create(&address).Error)
	shipping := models.DeliveryShipping
	_, err = UpdateCart(db, anon.ID, &address.ID, &shipping)
	require.NoError(t, err)

	merged, err := TransferCartToUser(db, "session-1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, merged.AddressID)
	assert.Equal(t, address.ID, *merged.AddressID)
	assert.Equal(t, models.DeliveryShipping, merged.DeliveryType)
}

func TestTransferSkipsMissingProducts(t *testing.T) {
	db := setupTestDB(t)
	kept := seedProduct(t, db, "Queso", 10, 50, true)
	doomed := seedProduct(t, db, "Descatalogado", 5, 50, true)

	userCart, err := ResolveCartByUser(db, "user-1")
	require.NoError(t, err)
	_, err = AddItem(db, userCart.ID, kept.ID, 1)
	require.NoError(t, err)

	anon, err := ResolveCartBySession(db, "session-1")
	require.NoError(t, err)
	_, err = AddItem(db, anon.ID, doomed.ID, 2)
	require.NoError(t, err)

	// The product disappears before the merge.
	require.NoError(t, db.Delete(&models.Product{}, doomed.ID).Error)

	merged, err := TransferCartToUser(db, "session-1", "user-1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, kept.ID, merged.Items[0].ProductID)
}
