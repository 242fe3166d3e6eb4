package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:admin"   json:"role"`
	IsActive     bool      `gorm:"not null;default:true"    json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Customer struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Phone        string    `json:"phone"`
	IsActive     bool      `gorm:"not null;default:true"    json:"isActive"`
	Addresses    []Address `gorm:"foreignKey:CustomerID"    json:"addresses,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Address struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   uint      `gorm:"index;not null"           json:"customerId"`
	AddressLine1 string    `gorm:"not null"                 json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `gorm:"not null"                 json:"city"`
	State        string    `gorm:"not null"                 json:"state"`
	Country      string    `gorm:"not null;default:India"   json:"country"`
	Pincode      string    `gorm:"not null"                 json:"pincode"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	IsDefault    bool      `gorm:"not null;default:false"   json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Brand struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null"     json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	IsActive    bool      `gorm:"not null;default:true"    json:"isActive"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null"     json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"not null;default:true"    json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Store struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsActive  bool      `gorm:"not null;default:true"    json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name        string          `gorm:"not null"                          json:"name"`
	SKU         string          `gorm:"uniqueIndex;not null"              json:"sku"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"       json:"price"`
	Status      string          `gorm:"not null;default:active"           json:"status"`
	Images      []string        `gorm:"serializer:json"                   json:"images"`
	BrandID     uint            `gorm:"index;not null"                    json:"brandId"`
	Brand       *Brand          `gorm:"foreignKey:BrandID"                json:"brand,omitempty"`
	Categories  []Category      `gorm:"many2many:product_categories"      json:"categories,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Product) Sellable() bool {
	return p.Status == ProductStatusActive
}

// ProductCategory is the product-category link, maintained by explicit
// replace-by-keyset operations rather than ORM association magic.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey" json:"productId"`
	CategoryID uint `gorm:"primaryKey" json:"categoryId"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// ProductStore links a product to a store and carries that store's stock.
// Stock is set through the linking endpoint only; ordering never touches it.
type ProductStore struct {
	ProductID uint      `gorm:"primaryKey" json:"productId"`
	StoreID   uint      `gorm:"primaryKey" json:"storeId"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProductStore) TableName() string { return "product_stores" }

// CartItem holds one (customer, product) line with the price snapshotted at
// the time of the last add. The unique index backs the upsert-on-conflict
// used by concurrent adds.
type CartItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"                           json:"id"`
	CustomerID uint            `gorm:"uniqueIndex:idx_customer_product;not null"          json:"customerId"`
	ProductID  uint            `gorm:"uniqueIndex:idx_customer_product;not null"          json:"productId"`
	Quantity   uint            `gorm:"not null;default:1;check:quantity > 0"              json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"                        json:"price"`
	Product    *Product        `gorm:"foreignKey:ProductID"                               json:"product,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (CartItem) TableName() string { return "cart_items" }

type Order struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderNumber      string          `gorm:"uniqueIndex;not null"         json:"orderNumber"`
	CustomerID       uint            `gorm:"index;not null"               json:"customerId"`
	AddressID        uint            `gorm:"not null"                     json:"addressId"`
	Address          *Address        `gorm:"foreignKey:AddressID"         json:"address,omitempty"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"subtotal"`
	Tax              decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"tax"`
	DeliveryFee      decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"deliveryFee"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total"`
	Status           OrderStatus     `gorm:"not null;default:CREATED"     json:"status"`
	GatewayOrderID   string          `gorm:"index"                        json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string          `json:"gatewayPaymentId,omitempty"`
	GatewaySignature string          `json:"-"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID"           json:"items,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// OrderItem snapshots price and line total at order creation; it is never
// mutated afterwards, so later catalog price changes do not affect it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint            `gorm:"index;not null"               json:"orderId"`
	ProductID uint            `gorm:"not null"                     json:"productId"`
	Quantity  uint            `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"price"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total"`
	Product   *Product        `gorm:"foreignKey:ProductID"         json:"product,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
