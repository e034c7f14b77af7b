package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusPending   PaymentStatus = "PENDING"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	PriceCents    int64     `gorm:"not null" json:"price"`
	OldPriceCents *int64    `json:"oldPrice,omitempty"`
	Stock         int32     `gorm:"not null;default:0" json:"stock"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"isActive"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	ImageData string    `gorm:"type:text;not null" json:"imageData"`
	IsMain    bool      `gorm:"not null;default:false" json:"isMain"`
	Position  int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (ProductImage) TableName() string { return "product_images" }

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName    string      `gorm:"type:text;not null" json:"customerName"`
	CustomerEmail   string      `gorm:"type:text;not null" json:"customerEmail"`
	CustomerPhone   string      `gorm:"type:text" json:"customerPhone"`
	Address         string      `gorm:"type:text;not null" json:"address"`
	TotalPriceCents int64       `gorm:"not null;default:0" json:"totalPrice"`
	Status          OrderStatus `gorm:"type:text;not null;default:'PENDING';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity       uint32    `gorm:"type:int;not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"price"`
	Size           *string   `gorm:"type:text" json:"size,omitempty"`
	Color          *string   `gorm:"type:text" json:"color,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`

	// ссылка, не владение: товар может быть деактивирован позже
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

type Payment struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"orderId"`
	ProviderOrderID string        `gorm:"type:text;not null" json:"providerOrderId"`
	ProviderPayerID *string       `gorm:"type:text" json:"providerPayerId,omitempty"`
	Status          PaymentStatus `gorm:"type:text;not null;index" json:"status"`
	AmountCents     int64         `gorm:"not null" json:"amount"`
	CurrencyCode    string        `gorm:"type:char(3);not null" json:"currency"`
	PaidAt          time.Time     `gorm:"not null;default:now()" json:"paidAt"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

type ShippingCost struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CostCents int64     `gorm:"not null" json:"cost"`
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
}

func (ShippingCost) TableName() string { return "shipping_costs" }

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (AdminUser) TableName() string { return "admin_users" }
