// internal/models/order.go
package models

import (
	"time"
)

type Order struct {
	BaseModel
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	User      *User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedDt time.Time  `json:"dt" gorm:"column:dt;autoCreateTime"`
	State     OrderState `json:"state" gorm:"type:varchar(10);not null;default:'basket'"`
	ContactID *uint      `json:"contact_id,omitempty"` // set at checkout
	Contact   *Contact   `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`

	OrderItems []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one basket line; re-adding the same variant updates the
// existing row instead of inserting a second one.
type OrderItem struct {
	BaseModel
	OrderID       uint         `json:"order_id" gorm:"uniqueIndex:uniq_order_variant;not null"`
	Order         *Order       `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductInfoID uint         `json:"product_info_id" gorm:"uniqueIndex:uniq_order_variant;not null"`
	ProductInfo   *ProductInfo `json:"product_info,omitempty" gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
	Quantity      int          `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
}
