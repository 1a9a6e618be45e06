// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

func (t UserType) Valid() bool {
	return t == UserTypeBuyer || t == UserTypeShop
}

type OrderState string

const (
	OrderStateBasket    OrderState = "basket"
	OrderStateNew       OrderState = "new"
	OrderStateConfirmed OrderState = "confirmed"
	OrderStateAssembled OrderState = "assembled"
	OrderStateSent      OrderState = "sent"
	OrderStateDelivered OrderState = "delivered"
	OrderStateCanceled  OrderState = "canceled"
)

// Legal state graph. A basket leaves the graph only through confirmation;
// delivered and canceled are terminal.
var orderStateTransitions = map[OrderState][]OrderState{
	OrderStateBasket:    {OrderStateNew},
	OrderStateNew:       {OrderStateConfirmed, OrderStateCanceled},
	OrderStateConfirmed: {OrderStateAssembled, OrderStateCanceled},
	OrderStateAssembled: {OrderStateSent, OrderStateCanceled},
	OrderStateSent:      {OrderStateDelivered, OrderStateCanceled},
}

func (s OrderState) CanTransitionTo(next OrderState) bool {
	for _, allowed := range orderStateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderState) Valid() bool {
	switch s {
	case OrderStateBasket, OrderStateNew, OrderStateConfirmed,
		OrderStateAssembled, OrderStateSent, OrderStateDelivered, OrderStateCanceled:
		return true
	}
	return false
}
