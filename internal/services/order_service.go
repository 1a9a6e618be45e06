// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type AddBasketItemRequest struct {
	ProductInfoID uint `json:"product_info_id" validate:"required"`
	Quantity      int  `json:"quantity" validate:"min=0"`
}

type ConfirmOrderRequest struct {
	ContactID uint `json:"contact_id" validate:"required"`
}

type UpdateOrderStateRequest struct {
	State models.OrderState `json:"state" validate:"required"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// GetBasket returns the user's open basket, creating it on first use.
func (s *OrderService) GetBasket(userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("user_id = ? AND state = ?", userID, models.OrderStateBasket).
		Preload("OrderItems.ProductInfo.Product").
		First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	order = models.Order{
		UserID: userID,
		State:  models.OrderStateBasket,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create basket: %w", err)
	}
	return &order, nil
}

// AddBasketItem sets the quantity of one variant line. Re-adding a variant
// updates the existing row; quantity zero removes the line.
func (s *OrderService) AddBasketItem(userID uint, req *AddBasketItemRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	basket, err := s.GetBasket(userID)
	if err != nil {
		return nil, err
	}

	// The variant must exist; baskets never reference phantom stock.
	var info models.ProductInfo
	if err := s.db.First(&info, req.ProductInfoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product variant %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		err := tx.Where("order_id = ? AND product_info_id = ?", basket.ID, req.ProductInfoID).
			First(&item).Error
		switch {
		case err == nil:
			if req.Quantity == 0 {
				return tx.Delete(&item).Error
			}
			item.Quantity = req.Quantity
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if req.Quantity == 0 {
				return nil
			}
			item = models.OrderItem{
				OrderID:       basket.ID,
				ProductInfoID: req.ProductInfoID,
				Quantity:      req.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("order item %w", ErrAlreadyExists)
				}
				return fmt.Errorf("failed to add item: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("database error: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetBasket(userID)
}

// ConfirmOrder turns the basket into a placed order bound to a delivery
// contact owned by the caller.
func (s *OrderService) ConfirmOrder(userID uint, req *ConfirmOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND state = ?", userID, models.OrderStateBasket).
			Preload("OrderItems").
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("basket %w", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(order.OrderItems) == 0 {
			return errors.New("basket is empty")
		}

		var contact models.Contact
		if err := tx.First(&contact, req.ContactID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("contact %w", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if contact.UserID != userID {
			return fmt.Errorf("contact belongs to another user: %w", ErrForbidden)
		}

		order.ContactID = &contact.ID
		order.State = models.OrderStateNew
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(userID, order.ID)
}

// ListOrders returns the user's placed orders; the open basket is excluded.
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ? AND state <> ?", userID, models.OrderStateBasket).
		Preload("OrderItems.ProductInfo.Product").
		Preload("Contact").
		Order("dt DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(userID uint, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems.ProductInfo.Product").
		Preload("Contact").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != userID {
		return nil, fmt.Errorf("order belongs to another user: %w", ErrForbidden)
	}
	return &order, nil
}

// UpdateOrderState advances an order along the legal transition graph.
func (s *OrderService) UpdateOrderState(orderID uint, req *UpdateOrderStateRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.State.Valid() {
		return nil, errors.New("unknown order state")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %w", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !order.State.CanTransitionTo(req.State) {
			return fmt.Errorf("cannot move order from %s to %s", order.State, req.State)
		}

		order.State = req.State
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
