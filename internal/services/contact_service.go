// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

type ContactService struct {
	db *gorm.DB
}

type CreateContactRequest struct {
	City      string `json:"city" validate:"required,max=50"`
	Street    string `json:"street" validate:"required,max=100"`
	House     string `json:"house" validate:"required,max=15"`
	Structure string `json:"structure,omitempty" validate:"omitempty,max=15"`
	Building  string `json:"building,omitempty" validate:"omitempty,max=15"`
	Apartment string `json:"apartment,omitempty" validate:"omitempty,max=15"`
	Phone     string `json:"phone" validate:"required,max=50"`
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) CreateContact(userID uint, req *CreateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	contact := &models.Contact{
		UserID:    userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

func (s *ContactService) ListContacts(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContactService) DeleteContact(userID uint, contactID uint) error {
	var contact models.Contact
	if err := s.db.First(&contact, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("contact %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if contact.UserID != userID {
		return fmt.Errorf("contact belongs to another user: %w", ErrForbidden)
	}

	return s.db.Delete(&contact).Error
}
