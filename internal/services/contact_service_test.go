// internal/services/contact_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailnet/ordering-backend/internal/models"
)

func TestCreateAndListContacts(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)
	buyer := createTestUser(t, db, "buyer@example.com", "buyer", models.UserTypeBuyer)
	other := createTestUser(t, db, "other@example.com", "other", models.UserTypeBuyer)

	contact, err := svc.CreateContact(buyer.ID, &CreateContactRequest{
		City:   "Springfield",
		Street: "Evergreen Terrace",
		House:  "742",
		Phone:  "+1-555-0100",
	})
	require.NoError(t, err)
	assert.NotZero(t, contact.ID)

	_, err = svc.CreateContact(other.ID, &CreateContactRequest{
		City:   "Shelbyville",
		Street: "Main St",
		House:  "1",
		Phone:  "+1-555-0199",
	})
	require.NoError(t, err)

	contacts, err := svc.ListContacts(buyer.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Springfield", contacts[0].City)
}

func TestCreateContactValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)
	buyer := createTestUser(t, db, "buyer@example.com", "buyer", models.UserTypeBuyer)

	_, err := svc.CreateContact(buyer.ID, &CreateContactRequest{
		City: "Springfield",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDeleteContactOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)
	buyer := createTestUser(t, db, "buyer@example.com", "buyer", models.UserTypeBuyer)
	other := createTestUser(t, db, "other@example.com", "other", models.UserTypeBuyer)

	contact, err := svc.CreateContact(buyer.ID, &CreateContactRequest{
		City:   "Springfield",
		Street: "Evergreen Terrace",
		House:  "742",
		Phone:  "+1-555-0100",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteContact(other.ID, contact.ID), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteContact(buyer.ID, 9999), ErrNotFound)

	require.NoError(t, svc.DeleteContact(buyer.ID, contact.ID))

	contacts, err := svc.ListContacts(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
