// Package userrepo provides read-only access to users and their shipping
// addresses. The engine never writes these tables; account management is an
// external concern.
package userrepo

import (
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for user accounts.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string `gorm:"uniqueIndex"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// AddressDTO represents the database structure for shipping addresses.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Street     string
	City       string
	PostalCode string
}

// TableName overrides GORM's default naming to use "addresses".
func (AddressDTO) TableName() string {
	return "addresses"
}

func userToModel(dto UserDTO) (ports.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.User{}, err
	}

	return ports.User{
		ID:    id,
		Name:  dto.Name,
		Email: dto.Email,
	}, nil
}

func addressToModel(dto AddressDTO) (ports.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Address{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.Address{}, err
	}

	return ports.Address{
		ID:         id,
		UserID:     userID,
		Street:     dto.Street,
		City:       dto.City,
		PostalCode: dto.PostalCode,
	}, nil
}
