package userrepo

import (
	"context"
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserDirectory implements the UserDirectory and AddressBook
// collaborators against the local database.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM-backed user directory.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Exists reports whether a user with the given identifier exists.
func (r *GormUserDirectory) Exists(ctx context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Get retrieves a user by identifier.
func (r *GormUserDirectory) Get(ctx context.Context, userID kernel.UUID) (ports.User, error) {
	if err := userID.Validate(); err != nil {
		return ports.User{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, errs.NewObjectNotFoundError("user", userID.String())
		}
		return ports.User{}, err
	}

	return userToModel(dto)
}

// GetAddress retrieves the user's address by identifier. An address owned by
// a different user is reported as not found, never leaked.
func (r *GormUserDirectory) GetAddress(
	ctx context.Context, userID kernel.UUID, addressID kernel.UUID,
) (ports.Address, error) {
	if err := userID.Validate(); err != nil {
		return ports.Address{}, err
	}
	if err := addressID.Validate(); err != nil {
		return ports.Address{}, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND user_id = ?", addressID.Bytes(), userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Address{}, errs.NewObjectNotFoundError("address", addressID.String())
		}
		return ports.Address{}, err
	}

	return addressToModel(dto)
}

// GormAddressBook adapts GormUserDirectory to the AddressBook port.
type GormAddressBook struct {
	directory *GormUserDirectory
}

// NewGormAddressBook creates a new GORM-backed address book.
func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{directory: NewGormUserDirectory(db)}
}

// Get retrieves the user's address by identifier.
func (r *GormAddressBook) Get(
	ctx context.Context, userID kernel.UUID, addressID kernel.UUID,
) (ports.Address, error) {
	return r.directory.GetAddress(ctx, userID, addressID)
}
