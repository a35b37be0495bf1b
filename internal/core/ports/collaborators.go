package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
)

// User is a read model of an account held by the external user directory.
// The engine only needs identity and ownership; account management itself is
// an external concern.
type User struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// Address is a read model of a shipping address held by the address book.
type Address struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	Street     string
	City       string
	PostalCode string
}

// UserDirectory is the external collaborator answering user identity lookups.
type UserDirectory interface {
	// Exists reports whether a user with the given identifier exists.
	Exists(ctx context.Context, userID kernel.UUID) (bool, error)

	// Get retrieves a user by identifier, failing with ObjectNotFoundError
	// if absent.
	Get(ctx context.Context, userID kernel.UUID) (User, error)
}

// AddressBook is the external collaborator resolving a user's shipping
// addresses. An address only resolves for its owning user, so a successful
// lookup doubles as an ownership check.
type AddressBook interface {
	// Get retrieves the user's address by identifier, failing with
	// ObjectNotFoundError if the address does not exist or does not belong
	// to the user.
	Get(ctx context.Context, userID kernel.UUID, addressID kernel.UUID) (Address, error)
}

// PaymentGateway is the external payment collaborator. Charge is consumed
// synchronously by the payment flow; a nil return confirms the charge,
// otherwise the error unwraps to ErrGatewayDeclined or ErrGatewayUnavailable
// so callers can decide whether a retry is safe.
//
// The engine never retries a charge itself: without idempotency keys from
// the gateway a blind retry risks a double charge.
type PaymentGateway interface {
	Charge(ctx context.Context, amountMinorUnits int64, currency string, paymentMethod string) error
}
