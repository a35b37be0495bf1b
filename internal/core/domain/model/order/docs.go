// Package order provides the Order aggregate root and its lifecycle state
// machine for the ecommerce system.
//
// The package includes:
//   - Order: The aggregate root owning line items, total and lifecycle status
//   - LineItem: An order-owned entity with price and name snapshots
//   - Status: A state machine enforcing valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owner and at least one line item
//   - The total always equals the sum of line item subtotals
//   - Line item pricing is fixed at order-creation time (snapshot pricing)
//   - Status follows Pending -> Paid -> Shipped -> Delivered, with Cancelled
//     reachable from Pending and Paid; Delivered and Cancelled are terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
