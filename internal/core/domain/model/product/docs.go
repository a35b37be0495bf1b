// Package product provides the catalog entity referenced by order line items.
// A product's quantity is only adjusted through the inventory store's atomic
// operations; orders snapshot its price and name at creation time, decoupling
// historical orders from later catalog edits.
package product
