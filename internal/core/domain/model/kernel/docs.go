// Package kernel holds the shared domain primitives of the order service:
// the UUID value object used for order identifiers and the Clock
// abstraction that stamps createdAt and updatedAt.
package kernel
