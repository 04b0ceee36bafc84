// Package kernel contains shared domain primitives used across aggregates.
//
// The package currently provides the UUID value object that identifies
// deliveries, delivery events, and actors. Keeping identifiers as a value
// object (rather than raw strings or library types) lets aggregates validate
// their identity on construction and when restored from persistence.
package kernel
