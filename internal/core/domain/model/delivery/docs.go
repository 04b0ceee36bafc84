// Package delivery provides domain entities and business logic for courier
// job tracking. It implements the Delivery aggregate root with its lifecycle
// state machine and the immutable audit trail of status changes.
//
// The package includes:
//   - Delivery: the aggregate root owning identity, contacts, rider
//     assignment, and the status state machine
//   - Status: a forward-only state machine over the fixed transition table
//   - Event: an immutable audit record written once per status change
//   - Contact: a value object for the pickup and dropoff endpoints
//
// Key business rules:
//   - Status moves only along CREATED -> ASSIGNED -> PICKED_UP -> IN_TRANSIT
//     -> DELIVERED, with FAILED reachable from any assigned state
//   - DELIVERED and FAILED are terminal; no transition leaves them
//   - The completion timestamp is set exactly once, on DELIVERED
//   - Assignment forces the status back to ASSIGNED, including reassignment
//     of a delivery already in flight
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
