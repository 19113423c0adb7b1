// Package domain contains the core business entities of the practice platform:
// users, simulations, their AI personas and per-project intern progress.
// Entities carry their own field-level invariants and are independent of any
// persistence or delivery mechanism.
package domain
