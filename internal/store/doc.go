// Package store defines the repository contracts of the practice platform:
// one interface per aggregate (users, simulations, personas and intern
// progress), the error taxonomy shared by every implementation, and the
// transaction helpers services use to compose several store calls
// atomically.
//
// Implementations live under internal/platform. Services depend only on
// the interfaces declared here.
package store
