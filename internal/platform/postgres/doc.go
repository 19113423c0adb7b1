// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package, together with the
// embedded goose migrations that create the schema.
//
// Stores use database/sql on top of the pgx driver. Every multi-row write
// (credit adjustments, progress upserts, persona batches, simulation
// deletes) is a single statement or a single transaction, and driver
// errors are translated to the store error taxonomy by MapError.
package postgres
