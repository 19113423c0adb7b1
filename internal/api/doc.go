// Package api exposes the application services over HTTP with chi. It
// decodes and validates request DTOs, reads the caller identity placed in
// the request context by the identity middleware, invokes the services and
// maps their results and errors to JSON responses.
package api
