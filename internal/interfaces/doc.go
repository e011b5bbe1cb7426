// Package interfaces documents the abstractions the HTTP layer depends on
// and checks at compile time that the repositories implement them.
//
// # Data Access Interfaces
//
//   - UserStore: user CRUD (internal/http/stores.go), implemented by
//     users.Repository
//   - AuthorshipStore: user/book links (internal/http/stores.go), implemented
//     by authorship.Repository
//   - Pinger: liveness of a dependency (internal/http/stores.go), implemented
//     by database.Database
//
// # Not-found Convention
//
// Store lookups that match no row return a nil value and a nil error.
// Errors are reserved for store failures, which wrap database.ErrStore, and
// for constraint violations, which wrap database.ErrConstraintViolation.
//
// # Adding a Store
//
//  1. Declare the interface next to the controller that uses it
//  2. Implement it in a database sub-package Repository
//  3. Add a var _ check to checks.go
package interfaces
