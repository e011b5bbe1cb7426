// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, goose migrations, schema status
//	├── errors.go        # Store and constraint error mapping
//	├── seed.go          # Demo users and books
//	├── migrations/      # Embedded SQL migrations
//	├── users/           # User CRUD
//	└── authorship/      # User/book authorship links
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over the shared *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//	if err := db.Migrate(ctx); err != nil { ... }
//
//	usersRepo := users.NewRepository(db.DB)
//	authorshipRepo := authorship.NewRepository(db.DB)
//
//	user, err := usersRepo.GetUserByID(ctx, 1)
//	authors, err := authorshipRepo.GetAuthorsOfBook(ctx, 1)
//
// Lookups that match nothing return nil and no error. Failures are wrapped
// with ErrStore, or ErrConstraintViolation when SQLite rejected the write,
// so callers can tell them apart with errors.Is.
//
// # Foreign Keys
//
// SQLite only enforces the REFERENCES clauses on authors_books when the
// connection asks for it. Config.Database.EnforceForeignKeys controls this
// and is off by default.
package database
