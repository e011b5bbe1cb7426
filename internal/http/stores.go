package http

import (
	"context"

	"github.com/mrlokans/userbooks/internal/entities"
)

// UserStore is the data access the users controller needs.
// Lookups that find nothing return a nil user and a nil error.
type UserStore interface {
	GetAllUsers(ctx context.Context) ([]entities.User, error)
	GetUserByID(ctx context.Context, id int64) (*entities.User, error)
	CreateUser(ctx context.Context, fields entities.UserFields) (*entities.User, error)
	UpdateUser(ctx context.Context, id int64, fields entities.UserFields) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) (*entities.User, error)
}

// AuthorshipStore is the data access the authorship controller needs.
type AuthorshipStore interface {
	CreateAuthorship(ctx context.Context, userID, bookID int64) (*entities.Authorship, error)
	GetAuthorsOfBook(ctx context.Context, bookID int64) ([]int64, error)
	GetBooksOfUser(ctx context.Context, userID int64) ([]int64, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
