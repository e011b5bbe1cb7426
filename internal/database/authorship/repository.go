// Package authorship provides database operations on the authors_books
// join table linking users to the books they wrote.
package authorship

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
)

// Repository handles all authorship database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authorship repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthorship records that userID wrote bookID. Recording the same pair
// twice fails with database.ErrConstraintViolation. Whether the user and book
// exist is left to the database's foreign key enforcement.
func (r *Repository) CreateAuthorship(ctx context.Context, userID, bookID int64) (*entities.Authorship, error) {
	link := &entities.Authorship{UserID: userID, BookID: bookID}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, database.MapError(err)
	}
	return link, nil
}

// GetAuthorsOfBook returns the IDs of the users who wrote bookID.
func (r *Repository) GetAuthorsOfBook(ctx context.Context, bookID int64) ([]int64, error) {
	return r.pluck(ctx, "user_id", "book_id", bookID)
}

// GetBooksOfUser returns the IDs of the books userID wrote.
func (r *Repository) GetBooksOfUser(ctx context.Context, userID int64) ([]int64, error) {
	return r.pluck(ctx, "book_id", "user_id", userID)
}

func (r *Repository) pluck(ctx context.Context, column, filter string, value int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&entities.Authorship{}).
		Where(filter+" = ?", value).
		Order("id").
		Pluck(column, &ids).Error
	if err != nil {
		return nil, database.MapError(err)
	}
	return ids, nil
}
