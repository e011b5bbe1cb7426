// Package users provides database operations for user records.
//
// Lookups that match no row return a nil user and a nil error; errors are
// reserved for store failures and wrap database.ErrStore.
//
// # Usage
//
//	repo := users.NewRepository(db.DB)
//	user, err := repo.GetUserByID(ctx, 42)
//	if err != nil { ... }
//	if user == nil { ... } // not found
package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllUsers returns every user in insertion order.
func (r *Repository) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	users := []entities.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, database.MapError(err)
	}
	return users, nil
}

// GetUserByID returns the user with the given ID, or nil if there is none.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapError(err)
	}
	return &user, nil
}

// CreateUser inserts a user and returns it with its assigned ID.
// Nil fields are stored as empty strings.
func (r *Repository) CreateUser(ctx context.Context, fields entities.UserFields) (*entities.User, error) {
	user := &entities.User{
		GivenName:  deref(fields.GivenName),
		FamilyName: deref(fields.FamilyName),
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, database.MapError(err)
	}
	return user, nil
}

// UpdateUser overwrites the non-nil fields of the user and returns the row as
// stored afterwards, or nil if the user does not exist.
func (r *Repository) UpdateUser(ctx context.Context, id int64, fields entities.UserFields) (*entities.User, error) {
	columns := map[string]any{}
	if fields.GivenName != nil {
		columns["givenName"] = *fields.GivenName
	}
	if fields.FamilyName != nil {
		columns["familyName"] = *fields.FamilyName
	}

	if len(columns) > 0 {
		err := r.db.WithContext(ctx).
			Model(&entities.User{}).
			Where("id = ?", id).
			Updates(columns).Error
		if err != nil {
			return nil, database.MapError(err)
		}
	}

	return r.GetUserByID(ctx, id)
}

// DeleteUser removes the user and returns it as it was before deletion, or
// nil if there was nothing to delete. Of several concurrent deletes of the
// same user, only the one whose DELETE removed the row gets it back.
// Authorship rows are left in place.
func (r *Repository) DeleteUser(ctx context.Context, id int64) (*entities.User, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entities.User{}, id)
	if result.Error != nil {
		return nil, database.MapError(result.Error)
	}
	// Another request deleted it between the read and the delete.
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
