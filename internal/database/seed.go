package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mrlokans/userbooks/internal/entities"
)

var seedUsers = []entities.User{
	{ID: 1, GivenName: "John", FamilyName: "Doe"},
	{ID: 2, GivenName: "Jane", FamilyName: "Doe"},
	{ID: 3, GivenName: "Bob", FamilyName: "Smith"},
	{ID: 4, GivenName: "Alice", FamilyName: "Smith"},
	{ID: 5, GivenName: "Tom", FamilyName: "Johnson"},
	{ID: 6, GivenName: "Sara", FamilyName: "Johnson"},
	{ID: 7, GivenName: "Mike", FamilyName: "Brown"},
	{ID: 8, GivenName: "Emily", FamilyName: "Brown"},
	{ID: 9, GivenName: "Alex", FamilyName: "Davis"},
	{ID: 10, GivenName: "Olivia", FamilyName: "Davis"},
}

var seedBooks = []entities.Book{
	{ID: 1, Title: "Book 1"},
	{ID: 2, Title: "Book 2"},
	{ID: 3, Title: "Book 3"},
	{ID: 4, Title: "Book 4"},
	{ID: 5, Title: "Book 5"},
}

// SeedResult counts the rows Seed inserted.
type SeedResult struct {
	Users int
	Books int
}

// Seed inserts the sample users and books whose ids are not taken yet.
// Running it again is a no-op.
func (d *Database) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	db := d.DB.WithContext(ctx)

	for _, user := range seedUsers {
		created, err := createIfMissing(db, &entities.User{}, user.ID, &user)
		if err != nil {
			return result, fmt.Errorf("failed to seed user %d: %w", user.ID, err)
		}
		if created {
			result.Users++
		}
	}

	for _, book := range seedBooks {
		created, err := createIfMissing(db, &entities.Book{}, book.ID, &book)
		if err != nil {
			return result, fmt.Errorf("failed to seed book %d: %w", book.ID, err)
		}
		if created {
			result.Books++
		}
	}

	d.logger.WithFields(logrus.Fields{
		"users": result.Users,
		"books": result.Books,
	}).Info("seed data applied")

	return result, nil
}

func createIfMissing(db *gorm.DB, existing any, id int64, record any) (bool, error) {
	err := db.First(existing, id).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, MapError(err)
	}
	if err := db.Create(record).Error; err != nil {
		return false, MapError(err)
	}
	return true, nil
}
