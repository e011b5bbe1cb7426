package entities

// User is a person who may author books.
type User struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	GivenName  string `gorm:"column:givenName" json:"givenName"`
	FamilyName string `gorm:"column:familyName" json:"familyName"`
}

func (User) TableName() string {
	return "users"
}

// Book is only written by migrations and seed data.
type Book struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"column:title" json:"title"`
}

func (Book) TableName() string {
	return "books"
}

// Authorship links a user to a book. A (UserID, BookID) pair appears at most once.
type Authorship struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"column:user_id" json:"userId"`
	BookID int64 `gorm:"column:book_id" json:"bookId"`
}

func (Authorship) TableName() string {
	return "authors_books"
}

// UserFields carries the writable columns of a user. Nil fields are left
// untouched by updates.
type UserFields struct {
	GivenName  *string
	FamilyName *string
}
