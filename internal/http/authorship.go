package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/logging"
)

const (
	msgAuthorshipCreated     = "Authorship created successfully"
	msgInvalidAuthorship     = "Invalid authorship payload"
	msgInvalidBookID         = "Invalid book ID"
	msgErrorCreateAuthorship = "Error creating authorship"
	msgErrorRetrieveAuthors  = "Error retrieving authors"
	msgErrorRetrieveBooks    = "Error retrieving books"
)

// createAuthorshipRequest is the body of POST /api/authorship.
type createAuthorshipRequest struct {
	UserID *int64 `json:"userId" binding:"required"`
	BookID *int64 `json:"bookId" binding:"required"`
}

// AuthorsResponse lists the users who wrote a book.
type AuthorsResponse struct {
	Authors []int64 `json:"authors"`
}

// BooksResponse lists the books a user wrote.
type BooksResponse struct {
	Books []int64 `json:"books"`
}

// AuthorshipController links users to books.
type AuthorshipController struct {
	store AuthorshipStore
}

// NewAuthorshipController creates a new AuthorshipController.
func NewAuthorshipController(store AuthorshipStore) *AuthorshipController {
	return &AuthorshipController{store: store}
}

// CreateAuthorship records that a user wrote a book. A pair that already
// exists is answered like any other store failure.
func (ac *AuthorshipController) CreateAuthorship(c *gin.Context) {
	var req createAuthorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindFailure(c, err, msgInvalidAuthorship)
		return
	}

	link, err := ac.store.CreateAuthorship(c.Request.Context(), *req.UserID, *req.BookID)
	if err != nil {
		if errors.Is(err, database.ErrConstraintViolation) {
			logging.FromGin(c).WithFields(logrus.Fields{
				"user_id": *req.UserID,
				"book_id": *req.BookID,
			}).Warn("authorship rejected by constraint")
		}
		respondFailure(c, http.StatusInternalServerError, err, msgErrorCreateAuthorship)
		return
	}

	logging.FromGin(c).WithField("authorship_id", link.ID).Info("authorship created")
	respondMessage(c, http.StatusCreated, msgAuthorshipCreated)
}

// GetAuthorsOfBook lists the IDs of the users who wrote a book.
func (ac *AuthorshipController) GetAuthorsOfBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId", msgInvalidBookID)
	if !ok {
		return
	}

	authors, err := ac.store.GetAuthorsOfBook(c.Request.Context(), bookID)
	if err != nil {
		respondFailure(c, http.StatusInternalServerError, err, msgErrorRetrieveAuthors)
		return
	}
	c.JSON(http.StatusOK, AuthorsResponse{Authors: authors})
}

// GetBooksOfUser lists the IDs of the books a user wrote.
func (ac *AuthorshipController) GetBooksOfUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", msgInvalidUserID)
	if !ok {
		return
	}

	books, err := ac.store.GetBooksOfUser(c.Request.Context(), userID)
	if err != nil {
		respondFailure(c, http.StatusInternalServerError, err, msgErrorRetrieveBooks)
		return
	}
	c.JSON(http.StatusOK, BooksResponse{Books: books})
}
