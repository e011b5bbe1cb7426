package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/logging"
)

const (
	msgInvalidUserID      = "Invalid user ID"
	msgUserNotFound       = "User not found"
	msgUserDeleted        = "User deleted"
	msgErrorRetrieveUsers = "Error retrieving users"
	msgErrorRetrieveUser  = "Error retrieving user"
	msgErrorCreateUser    = "Error creating user"
	msgErrorUpdateUser    = "Error updating user"
	msgErrorDeleteUser    = "Error deleting user"
)

// createUserRequest is the body of POST /users.
type createUserRequest struct {
	GivenName  *string `json:"givenName" binding:"required,max=255"`
	FamilyName *string `json:"familyName" binding:"required,max=255"`
}

// updateUserRequest is the body of PUT /users/:id. Omitted fields keep their
// stored values.
type updateUserRequest struct {
	GivenName  *string `json:"givenName" binding:"omitempty,max=255"`
	FamilyName *string `json:"familyName" binding:"omitempty,max=255"`
}

// UsersController handles CRUD on users.
type UsersController struct {
	store UserStore
}

// NewUsersController creates a new UsersController.
func NewUsersController(store UserStore) *UsersController {
	return &UsersController{store: store}
}

// GetAllUsers returns every user.
func (uc *UsersController) GetAllUsers(c *gin.Context) {
	users, err := uc.store.GetAllUsers(c.Request.Context())
	if err != nil {
		respondFailure(c, http.StatusInternalServerError, err, msgErrorRetrieveUsers)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user by ID.
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgInvalidUserID)
	if !ok {
		return
	}

	user, err := uc.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, http.StatusInternalServerError, err, msgErrorRetrieveUser)
		return
	}
	if user == nil {
		respondMessage(c, http.StatusNotFound, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser inserts a user and returns it with its assigned ID.
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindFailure(c, err, msgErrorCreateUser)
		return
	}

	user, err := uc.store.CreateUser(c.Request.Context(), entities.UserFields{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
	})
	if err != nil {
		respondFailure(c, http.StatusBadRequest, err, msgErrorCreateUser)
		return
	}

	logging.FromGin(c).WithField("user_id", user.ID).Info("user created")
	c.JSON(http.StatusCreated, user)
}

// UpdateUser overwrites the supplied fields of a user and returns the result.
func (uc *UsersController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgInvalidUserID)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindFailure(c, err, msgErrorUpdateUser)
		return
	}

	user, err := uc.store.UpdateUser(c.Request.Context(), id, entities.UserFields{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
	})
	if err != nil {
		respondFailure(c, http.StatusBadRequest, err, msgErrorUpdateUser)
		return
	}
	if user == nil {
		respondMessage(c, http.StatusNotFound, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user.
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", msgInvalidUserID)
	if !ok {
		return
	}

	user, err := uc.store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, http.StatusInternalServerError, err, msgErrorDeleteUser)
		return
	}
	if user == nil {
		respondMessage(c, http.StatusNotFound, msgUserNotFound)
		return
	}

	logging.FromGin(c).WithField("user_id", user.ID).Info("user deleted")
	respondMessage(c, http.StatusOK, msgUserDeleted)
}
