package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/language"
	"github.com/nutrilens/backend/internal/service"
)

// UserHandler handles user account requests.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", h.CreateUser)
	router.GET("/users/:id", h.GetUser)
}

// CreateUser registers a new account. The password is hashed before
// storage and never echoed back.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data", "details": err.Error()})
		return
	}

	if req.PreferredLanguage != "" && !language.IsSupported(req.PreferredLanguage) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported language"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, req.Password, req.PreferredLanguage)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser fetches a user by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
