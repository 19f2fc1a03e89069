package handlers

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orgdir/orgdir/internal/metrics"
	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/search"
	"github.com/orgdir/orgdir/internal/services"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

// listParams reads the start_with/max_count pagination query parameters.
func listParams(c *gin.Context) (offset, limit int, ok bool) {
	offset, err := strconv.Atoi(c.DefaultQuery("start_with", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_with must be a non-negative integer"})
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("max_count", "1000"))
	if err != nil || limit < 1 || limit > 10000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_count must be between 1 and 10000"})
		return 0, 0, false
	}
	return offset, limit, true
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !validEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email failed validation: " + req.Email})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// ListUsers returns a page of users ordered by id
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit, ok := listParams(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Users not found"})
		return
	}

	c.JSON(http.StatusOK, userResponses(users))
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateUser handles PATCH (partial) and PUT (full replace); the id never
// changes.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Email != nil && !validEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email failed validation: " + *req.Email})
		return
	}

	partial := c.Request.Method == http.MethodPatch
	user, err := h.userService.UpdateUser(id, req, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// DeleteUser removes a user by ID
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchUsers deserializes a search-expression tree from the request body,
// compiles it and returns the matching users.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	tree, err := search.Decode(body)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("User", "rejected").Inc()
		respondError(c, err)
		return
	}

	users, err := h.userService.SearchUsers(tree)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("User", "error").Inc()
		respondError(c, err)
		return
	}

	metrics.SearchesTotal.WithLabelValues("User", "ok").Inc()
	c.JSON(http.StatusOK, userResponses(users))
}

func userResponses(users []*models.User) []*models.UserResponse {
	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	return out
}
