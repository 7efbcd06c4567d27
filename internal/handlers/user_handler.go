package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/middleware"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetMyProfile is GET /api/users/me/profile
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.Users.GetProfile(middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile is PATCH /api/users/me/profile
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	profile, err := h.Users.UpdateProfile(middleware.UserID(c), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// MarkPlaced is PATCH /api/users/:id/mark-placed
func (h *UserHandler) MarkPlaced(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	profile, err := h.Users.MarkPlaced(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListStudents is GET /api/admin/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	filter := services.StudentFilter{
		Branch:     c.Query("branch"),
		Department: c.Query("department"),
	}
	if v := c.Query("min_cgpa"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_cgpa"})
			return
		}
		filter.MinCGPA = &f
	}
	if v := c.Query("max_cgpa"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_cgpa"})
			return
		}
		filter.MaxCGPA = &f
	}
	if v := c.Query("is_placed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_placed"})
			return
		}
		filter.IsPlaced = &b
	}

	students, err := h.Users.ListStudents(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students, "total": len(students)})
}
