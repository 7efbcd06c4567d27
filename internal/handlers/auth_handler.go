package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/middleware"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register is POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Role == models.RoleStudent && (req.FullName == "" || req.Branch == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Students must provide full_name and branch"})
		return
	}

	user, err := h.Users.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		FullName: req.FullName,
		Branch:   req.Branch,
		CGPA:     req.CGPA,
		Phone:    req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login is POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	token, _, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me is GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Users.GetWithProfile(middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
