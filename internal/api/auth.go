package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Email format check

	"eventpay/internal/service" // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required"`    // Login email
	Password string  `json:"password" binding:"required"` // Plain password, hashed before storing
	Name     string  `json:"name" binding:"required"`     // Display name
	Phone    *string `json:"phone"`                       // Optional phone
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a user account and returns a session
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		// Validate email format
		if !emailPattern.MatchString(req.Email) {
			badRequest(c, "Invalid email address")
			return
		}
		sess, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Phone:    req.Phone,
		})
		if err != nil {
			respondError(c, err) // Duplicate email is a 409
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

// LoginHandler authenticates a user and returns a session
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		sess, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// MeHandler returns the current user
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
