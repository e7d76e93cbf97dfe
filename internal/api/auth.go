package api

import (
	"net/http"

	"bountyboard/internal/domain"
	"bountyboard/internal/middleware"
	"bountyboard/internal/store"
	"bountyboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is accepted as a form post or JSON.
type RegisterRequest struct {
	Username    string `form:"username" json:"username" binding:"required"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	ReferCode   string `form:"referCode" json:"referCode"`
}

// LoginRequest is accepted as a form post or JSON.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AuthResponse carries the session token.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// isValidPassword checks if the password length is between 8 and 72
// characters (72 is the bcrypt input limit).
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72
}

// RegisterHandler creates a new user account. The account registering with
// the configured admin email becomes the operator; everyone else is a
// regular user, regardless of what the form carries.
func RegisterHandler(users *store.UserStore, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		role := domain.RoleUser
		if adminEmail != "" && req.Email == adminEmail {
			role = domain.RoleAdmin
		}
		user, err := users.Create(store.CreateUserParams{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			PhoneNumber:  req.PhoneNumber,
			ReferCode:    req.ReferCode,
			Role:         role,
		})
		if err != nil {
			c.JSON(storeErrorStatus(err), gin.H{"error": "User already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.UserID,
			"username": user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// LoginHandler authenticates a user, returns a session token and sets the
// session cookie for the form-driven pages. Soft-deleted accounts cannot
// log in.
func LoginHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.GetByEmail(req.Email)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.UserID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.SetCookie(middleware.SessionCookie, token, 24*60*60, "/", "", false, true)
		c.JSON(http.StatusOK, AuthResponse{Token: token, UserID: user.UserID})
	}
}
