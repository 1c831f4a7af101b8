package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/auth"
	"github.com/zaqqye/hotel_rooms/internal/models"
	"github.com/zaqqye/hotel_rooms/internal/repository"
)

type AuthController struct {
	Users  repository.Users
	Tokens *auth.Tokens
	Logger *zap.Logger
}

type signupRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    FlexibleString `json:"phone"`
	Location string         `json:"location"`
	Password string         `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func viewOf(u *models.User) userView {
	return userView{Name: u.Name, Email: u.Email, Phone: u.Phone, Location: u.Location}
}

func authFailure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (a *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFailure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Location == "" || req.Password == "" {
		authFailure(c, http.StatusBadRequest, "All fields are required")
		return
	}

	pw, err := auth.HashPassword(req.Password)
	if err != nil {
		authFailure(c, http.StatusInternalServerError, "failed to hash password")
		return
	}
	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone.String(),
		Location: req.Location,
		Password: pw,
	}
	if err := a.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			authFailure(c, http.StatusConflict, "User already exists")
			return
		}
		a.Logger.Error("signup failed", zap.String("email", req.Email), zap.Error(err))
		authFailure(c, http.StatusInternalServerError, "Signup failed")
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		a.Logger.Error("issue token failed", zap.Error(err))
		authFailure(c, http.StatusInternalServerError, "Signup failed")
		return
	}
	a.Logger.Info("user signed up", zap.String("email", user.Email))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Signup successful",
		"user":    viewOf(&user),
		"token":   token,
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFailure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		authFailure(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := a.Users.FindByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		a.Logger.Error("login lookup failed", zap.Error(err))
		authFailure(c, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		authFailure(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		a.Logger.Error("issue token failed", zap.Error(err))
		authFailure(c, http.StatusInternalServerError, "Login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    viewOf(user),
		"token":   token,
	})
}
