package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionLifetime = 7 * 24 * time.Hour

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.GET("/signup", h.SignupForm)
	e.POST("/signup", h.Signup)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}

// SignupForm renders the registration form
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return h.renderSignup(c, models.SignupRequest{}, "")
}

// Signup registers a local user and logs them in
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return h.renderSignup(c, req, "Username, a valid email and a password of at least 8 characters are required")
	}

	// Check if user with this username or email already exists
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return h.renderSignup(c, req, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return h.renderSignup(c, req, "Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cookie, err := h.authCookie(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue session token")
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, "/")
}

// LoginForm renders the login form
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return h.renderLogin(c, models.LoginRequest{}, "")
}

// Login checks credentials and issues the session cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return h.renderLogin(c, req, "Username and password are required")
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return h.renderLogin(c, req, "Wrong username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return h.renderLogin(c, req, "Wrong username or password")
	}

	cookie, err := h.authCookie(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue session token")
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, "/")
}

// Logout expires the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := new(http.Cookie)
	cookie.Name = middleware.AuthCookieName
	cookie.Value = ""
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(-time.Second)
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, "/")
}

// authCookie signs a session token for the user
func (h *AuthHandler) authCookie(user *models.User) (*http.Cookie, error) {
	exp := time.Now().Add(sessionLifetime)
	claims := &models.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return nil, err
	}

	cookie := new(http.Cookie)
	cookie.Name = middleware.AuthCookieName
	cookie.Value = signed
	cookie.Path = "/"
	cookie.Expires = exp
	cookie.HttpOnly = true
	return cookie, nil
}

func (h *AuthHandler) renderSignup(c echo.Context, form models.SignupRequest, msg string) error {
	status := http.StatusOK
	if msg != "" {
		status = http.StatusBadRequest
	}
	return c.Render(status, "signup.html", struct {
		nav
		Form  models.SignupRequest
		Error string
	}{navFrom(c), form, msg})
}

func (h *AuthHandler) renderLogin(c echo.Context, form models.LoginRequest, msg string) error {
	status := http.StatusOK
	if msg != "" {
		status = http.StatusBadRequest
	}
	return c.Render(status, "login.html", struct {
		nav
		Form  models.LoginRequest
		Error string
	}{navFrom(c), form, msg})
}
