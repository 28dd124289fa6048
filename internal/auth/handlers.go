package auth

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/entities"
)

// Controller handles the authentication and user-administration endpoints.
// It translates HTTP-shaped requests into Service calls and maps the
// service's errors onto the wire taxonomy: validation 400, bad credentials
// 401, missing session 401, missing admin role 403, missing target 404.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers the auth API routes on the router.
func (ac *Controller) RegisterRoutes(router gin.IRouter) {
	grp := router.Group("/api/auth")
	grp.GET("/check/", ac.Check)
	grp.POST("/login/", ac.Login)
	grp.POST("/logout/", ac.Logout)
	grp.POST("/register/", ac.Register)
	grp.GET("/users/", ac.ListUsers)
	grp.POST("/users/", ac.CreateUser)
	grp.DELETE("/users/:id/", ac.DeleteUser)
}

type loginRequest struct {
	Role     string `json:"role"`
	IDNumber string `json:"id_number"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Role            string `json:"role"`
	IDNumber        string `json:"id_number"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type createUserRequest struct {
	Role     string `json:"role"`
	IDNumber string `json:"id_number"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Check reports the current principal without ever mutating session state.
// It also surfaces the CSRF token so clients can make state-changing calls;
// the middleware has already issued the token cookie by the time this runs.
func (ac *Controller) Check(c *gin.Context) {
	if token := GetCSRFToken(c); token != "" {
		c.Header(CSRFTokenHeader, token)
	}

	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "username": nil, "is_staff": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      user.Username,
		"is_staff":      user.IsStaff,
	})
}

// Login resolves the role hint and credentials to an account and binds the
// session to it.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	role := entities.ParseRole(req.Role)
	user, err := ac.service.Resolve(role, Credentials{
		IDNumber: strings.TrimSpace(req.IDNumber),
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
	})
	if err != nil {
		status, msg := loginErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("login failed: %v", err)
		}
		respondError(c, status, msg)
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("failed to create session: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      user.Username,
		"is_staff":      user.IsStaff,
	})
}

// Logout clears any session binding. Calling it without an active session
// is not an error.
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("failed to destroy session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Register creates a self-service account and logs it in immediately.
func (ac *Controller) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	role := entities.ParseRole(req.Role)
	user, err := ac.service.Register(role, RegisterInput{
		IDNumber:        strings.TrimSpace(req.IDNumber),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Password:        strings.TrimSpace(req.Password),
		ConfirmPassword: strings.TrimSpace(req.ConfirmPassword),
	})
	if err != nil {
		status, msg := registerErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("registration failed: %v", err)
		}
		respondError(c, status, msg)
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("failed to create session: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      user.Username,
		"is_staff":      user.IsStaff,
	})
}

// ListUsers returns all accounts in creation order. Admin only.
func (ac *Controller) ListUsers(c *gin.Context) {
	actor := CurrentUser(c)
	summaries, err := ac.service.ListUsers(actor)
	if err != nil {
		status, msg := adminErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("failed to list users: %v", err)
		}
		respondError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": summaries})
}

// CreateUser creates an account on behalf of an admin without altering the
// admin's own session.
func (ac *Controller) CreateUser(c *gin.Context) {
	actor := CurrentUser(c)
	// Authorization comes before body parsing, so an unauthenticated caller
	// never receives a validation error.
	if err := requireAdmin(actor); err != nil {
		status, msg := adminErrorResponse(err)
		respondError(c, status, msg)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	role := entities.ParseRole(req.Role)
	user, err := ac.service.CreateUser(actor, role, CreateUserInput{
		IDNumber: strings.TrimSpace(req.IDNumber),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
	})
	if err != nil {
		status, msg := createUserErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("failed to create user: %v", err)
		}
		respondError(c, status, msg)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user.Summary()})
}

// DeleteUser removes an account by ID. Admin only; self-deletion forbidden.
func (ac *Controller) DeleteUser(c *gin.Context) {
	actor := CurrentUser(c)
	if err := requireAdmin(actor); err != nil {
		status, msg := adminErrorResponse(err)
		respondError(c, status, msg)
		return
	}

	// A non-numeric ID never names an account.
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found.")
		return
	}

	if err := ac.service.DeleteUser(actor, uint(targetID)); err != nil {
		status, msg := adminErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("failed to delete user: %v", err)
		}
		respondError(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func loginErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPasswordRequired):
		return http.StatusBadRequest, "Password is required."
	case errors.Is(err, ErrIDNumberRequired):
		return http.StatusBadRequest, "ID Number is required."
	case errors.Is(err, ErrEmailRequired):
		return http.StatusBadRequest, "Email address is required."
	case errors.Is(err, ErrMultipleAccounts):
		return http.StatusBadRequest, "Multiple accounts found with this email."
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials. Please try again."
	}
	return http.StatusInternalServerError, "Internal server error."
}

func registerErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPasswordRequired):
		return http.StatusBadRequest, "Password is required."
	case errors.Is(err, ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match."
	case errors.Is(err, ErrPasswordTooShort):
		return http.StatusBadRequest, "Password must be at least 6 characters."
	case errors.Is(err, ErrIDNumberRequired):
		return http.StatusBadRequest, "ID Number is required."
	case errors.Is(err, ErrNameRequired):
		return http.StatusBadRequest, "Name is required."
	case errors.Is(err, ErrEmailRequired):
		return http.StatusBadRequest, "Email address is required."
	case errors.Is(err, ErrDuplicateIDNumber):
		return http.StatusBadRequest, "An account with this ID Number already exists."
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest, "An account with this email already exists."
	}
	return http.StatusInternalServerError, "Internal server error."
}

func createUserErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrAdminRequired):
		return adminErrorResponse(err)
	case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordRequired):
		return http.StatusBadRequest, "Password must be at least 6 characters."
	case errors.Is(err, ErrIDNumberRequired):
		return http.StatusBadRequest, "ID Number is required."
	case errors.Is(err, ErrEmailRequired):
		return http.StatusBadRequest, "Email is required."
	case errors.Is(err, ErrDuplicateIDNumber):
		return http.StatusBadRequest, "ID Number already in use."
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already in use."
	}
	return http.StatusInternalServerError, "Internal server error."
}

func adminErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized, "Authentication required."
	case errors.Is(err, ErrAdminRequired):
		return http.StatusForbidden, "Admin access required."
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, ErrSelfDelete):
		return http.StatusBadRequest, "Cannot delete your own account."
	}
	return http.StatusInternalServerError, "Internal server error."
}
