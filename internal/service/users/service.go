package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/httperr"
	"github.com/doggr/backend/internal/repository"
)

// Service implements the account endpoints: the public directory,
// registration, and login.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates the users service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User      db.User `json:"user"`
	IPAddress string  `json:"ip_address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ListUsers returns the public user directory with profiles and IP history
// expanded. Password and created_at never leave the repository projection.
func (s *Service) ListUsers(c echo.Context) error {
	users, err := s.userRepo.ListDirectory(c.Request().Context())
	if err != nil {
		s.appCtx.Logger.Error("ListDirectory failed", "err", err)
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, users)
}

// RegisterUser creates an account.
//
// Behavior:
//   - User row and IPHistory row (from the request's remote address) are
//     written in one transaction.
//   - The password is bcrypt-hashed unless the client already sent a digest.
//   - Responds with the created user and the recorded address.
func (s *Service) RegisterUser(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return httperr.BadRequest("name, email, and password are required")
	}

	password := req.Password
	if !auth.IsBcryptHash(password) {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			s.appCtx.Logger.Error("password hash failed", "err", err)
			return httperr.Map(err)
		}
		password = hashed
	}

	user := db.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: password,
	}

	ip := c.RealIP()
	if err := s.userRepo.Register(c.Request().Context(), &user, ip); err != nil {
		s.appCtx.Logger.Error("Register failed", "email", req.Email, "err", err)
		return httperr.Map(err)
	}

	s.appCtx.Logger.Info("user registered", "id", user.ID, "ip", ip)
	return c.JSON(http.StatusOK, RegisterResponse{User: user, IPAddress: ip})
}

// Login verifies credentials and issues a signed token carrying the user's
// id and email.
//
// Behavior:
//   - Unknown email or wrong password → 401, no token.
//   - Any other lookup failure → 500.
func (s *Service) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}

	user, err := s.userRepo.FindByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		s.appCtx.Logger.Error("login lookup failed", "email", req.Email, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return httperr.Unauthorized("invalid credentials")
	}

	ttl := time.Duration(s.appCtx.Config.Auth.TokenTTLHours) * time.Hour
	token, err := auth.IssueToken(s.appCtx.Config.Auth.JWTSecret, ttl, user.ID, user.Email)
	if err != nil {
		s.appCtx.Logger.Error("token issue failed", "user", user.ID, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}
