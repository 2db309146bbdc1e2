package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"elitex/internal/delivery/http/dto"
	"elitex/internal/domain"
	"elitex/internal/middleware"
	"elitex/internal/service"
	"elitex/internal/usecase"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	ledger          *usecase.LedgerService
	store           domain.Store
	prices          *service.PriceService
	startingBalance decimal.Decimal
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(ledger *usecase.LedgerService, store domain.Store, prices *service.PriceService, startingBalance decimal.Decimal) *AuthHandler {
	return &AuthHandler{
		ledger:          ledger,
		store:           store,
		prices:          prices,
		startingBalance: startingBalance,
	}
}

// Signup handles a membership application
// POST /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Name, email and password are required")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.ledger.GetUserByEmail(ctx, req.Email); err == nil {
		return LedgerErrorResponse(c, domain.ErrEmailTaken)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return InternalServerErrorResponse(c, "Failed to check email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		Balance:      h.startingBalance,
		Portfolio:    domain.NewPortfolio(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	syncWarn := ""
	if err := h.store.SyncUser(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return InternalServerErrorResponse(c, "Failed to create user", err)
		}
		syncWarn = err.Error()
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}
	setSessionCookie(c, token)

	netWorth := h.ledger.ComputeNetWorth(user, h.prices.Snapshot())
	resp := dto.AuthResponse{Token: token, User: dto.NewUserOutput(user, netWorth)}
	if syncWarn != "" {
		return c.JSON(http.StatusCreated, Response{Status: "success", Message: syncWarn, Data: resp})
	}
	return CreatedResponse(c, resp)
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.ledger.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}
	setSessionCookie(c, token)

	netWorth := h.ledger.ComputeNetWorth(user, h.prices.Snapshot())
	return SuccessResponse(c, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserOutput(user, netWorth),
	})
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)
	return SuccessResponse(c, map[string]string{"message": "Logged out"})
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})
}
