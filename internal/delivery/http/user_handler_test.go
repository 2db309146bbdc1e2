package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delivery "elitex/internal/delivery/http"
	"elitex/internal/domain"
	"elitex/internal/service"
	"elitex/internal/usecase"
)

func newUserHandler(st *fakeStore) *delivery.UserHandler {
	return delivery.NewUserHandler(usecase.NewLedgerService(st), st, service.NewPriceService(1))
}

func TestGetMeWithoutSessionIsUnauthorized(t *testing.T) {
	t.Parallel()

	h := newUserHandler(&fakeStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// No auth middleware ran, so the context carries no user id.
	require.NoError(t, h.GetMe(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMeWithSession(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com",
		Role: domain.RoleUser, Portfolio: domain.NewPortfolio()}
	h := newUserHandler(&fakeStore{users: []*domain.User{user}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", user.ID)
	c.Set("role", user.Role)

	require.NoError(t, h.GetMe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}
