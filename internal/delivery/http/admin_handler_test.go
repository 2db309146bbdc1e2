package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

// fakeStore is an in-memory domain.Store for handler tests.
type fakeStore struct {
	users    []*domain.User
	txs      []*domain.Transaction
	gateways []*domain.PaymentGateway
}

func (f *fakeStore) FetchUsers(ctx context.Context) ([]*domain.User, error) {
	return f.users, nil
}

func (f *fakeStore) FetchTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return f.txs, nil
}

func (f *fakeStore) FetchGateways(ctx context.Context) ([]*domain.PaymentGateway, error) {
	return f.gateways, nil
}

func (f *fakeStore) SyncUser(ctx context.Context, user *domain.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeStore) AddTransaction(ctx context.Context, tx *domain.Transaction) error {
	f.txs = append([]*domain.Transaction{tx}, f.txs...)
	return nil
}

func (f *fakeStore) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, tx := range f.txs {
		if tx.ID == id {
			tx.Status = status
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

func (f *fakeStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeStore) SaveGateway(ctx context.Context, gw *domain.PaymentGateway) error {
	for i, g := range f.gateways {
		if g.Name == gw.Name {
			f.gateways[i] = gw
			return nil
		}
	}
	f.gateways = append(f.gateways, gw)
	return nil
}

func newAdminHandler(st *fakeStore) *delivery.AdminHandler {
	return delivery.NewAdminHandler(usecase.NewLedgerService(st), st, service.NewPriceService(1))
}

func putJSON(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUpdateUserRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	alan := &domain.User{ID: uuid.New(), Name: "Alan", Email: "alan@example.com",
		Role: domain.RoleUser, Portfolio: domain.NewPortfolio()}
	grace := &domain.User{ID: uuid.New(), Name: "Grace", Email: "grace@example.com",
		Role: domain.RoleUser, Portfolio: domain.NewPortfolio()}
	st := &fakeStore{users: []*domain.User{alan, grace}}
	h := newAdminHandler(st)

	t.Run("another user's email conflicts", func(t *testing.T) {
		c, rec := putJSON(t, `{"email":"grace@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(alan.ID.String())

		require.NoError(t, h.UpdateUser(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "alan@example.com", alan.Email, "conflicting edit must not be stored")
	})

	t.Run("uniqueness is case-insensitive", func(t *testing.T) {
		c, rec := putJSON(t, `{"email":"GRACE@Example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(alan.ID.String())

		require.NoError(t, h.UpdateUser(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("keeping your own email succeeds", func(t *testing.T) {
		c, rec := putJSON(t, `{"name":"Alan M. Turing","email":"alan@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(alan.ID.String())

		require.NoError(t, h.UpdateUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a fresh email succeeds", func(t *testing.T) {
		c, rec := putJSON(t, `{"email":"turing@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(alan.ID.String())

		require.NoError(t, h.UpdateUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
