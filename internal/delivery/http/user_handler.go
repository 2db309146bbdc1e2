package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"elitex/internal/delivery/http/dto"
	"elitex/internal/domain"
	"elitex/internal/middleware"
	"elitex/internal/service"
	"elitex/internal/usecase"
)

// UserHandler handles account, trading and payment-request endpoints
type UserHandler struct {
	ledger *usecase.LedgerService
	store  domain.Store
	prices *service.PriceService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(ledger *usecase.LedgerService, store domain.Store, prices *service.PriceService) *UserHandler {
	return &UserHandler{
		ledger: ledger,
		store:  store,
		prices: prices,
	}
}

// sessionUser resolves the JWT session into a fresh user record.
func (h *UserHandler) sessionUser(c echo.Context, ctx context.Context) (*domain.User, error) {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return nil, err
	}
	return h.ledger.GetUser(ctx, userID)
}

// GetAssets returns the catalog with live prices
// GET /api/assets
func (h *UserHandler) GetAssets(c echo.Context) error {
	return SuccessResponse(c, map[string]interface{}{
		"assets": h.prices.Snapshot(),
	})
}

// GetMe returns the logged-in user with computed net worth
// GET /api/user/me
func (h *UserHandler) GetMe(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.sessionUser(c, ctx)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	netWorth := h.ledger.ComputeNetWorth(user, h.prices.Snapshot())
	return SuccessResponse(c, dto.NewUserOutput(user, netWorth))
}

// Trade executes a buy or sell at the current catalog price
// POST /api/user/trade
func (h *UserHandler) Trade(c echo.Context) error {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.sessionUser(c, ctx)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	asset, err := h.prices.Get(domain.AssetType(req.AssetType))
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	updated, tx, err := h.ledger.ExecuteTrade(ctx, user, asset, req.Quantity, req.Direction)
	if err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		return LedgerErrorResponse(c, err)
	}

	netWorth := h.ledger.ComputeNetWorth(updated, h.prices.Snapshot())
	resp := dto.TradeResponse{User: dto.NewUserOutput(updated, netWorth), Transaction: tx}
	if err != nil {
		return SuccessWithWarning(c, err.Error(), resp)
	}
	return SuccessResponse(c, resp)
}

// Deposit submits a PENDING deposit request for admin verification
// POST /api/user/deposit
func (h *UserHandler) Deposit(c echo.Context) error {
	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.sessionUser(c, ctx)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	tx, err := h.ledger.RequestDeposit(ctx, user, req.Amount, req.Reference)
	if err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		return LedgerErrorResponse(c, err)
	}
	if err != nil {
		return SuccessWithWarning(c, err.Error(), tx)
	}
	return CreatedResponse(c, tx)
}

// Withdraw submits a PENDING withdrawal request; the amount moves to escrow
// immediately
// POST /api/user/withdraw
func (h *UserHandler) Withdraw(c echo.Context) error {
	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.sessionUser(c, ctx)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	updated, tx, err := h.ledger.RequestWithdrawal(ctx, user, req.Amount, req.PayoutDetails)
	if err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		return LedgerErrorResponse(c, err)
	}

	netWorth := h.ledger.ComputeNetWorth(updated, h.prices.Snapshot())
	resp := dto.TradeResponse{User: dto.NewUserOutput(updated, netWorth), Transaction: tx}
	if err != nil {
		return SuccessWithWarning(c, err.Error(), resp)
	}
	return CreatedResponse(c, resp)
}

// GetTransactions returns the user's own history, newest first
// GET /api/user/transactions
func (h *UserHandler) GetTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Invalid session")
	}

	txs, err := h.ledger.UserTransactions(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch transactions", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// GetGateways returns the active payment gateways users may deposit through
// GET /api/user/gateways
func (h *UserHandler) GetGateways(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gateways, err := h.store.FetchGateways(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch gateways", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"gateways": domain.ActiveGateways(gateways),
	})
}
