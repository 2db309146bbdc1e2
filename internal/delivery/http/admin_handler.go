package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"elitex/internal/delivery/http/dto"
	"elitex/internal/domain"
	"elitex/internal/service"
	"elitex/internal/usecase"
)

// AdminHandler handles the administration surface: transaction review, user
// management and payment gateway configuration.
type AdminHandler struct {
	ledger *usecase.LedgerService
	store  domain.Store
	prices *service.PriceService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(ledger *usecase.LedgerService, store domain.Store, prices *service.PriceService) *AdminHandler {
	return &AdminHandler{
		ledger: ledger,
		store:  store,
		prices: prices,
	}
}

// ListUsers returns all users with computed net worth
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.store.FetchUsers(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch users", err)
	}

	assets := h.prices.Snapshot()
	out := make([]*dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserOutput(u, h.ledger.ComputeNetWorth(u, assets)))
	}

	return SuccessResponse(c, map[string]interface{}{
		"users": out,
		"count": len(out),
	})
}

// ListTransactions returns all transactions, optionally filtered by status
// GET /api/admin/transactions?status=PENDING
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	txs, err := h.store.FetchTransactions(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch transactions", err)
	}

	if status := strings.ToUpper(c.QueryParam("status")); status != "" {
		filtered := make([]*domain.Transaction, 0, len(txs))
		for _, tx := range txs {
			if tx.Status == status {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	return SuccessResponse(c, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// DecideTransaction approves or rejects a PENDING deposit/withdrawal and
// applies the balance effect exactly once
// POST /api/admin/transactions/:id/decide
func (h *AdminHandler) DecideTransaction(c echo.Context) error {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid transaction id")
	}

	var req dto.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, tx, err := h.ledger.ProcessAdminDecision(ctx, txID, strings.ToUpper(req.Decision))
	if err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		return LedgerErrorResponse(c, err)
	}

	data := map[string]interface{}{"transaction": tx}
	if user != nil {
		data["user"] = dto.NewUserOutput(user, h.ledger.ComputeNetWorth(user, h.prices.Snapshot()))
	}
	if err != nil {
		return SuccessWithWarning(c, err.Error(), data)
	}
	return SuccessResponse(c, data)
}

// AdjustBalance applies a direct admin balance change, ledger-recorded
// POST /api/admin/users/:id/balance
func (h *AdminHandler) AdjustBalance(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	var req dto.AdjustBalanceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.ledger.GetUser(ctx, userID)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	updated, tx, err := h.ledger.AdjustBalance(ctx, user, req.Amount, strings.ToUpper(req.Direction))
	if err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		return LedgerErrorResponse(c, err)
	}

	data := map[string]interface{}{
		"user":        dto.NewUserOutput(updated, h.ledger.ComputeNetWorth(updated, h.prices.Snapshot())),
		"transaction": tx,
	}
	if err != nil {
		return SuccessWithWarning(c, err.Error(), data)
	}
	return SuccessResponse(c, data)
}

// UpdateUser edits a user's profile fields. Balance is not editable here.
// PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.ledger.GetUser(ctx, userID)
	if err != nil {
		return LedgerErrorResponse(c, err)
	}

	updated := user.Clone()
	if name := strings.TrimSpace(req.Name); name != "" {
		updated.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != strings.ToLower(user.Email) {
		if existing, err := h.ledger.GetUserByEmail(ctx, email); err == nil && existing.ID != userID {
			return LedgerErrorResponse(c, domain.ErrEmailTaken)
		}
		updated.Email = email
	}
	if req.Address != "" {
		updated.Address = strings.TrimSpace(req.Address)
	}
	if req.Phone != "" {
		updated.Phone = strings.TrimSpace(req.Phone)
	}
	updated.UpdatedAt = time.Now()

	if err := h.store.SyncUser(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return InternalServerErrorResponse(c, "Failed to update user", err)
		}
		return SuccessWithWarning(c, err.Error(), dto.NewUserOutput(updated, h.ledger.ComputeNetWorth(updated, h.prices.Snapshot())))
	}

	return SuccessResponse(c, dto.NewUserOutput(updated, h.ledger.ComputeNetWorth(updated, h.prices.Snapshot())))
}

// DeleteUser removes a user record. Their transactions remain for audit.
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.store.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return InternalServerErrorResponse(c, "Failed to delete user", err)
		}
		return SuccessWithWarning(c, err.Error(), map[string]string{"deleted": userID.String()})
	}

	return SuccessResponse(c, map[string]string{"deleted": userID.String()})
}

// ListGateways returns all gateways including inactive ones
// GET /api/admin/gateways
func (h *AdminHandler) ListGateways(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gateways, err := h.store.FetchGateways(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch gateways", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"gateways": gateways,
		"count":    len(gateways),
	})
}

// SaveGateway creates or updates a payment gateway. New gateways get a
// generated opaque api key.
// PUT /api/admin/gateways
func (h *AdminHandler) SaveGateway(c echo.Context) error {
	var req dto.GatewayInput
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return BadRequestResponse(c, "Gateway name is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gw := &domain.PaymentGateway{
		Name:          strings.TrimSpace(req.Name),
		Active:        req.Active,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Link:          req.Link,
		Currency:      req.Currency,
		MinDeposit:    req.MinDeposit,
		MaxDeposit:    req.MaxDeposit,
		FeePercent:    req.FeePercent,
		MerchantName:  req.MerchantName,
		LogoURL:       req.LogoURL,
	}

	// Keep the existing api key on update, generate one on create.
	existing, err := h.store.FetchGateways(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch gateways", err)
	}
	for _, g := range existing {
		if g.Name == gw.Name {
			gw.APIKey = g.APIKey
			break
		}
	}
	if gw.APIKey == "" {
		gw.APIKey = uuid.NewString()
	}

	if err := h.store.SaveGateway(ctx, gw); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return InternalServerErrorResponse(c, "Failed to save gateway", err)
		}
		return SuccessWithWarning(c, err.Error(), gw)
	}

	return SuccessResponse(c, gw)
}

// ToggleGateway flips a gateway's active flag
// POST /api/admin/gateways/:name/toggle
func (h *AdminHandler) ToggleGateway(c echo.Context) error {
	name := c.Param("name")

	var req dto.ToggleGatewayRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gateways, err := h.store.FetchGateways(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch gateways", err)
	}

	for _, gw := range gateways {
		if gw.Name == name {
			gw.Active = req.Active
			if err := h.store.SaveGateway(ctx, gw); err != nil {
				if !errors.Is(err, domain.ErrRemoteSyncPending) {
					return InternalServerErrorResponse(c, "Failed to save gateway", err)
				}
				return SuccessWithWarning(c, err.Error(), gw)
			}
			return SuccessResponse(c, gw)
		}
	}

	return NotFoundResponse(c, "Gateway not found")
}
