package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/ledger"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

type TransactionHandler struct {
	Engine   *ledger.Engine
	Accounts ports.AccountStore
}

// TransactRequest carries one deposit or withdrawal. Amount is in minor
// units. The target account comes from the session, never the body.
type TransactRequest struct {
	Kind   domain.TxKind `json:"kind"`
	Amount int64         `json:"amount"`
}

func (h *TransactionHandler) Transact(c *fiber.Ctx) error {
	var req TransactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	accountNo, _ := c.Locals("account_no").(string)
	if accountNo == "" {
		return errorResponse(c, domain.ErrUnauthorized)
	}

	tx, err := h.Engine.Apply(c.Context(), accountNo, req.Kind, req.Amount)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":      "success",
		"tx_id":       tx.ID,
		"kind":        tx.Kind,
		"amount":      tx.Amount,
		"new_balance": tx.BalanceAfter,
	})
}

func (h *TransactionHandler) GetAccount(c *fiber.Ctx) error {
	accountNo := c.Params("id")
	if sessionAccount, _ := c.Locals("account_no").(string); sessionAccount != accountNo {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "Session does not own this account"})
	}

	account, err := h.Accounts.GetAccount(c.Context(), accountNo)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(account)
}

func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	accountNo := c.Params("id")
	if sessionAccount, _ := c.Locals("account_no").(string); sessionAccount != accountNo {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "Session does not own this account"})
	}

	history, err := h.Engine.History(c.Context(), accountNo, c.QueryInt("limit", 10))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"transactions": history})
}
