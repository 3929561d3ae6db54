package handlers

import (
	"btcledger/internal/domain/btc"
	"btcledger/internal/middleware"
	"btcledger/internal/models"
	"btcledger/internal/services/transaction"
	"btcledger/internal/utils/pagination"
	"btcledger/internal/utils/response"
	"btcledger/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transfer handles POST /transactions.
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var input validation.TransferInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Transfer(&input)
	if !v.Valid() {
		return validationError(c, v.First())
	}

	tx, err := h.transactionService.Transfer(
		c.UserContext(),
		middleware.APIKey(c),
		input.FromAddress,
		input.ToAddress,
		btc.FromFloat(input.Amount),
	)
	if err != nil {
		return writeError(c, err)
	}
	return response.Created(c, "transaction", toTransactionView(tx))
}

// ListTransactions handles GET /transactions.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.transactionService.ListForCaller(c.UserContext(), middleware.APIKey(c))
	if err != nil {
		return writeError(c, err)
	}
	return listTransactions(c, txs)
}

// ListWalletTransactions handles GET /wallets/:address/transactions.
func (h *TransactionHandler) ListWalletTransactions(c *fiber.Ctx) error {
	txs, err := h.transactionService.ListForWallet(c.UserContext(), middleware.APIKey(c), c.Params("address"))
	if err != nil {
		return writeError(c, err)
	}
	return listTransactions(c, txs)
}

// listTransactions writes the full list, or one page of it when the request
// carries page or limit.
func listTransactions(c *fiber.Ctx, txs []*models.Transaction) error {
	p, paged := pagination.ParseFromRequest(c)
	if !paged {
		return response.OK(c, "transactions", toTransactionViews(txs))
	}

	page := pagination.Slice(txs, &p)
	return c.JSON(fiber.Map{
		"transactions": toTransactionViews(page),
		"pagination":   pagination.Meta(p),
	})
}
