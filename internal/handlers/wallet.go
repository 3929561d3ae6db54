package handlers

import (
	"btcledger/internal/middleware"
	"btcledger/internal/services/rate"
	"btcledger/internal/services/wallet"
	"btcledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	presenter     presenter
}

func NewWalletHandler(walletService wallet.Service, rates rate.Provider) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		presenter:     presenter{rates: rates},
	}
}

// CreateWallet handles POST /wallets.
func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	w, err := h.walletService.Create(ctx, middleware.APIKey(c))
	if err != nil {
		return writeError(c, err)
	}
	return response.Created(c, "wallet", h.presenter.wallet(ctx, w))
}

// ListWallets handles GET /wallets.
func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ws, err := h.walletService.ReadAll(ctx, middleware.APIKey(c))
	if err != nil {
		return writeError(c, err)
	}
	return response.OK(c, "wallets", h.presenter.wallets(ctx, ws))
}

// GetWallet handles GET /wallets/:address.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	w, err := h.walletService.Read(ctx, c.Params("address"), middleware.APIKey(c), true)
	if err != nil {
		return writeError(c, err)
	}
	return response.OK(c, "wallet", h.presenter.wallet(ctx, w))
}
