package handlers

import (
	"context"

	"btcledger/internal/domain/btc"
	"btcledger/internal/logger"
	"btcledger/internal/models"
	"btcledger/internal/services/rate"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type userView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	APIKey string `json:"api_key"`
}

type walletView struct {
	Address    string         `json:"address"`
	BalanceBTC float64        `json:"balance_btc"`
	BalanceSat btcutil.Amount `json:"balance_sat"`
	BalanceUSD *float64       `json:"balance_usd,omitempty"`
}

type transactionView struct {
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Amount      float64 `json:"transaction_amount"`
	Fee         float64 `json:"transaction_fee"`
}

type statisticView struct {
	TotalTransactions int64    `json:"total_transactions"`
	Profit            float64  `json:"profit"`
	ProfitUSD         *float64 `json:"profit_usd,omitempty"`
}

// presenter converts ledger values for the wire. USD amounts are omitted when
// the rate cannot be fetched.
type presenter struct {
	rates rate.Provider
}

func (p presenter) usdRate(ctx context.Context) (decimal.Decimal, bool) {
	if p.rates == nil {
		return decimal.Zero, false
	}
	r, err := p.rates.CurrentRate(ctx)
	if err != nil {
		logger.Warn(ctx, "usd conversion skipped", zap.Error(err))
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(r), true
}

func toUSD(amount, usdRate decimal.Decimal) *float64 {
	v := btc.Float(amount.Mul(usdRate).Round(2))
	return &v
}

func (p presenter) wallet(ctx context.Context, w *models.Wallet) walletView {
	return p.wallets(ctx, []*models.Wallet{w})[0]
}

func (p presenter) wallets(ctx context.Context, ws []*models.Wallet) []walletView {
	views := make([]walletView, 0, len(ws))
	if len(ws) == 0 {
		return views
	}

	usdRate, ok := p.usdRate(ctx)
	for _, w := range ws {
		v := walletView{
			Address:    w.Address,
			BalanceBTC: btc.Float(w.Balance),
			BalanceSat: btc.ToSatoshi(w.Balance),
		}
		if ok {
			v.BalanceUSD = toUSD(w.Balance, usdRate)
		}
		views = append(views, v)
	}
	return views
}

func (p presenter) statistic(ctx context.Context, s *models.Statistic) statisticView {
	v := statisticView{
		TotalTransactions: s.TotalTransactions,
		Profit:            btc.Float(s.Profit),
	}
	if usdRate, ok := p.usdRate(ctx); ok {
		v.ProfitUSD = toUSD(s.Profit, usdRate)
	}
	return v
}

func toTransactionView(tx *models.Transaction) transactionView {
	return transactionView{
		FromAddress: tx.FromAddress,
		ToAddress:   tx.ToAddress,
		Amount:      btc.Float(tx.Amount),
		Fee:         btc.Float(tx.Fee),
	}
}

func toTransactionViews(txs []*models.Transaction) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, toTransactionView(tx))
	}
	return views
}
