package transaction

import (
	"btcledger/internal/domain/btc"

	"github.com/shopspring/decimal"
)

// FeeRate is the share of a cross-owner transfer retained by the ledger.
var FeeRate = decimal.RequireFromString("0.015")

// CalculateFee returns the fee for a transfer of an already rounded amount.
// Transfers between wallets of one owner are free. A positive fee is never
// less than one satoshi.
func CalculateFee(amount decimal.Decimal, sameOwner bool) decimal.Decimal {
	if sameOwner {
		return decimal.Zero
	}

	fee := amount.Mul(FeeRate)
	if fee.IsPositive() && fee.LessThan(btc.MinUnit) {
		return btc.MinUnit
	}
	return btc.RoundUp(fee)
}
