// Package btc implements satoshi-precision arithmetic for bitcoin amounts.
// Every stored or compared balance goes through Align, every requested
// transfer amount through RoundUp.
package btc

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places of one satoshi.
const Precision = 8

var (
	// MinUnit is one satoshi expressed in bitcoin.
	MinUnit = decimal.New(1, -Precision)

	satoshiPerBitcoin = decimal.NewFromInt(btcutil.SatoshiPerBitcoin)
)

// RoundUp rounds d up to the next satoshi. Already aligned values are returned
// unchanged.
func RoundUp(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(Precision)
}

// Align snaps a value read back from storage to satoshi precision.
func Align(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// FromFloat converts a JSON number to a decimal using its shortest
// representation, so 0.1 becomes exactly 0.1.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Float returns d as a float64 for presentation.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ToSatoshi converts an aligned bitcoin value to a btcutil.Amount.
func ToSatoshi(d decimal.Decimal) btcutil.Amount {
	return btcutil.Amount(Align(d).Mul(satoshiPerBitcoin).IntPart())
}
