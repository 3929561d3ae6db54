package models

import "github.com/shopspring/decimal"

// Statistic is derived on demand from the transaction log.
type Statistic struct {
	TotalTransactions int64
	Profit            decimal.Decimal
}
