// Package repositories provides the ledger store contract and its gorm
// implementation. The in-memory implementation lives in the memory package.
package repositories

import "context"

// Store groups the repositories of one ledger. All writes issued through the
// Store passed to ExecuteInTransaction's callback commit together or not at
// all.
type Store interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository

	ExecuteInTransaction(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}
