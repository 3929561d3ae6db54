package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "btcledger/internal/errors"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/repositories/memory"
	"btcledger/internal/services/user"
	"btcledger/internal/services/wallet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

type ledger struct {
	store   repositories.Store
	wallets wallet.Service
	svc     Service
}

func newLedger(store repositories.Store) *ledger {
	wallets := wallet.NewService(store, wallet.WalletConfig{}, nil)
	return &ledger{
		store:   store,
		wallets: wallets,
		svc:     NewService(store, wallets, nil),
	}
}

func newSQLiteStore(t *testing.T) repositories.Store {
	t.Helper()
	db, err := repositories.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return repositories.NewGormStore(db)
}

func backends() map[string]func(*testing.T) repositories.Store {
	return map[string]func(*testing.T) repositories.Store{
		"memory": func(*testing.T) repositories.Store { return memory.NewStore() },
		"sqlite": newSQLiteStore,
	}
}

func (l *ledger) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := user.NewService(l.store.Users(), nil).Register(context.Background(), email)
	require.NoError(t, err)
	return u
}

func (l *ledger) openWallet(t *testing.T, apiKey string) *models.Wallet {
	t.Helper()
	w, err := l.wallets.Create(context.Background(), apiKey)
	require.NoError(t, err)
	return w
}

func (l *ledger) balance(t *testing.T, address string) string {
	t.Helper()
	w, err := l.store.Wallets().GetByAddress(context.Background(), address)
	require.NoError(t, err)
	return w.Balance.StringFixed(8)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransfer_CrossOwner(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(newStore(t))
			alice := l.register(t, "a@x.com")
			bob := l.register(t, "b@x.com")
			w1 := l.openWallet(t, alice.APIKey)
			w2 := l.openWallet(t, bob.APIKey)

			tx, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("1.0"))
			require.NoError(t, err)
			assert.Equal(t, w1.Address, tx.FromAddress)
			assert.Equal(t, w2.Address, tx.ToAddress)
			assert.Equal(t, "1.00000000", tx.Amount.StringFixed(8))
			assert.Equal(t, "0.01500000", tx.Fee.StringFixed(8))

			assert.Equal(t, "0.00000000", l.balance(t, w1.Address))
			assert.Equal(t, "1.98500000", l.balance(t, w2.Address))

			stats, err := l.store.Transactions().Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), stats.TotalTransactions)
			assert.Equal(t, "0.01500000", stats.Profit.StringFixed(8))
		})
	}
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(newStore(t))
			alice := l.register(t, "a@x.com")
			bob := l.register(t, "b@x.com")
			w1 := l.openWallet(t, alice.APIKey)
			w2 := l.openWallet(t, bob.APIKey)

			_, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("1.5"))
			assert.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)

			assert.Equal(t, "1.00000000", l.balance(t, w1.Address))
			assert.Equal(t, "1.00000000", l.balance(t, w2.Address))
			stats, err := l.store.Transactions().Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(0), stats.TotalTransactions)
		})
	}
}

func TestTransfer_Failures(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, bob.APIKey)

	tests := []struct {
		name     string
		apiKey   string
		from     string
		to       string
		amount   string
		wantKind error
	}{
		{"same wallet", alice.APIKey, w1.Address, w1.Address, "0.1", domainErrors.ErrSameWalletTransfer},
		{"same wallet before key check", "bogus", w1.Address, w1.Address, "0.1", domainErrors.ErrSameWalletTransfer},
		{"same wallet before amount check", alice.APIKey, w1.Address, w1.Address, "-5", domainErrors.ErrSameWalletTransfer},
		{"invalid key", "bogus", w1.Address, w2.Address, "0.1", domainErrors.ErrInvalidAPIKey},
		{"unknown source", alice.APIKey, "missing", w2.Address, "0.1", domainErrors.ErrWalletNotFound},
		{"source not owned", bob.APIKey, w1.Address, w2.Address, "0.1", domainErrors.ErrWalletPermissionDenied},
		{"unknown destination", alice.APIKey, w1.Address, "missing", "0.1", domainErrors.ErrWalletNotFound},
		{"zero amount", alice.APIKey, w1.Address, w2.Address, "0", domainErrors.ErrInvalidAmount},
		{"negative amount", alice.APIKey, w1.Address, w2.Address, "-0.5", domainErrors.ErrInvalidAmount},
		{"rounding pushes over balance", alice.APIKey, w1.Address, w2.Address, "1.000000001", domainErrors.ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := l.svc.Transfer(ctx, tt.apiKey, tt.from, tt.to, d(tt.amount))
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Nil(t, tx)
		})
	}

	assert.Equal(t, "1.00000000", l.balance(t, w1.Address))
	assert.Equal(t, "1.00000000", l.balance(t, w2.Address))
}

func TestTransfer_ToForeignWalletAllowed(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, bob.APIKey)

	_, err := l.svc.Transfer(ctx, bob.APIKey, w2.Address, w1.Address, d("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "0.50000000", l.balance(t, w2.Address))
	assert.Equal(t, "1.49250000", l.balance(t, w1.Address))
}

func TestTransfer_SameOwnerIsFree(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, alice.APIKey)

	tx, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.75"))
	require.NoError(t, err)
	assert.True(t, tx.Fee.IsZero())
	assert.Equal(t, "0.25000000", l.balance(t, w1.Address))
	assert.Equal(t, "1.75000000", l.balance(t, w2.Address))
}

func TestTransfer_RoundsAmountUp(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, alice.APIKey)

	tx, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.123456781"))
	require.NoError(t, err)
	assert.Equal(t, "0.12345679", tx.Amount.StringFixed(8))
	assert.Equal(t, "0.87654321", l.balance(t, w1.Address))
}

func TestTransfer_MinimumFeePerTransfer(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, bob.APIKey)

	for i := 0; i < 2; i++ {
		tx, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.0000001"))
		require.NoError(t, err)
		assert.Equal(t, "0.00000001", tx.Fee.StringFixed(8))
	}

	assert.Equal(t, "0.99999980", l.balance(t, w1.Address))
	assert.Equal(t, "1.00000018", l.balance(t, w2.Address))
	stats, err := l.store.Transactions().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.00000002", stats.Profit.StringFixed(8))
}

func TestTransfer_DrainToZeroNeverNegative(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	w1 := l.openWallet(t, alice.APIKey)
	w2 := l.openWallet(t, bob.APIKey)

	for _, amount := range []string{"0.3", "0.3", "0.3", "0.1"} {
		_, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d(amount))
		require.NoError(t, err)
	}
	_, err := l.svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.00000001"))
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)
	assert.Equal(t, "0.00000000", l.balance(t, w1.Address))
}

type failingAppendStore struct {
	repositories.Store
}

func (s failingAppendStore) ExecuteInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	return s.Store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		return fn(failingAppendStore{tx})
	})
}

func (s failingAppendStore) Transactions() repositories.TransactionRepository {
	return failingTxRepo{s.Store.Transactions()}
}

type failingTxRepo struct {
	repositories.TransactionRepository
}

var errDiskFull = errors.New("disk full")

func (failingTxRepo) Append(context.Context, *models.Transaction) error {
	return errDiskFull
}

func TestTransfer_AppendFailureRollsBack(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := newStore(t)
			l := newLedger(base)
			alice := l.register(t, "a@x.com")
			bob := l.register(t, "b@x.com")
			w1 := l.openWallet(t, alice.APIKey)
			w2 := l.openWallet(t, bob.APIKey)

			failing := failingAppendStore{base}
			svc := NewService(failing, wallet.NewService(failing, wallet.WalletConfig{}, nil), nil)

			_, err := svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.5"))
			assert.ErrorIs(t, err, errDiskFull)

			assert.Equal(t, "1.00000000", l.balance(t, w1.Address))
			assert.Equal(t, "1.00000000", l.balance(t, w2.Address))
		})
	}
}

type recordingStore struct {
	repositories.Store
	events *[]string
}

func (s recordingStore) ExecuteInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	return s.Store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		return fn(recordingStore{tx, s.events})
	})
}

func (s recordingStore) Wallets() repositories.WalletRepository {
	return recordingWallets{s.Store.Wallets(), s.events}
}

type recordingWallets struct {
	repositories.WalletRepository
	events *[]string
}

func (w recordingWallets) LockForUpdate(ctx context.Context, addresses ...string) error {
	*w.events = append(*w.events, "lock "+strings.Join(addresses, " "))
	return w.WalletRepository.LockForUpdate(ctx, addresses...)
}

func (w recordingWallets) GetByAddress(ctx context.Context, address string) (*models.Wallet, error) {
	*w.events = append(*w.events, "read "+address)
	return w.WalletRepository.GetByAddress(ctx, address)
}

func TestTransfer_LocksBothWalletsBeforeReading(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := newStore(t)
			l := newLedger(base)
			alice := l.register(t, "a@x.com")
			bob := l.register(t, "b@x.com")
			w1 := l.openWallet(t, alice.APIKey)
			w2 := l.openWallet(t, bob.APIKey)

			var events []string
			recording := recordingStore{base, &events}
			svc := NewService(recording, wallet.NewService(recording, wallet.WalletConfig{}, nil), nil)

			_, err := svc.Transfer(ctx, alice.APIKey, w1.Address, w2.Address, d("0.5"))
			require.NoError(t, err)

			assert.Equal(t, []string{
				"lock " + w1.Address + " " + w2.Address,
				"read " + w1.Address,
				"read " + w2.Address,
			}, events)
		})
	}
}

func TestListForCaller(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	carol := l.register(t, "c@x.com")
	a1 := l.openWallet(t, alice.APIKey)
	a2 := l.openWallet(t, alice.APIKey)
	b1 := l.openWallet(t, bob.APIKey)
	c1 := l.openWallet(t, carol.APIKey)

	_, err := l.svc.Transfer(ctx, alice.APIKey, a1.Address, a2.Address, d("0.1"))
	require.NoError(t, err)
	_, err = l.svc.Transfer(ctx, bob.APIKey, b1.Address, c1.Address, d("0.1"))
	require.NoError(t, err)
	_, err = l.svc.Transfer(ctx, bob.APIKey, b1.Address, a2.Address, d("0.2"))
	require.NoError(t, err)

	txs, err := l.svc.ListForCaller(ctx, alice.APIKey)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, a1.Address, txs[0].FromAddress)
	assert.Equal(t, b1.Address, txs[1].FromAddress)

	txs, err = l.svc.ListForCaller(ctx, carol.APIKey)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, c1.Address, txs[0].ToAddress)

	dave := l.register(t, "d@x.com")
	txs, err = l.svc.ListForCaller(ctx, dave.APIKey)
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = l.svc.ListForCaller(ctx, "bogus")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAPIKey)
}

func TestListForWallet(t *testing.T) {
	ctx := context.Background()
	l := newLedger(memory.NewStore())
	alice := l.register(t, "a@x.com")
	bob := l.register(t, "b@x.com")
	a1 := l.openWallet(t, alice.APIKey)
	a2 := l.openWallet(t, alice.APIKey)
	b1 := l.openWallet(t, bob.APIKey)

	_, err := l.svc.Transfer(ctx, alice.APIKey, a1.Address, b1.Address, d("0.1"))
	require.NoError(t, err)
	_, err = l.svc.Transfer(ctx, alice.APIKey, a2.Address, b1.Address, d("0.1"))
	require.NoError(t, err)

	txs, err := l.svc.ListForWallet(ctx, alice.APIKey, a1.Address)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Involves(a1.Address))

	txs, err = l.svc.ListForWallet(ctx, bob.APIKey, b1.Address)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	_, err = l.svc.ListForWallet(ctx, bob.APIKey, a1.Address)
	assert.ErrorIs(t, err, domainErrors.ErrWalletPermissionDenied)
	_, err = l.svc.ListForWallet(ctx, alice.APIKey, "missing")
	assert.ErrorIs(t, err, domainErrors.ErrWalletNotFound)
	_, err = l.svc.ListForWallet(ctx, "bogus", a1.Address)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAPIKey)
}
