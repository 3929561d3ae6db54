// Package memory implements repositories.Store on process memory. It is the
// default backend and the reference the gorm store is tested against.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"btcledger/internal/domain/btc"
	"btcledger/internal/models"
	"btcledger/internal/repositories"

	"github.com/shopspring/decimal"
)

type state struct {
	users       map[string]*models.User
	emails      map[string]string
	keyHashes   map[string]string
	wallets     map[string]*models.Wallet
	walletOrder []string
	txs         []*models.Transaction
	nextWallet  uint
	nextTx      uint
}

func newState() *state {
	return &state{
		users:     make(map[string]*models.User),
		emails:    make(map[string]string),
		keyHashes: make(map[string]string),
		wallets:   make(map[string]*models.Wallet),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:       make(map[string]*models.User, len(s.users)),
		emails:      make(map[string]string, len(s.emails)),
		keyHashes:   make(map[string]string, len(s.keyHashes)),
		wallets:     make(map[string]*models.Wallet, len(s.wallets)),
		walletOrder: append([]string(nil), s.walletOrder...),
		txs:         append([]*models.Transaction(nil), s.txs...),
		nextWallet:  s.nextWallet,
		nextTx:      s.nextTx,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.emails {
		c.emails[k] = v
	}
	for k, v := range s.keyHashes {
		c.keyHashes[k] = v
	}
	for k, v := range s.wallets {
		w := *v
		c.wallets[k] = &w
	}
	return c
}

// Store is an in-memory ledger. The zero value is not usable; call NewStore.
//
// mu guards st. A transaction holds it exclusively from snapshot to commit or
// rollback, so no write outside the transaction can be lost by a rollback and
// no read observes uncommitted balances.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// NewStore returns an empty in-memory ledger.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) Users() repositories.UserRepository {
	return userRepo{s: s}
}

func (s *Store) Wallets() repositories.WalletRepository {
	return walletRepo{s: s}
}

func (s *Store) Transactions() repositories.TransactionRepository {
	return txRepo{s: s}
}

// ExecuteInTransaction runs fn with the store locked against every other
// reader and writer, and restores the previous state if fn fails. fn must
// only use the Store it is given.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(txView{s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// rlock and lock take mu unless the caller runs inside a transaction, which
// already holds it.
func (s *Store) rlock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// txView is the Store handed to a transaction callback. Nested transactions
// join the outer one.
type txView struct {
	*Store
}

func (v txView) Users() repositories.UserRepository {
	return userRepo{s: v.Store, held: true}
}

func (v txView) Wallets() repositories.WalletRepository {
	return walletRepo{s: v.Store, held: true}
}

func (v txView) Transactions() repositories.TransactionRepository {
	return txRepo{s: v.Store, held: true}
}

func (v txView) ExecuteInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(v)
}

type userRepo struct {
	s    *Store
	held bool
}

func (r userRepo) Create(ctx context.Context, user *models.User) error {
	defer r.s.lock(r.held)()

	st := r.s.st
	if _, ok := st.emails[user.Email]; ok {
		return repositories.ErrEmailTaken
	}
	if _, ok := st.users[user.ID]; ok {
		return errors.New("user already exists")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}

	stored := *user
	stored.APIKey = ""
	st.users[user.ID] = &stored
	st.emails[user.Email] = user.ID
	st.keyHashes[user.APIKeyHash] = user.ID
	return nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.s.rlock(r.held)()

	id, ok := r.s.st.emails[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	u := *r.s.st.users[id]
	return &u, nil
}

func (r userRepo) GetByAPIKeyHash(ctx context.Context, hash string) (*models.User, error) {
	defer r.s.rlock(r.held)()

	id, ok := r.s.st.keyHashes[hash]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	u := *r.s.st.users[id]
	return &u, nil
}

// LockForUpdate is a no-op: a transaction already holds the whole store.
func (r userRepo) LockForUpdate(ctx context.Context, id string) error {
	return nil
}

type walletRepo struct {
	s    *Store
	held bool
}

func (r walletRepo) Create(ctx context.Context, wallet *models.Wallet) error {
	defer r.s.lock(r.held)()

	st := r.s.st
	if _, ok := st.wallets[wallet.Address]; ok {
		return repositories.ErrDuplicateWallet
	}
	st.nextWallet++
	now := r.s.now()
	wallet.ID = st.nextWallet
	wallet.Balance = btc.Align(wallet.Balance)
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	stored := *wallet
	st.wallets[wallet.Address] = &stored
	st.walletOrder = append(st.walletOrder, wallet.Address)
	return nil
}

func (r walletRepo) GetByAddress(ctx context.Context, address string) (*models.Wallet, error) {
	defer r.s.rlock(r.held)()

	w, ok := r.s.st.wallets[address]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	c := *w
	return &c, nil
}

func (r walletRepo) ListByUserID(ctx context.Context, userID string) ([]*models.Wallet, error) {
	defer r.s.rlock(r.held)()

	wallets := make([]*models.Wallet, 0)
	for _, addr := range r.s.st.walletOrder {
		w := r.s.st.wallets[addr]
		if w.UserID == userID {
			c := *w
			wallets = append(wallets, &c)
		}
	}
	return wallets, nil
}

func (r walletRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	defer r.s.rlock(r.held)()

	var n int64
	for _, w := range r.s.st.wallets {
		if w.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r walletRepo) UpdateBalance(ctx context.Context, address string, balance decimal.Decimal) error {
	defer r.s.lock(r.held)()

	w, ok := r.s.st.wallets[address]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.Balance = btc.Align(balance)
	w.UpdatedAt = r.s.now()
	return nil
}

// LockForUpdate is a no-op: a transaction already holds the whole store.
func (r walletRepo) LockForUpdate(ctx context.Context, addresses ...string) error {
	return nil
}

type txRepo struct {
	s    *Store
	held bool
}

func (r txRepo) Append(ctx context.Context, tx *models.Transaction) error {
	defer r.s.lock(r.held)()

	st := r.s.st
	st.nextTx++
	tx.ID = st.nextTx
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = r.s.now()
	}
	stored := *tx
	st.txs = append(st.txs, &stored)
	return nil
}

func (r txRepo) ListByAddresses(ctx context.Context, addresses []string) ([]*models.Transaction, error) {
	defer r.s.rlock(r.held)()

	txs := make([]*models.Transaction, 0)
	if len(addresses) == 0 {
		return txs, nil
	}
	set := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		set[a] = struct{}{}
	}
	for _, tx := range r.s.st.txs {
		_, from := set[tx.FromAddress]
		_, to := set[tx.ToAddress]
		if from || to {
			c := *tx
			txs = append(txs, &c)
		}
	}
	return txs, nil
}

func (r txRepo) Stats(ctx context.Context) (*models.Statistic, error) {
	defer r.s.rlock(r.held)()

	profit := decimal.Zero
	for _, tx := range r.s.st.txs {
		profit = profit.Add(tx.Fee)
	}
	return &models.Statistic{
		TotalTransactions: int64(len(r.s.st.txs)),
		Profit:            btc.Align(profit),
	}, nil
}
