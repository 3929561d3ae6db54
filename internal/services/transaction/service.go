package transaction

import (
	"context"

	"btcledger/internal/domain/btc"
	domainErrors "btcledger/internal/errors"
	"btcledger/internal/logger"
	"btcledger/internal/metrics"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/services/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service moves balance between wallets and reads the transaction log.
type Service interface {
	// Transfer debits amount, rounded up to the satoshi, from the caller's
	// wallet and credits it less the fee to the destination. Either both
	// balances change and one transaction is appended, or nothing changes.
	Transfer(ctx context.Context, apiKey, fromAddress, toAddress string, amount decimal.Decimal) (*models.Transaction, error)

	// ListForCaller returns, in ledger order, every transaction touching a
	// wallet the caller owns.
	ListForCaller(ctx context.Context, apiKey string) ([]*models.Transaction, error)

	// ListForWallet returns, in ledger order, the transactions of one wallet
	// the caller owns.
	ListForWallet(ctx context.Context, apiKey, address string) ([]*models.Transaction, error)
}

type service struct {
	store   repositories.Store
	wallets wallet.Service
	metrics metrics.MetricsCollector
}

func NewService(store repositories.Store, wallets wallet.Service, collector metrics.MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}

	return &service{
		store:   store,
		wallets: wallets,
		metrics: collector,
	}
}

func (s *service) Transfer(ctx context.Context, apiKey, fromAddress, toAddress string, amount decimal.Decimal) (*models.Transaction, error) {
	if fromAddress == toAddress {
		return nil, s.reject(ctx, domainErrors.Wrap(domainErrors.ErrSameWalletTransfer, "address<%s>", fromAddress))
	}

	var record *models.Transaction
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Wallets().LockForUpdate(ctx, fromAddress, toAddress); err != nil {
			return err
		}
		wallets := s.wallets.WithStore(tx)

		from, err := wallets.Read(ctx, fromAddress, apiKey, true)
		if err != nil {
			return err
		}
		to, err := wallets.Read(ctx, toAddress, apiKey, false)
		if err != nil {
			return err
		}

		if !amount.IsPositive() {
			return domainErrors.Wrap(domainErrors.ErrInvalidAmount, "amount<%s>", amount.String())
		}
		rounded := btc.RoundUp(amount)

		balance := btc.Align(from.Balance)
		if balance.LessThan(rounded) {
			return domainErrors.Wrap(domainErrors.ErrInsufficientBalance,
				"address<%s> balance<%s> amount<%s>", fromAddress, balance.String(), rounded.String())
		}

		fee := CalculateFee(rounded, from.UserID == to.UserID)

		if err := wallets.UpdateBalance(ctx, from.Address, balance.Sub(rounded)); err != nil {
			return err
		}
		credited := btc.Align(to.Balance).Add(rounded).Sub(fee)
		if err := wallets.UpdateBalance(ctx, to.Address, credited); err != nil {
			return err
		}

		record = &models.Transaction{
			FromAddress: from.Address,
			ToAddress:   to.Address,
			Amount:      rounded,
			Fee:         fee,
		}
		return tx.Transactions().Append(ctx, record)
	})
	if err != nil {
		return nil, s.reject(ctx, err)
	}

	s.metrics.RecordTransfer(btc.Float(record.Amount), btc.Float(record.Fee))
	logger.Info(ctx, "transfer committed",
		zap.String("from", record.FromAddress),
		zap.String("to", record.ToAddress),
		zap.String("amount", record.Amount.String()),
		zap.String("fee", record.Fee.String()),
	)
	return record, nil
}

func (s *service) ListForCaller(ctx context.Context, apiKey string) ([]*models.Transaction, error) {
	wallets, err := s.wallets.ReadAll(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(wallets))
	for _, w := range wallets {
		addresses = append(addresses, w.Address)
	}
	return s.store.Transactions().ListByAddresses(ctx, addresses)
}

func (s *service) ListForWallet(ctx context.Context, apiKey, address string) ([]*models.Transaction, error) {
	w, err := s.wallets.Read(ctx, address, apiKey, true)
	if err != nil {
		return nil, err
	}
	return s.store.Transactions().ListByAddresses(ctx, []string{w.Address})
}

func (s *service) reject(ctx context.Context, err error) error {
	code := domainErrors.Code(err)
	s.metrics.RecordError("transfer", code)
	if code == "INTERNAL" {
		logger.Error(ctx, "transfer failed", zap.Error(err))
	} else {
		logger.Warn(ctx, "transfer rejected", zap.String("code", code))
	}
	return err
}
