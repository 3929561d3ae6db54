package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"btcledger/internal/config"
	"btcledger/internal/repositories"
	"btcledger/internal/repositories/backend"
	"btcledger/internal/services/user"
	"btcledger/internal/services/wallet"

	"github.com/jessevdk/go-flags"
)

type userCommand struct {
	Email   string `long:"email" short:"e" description:"Email of the user to register" required:"true"`
	Wallets int    `long:"wallets" short:"w" description:"Number of wallets to open for the user" default:"1"`

	out       io.Writer
	openStore func(config.DatabaseConfig) (repositories.Store, func() error, error)
}

func newUserCommand() *userCommand {
	return &userCommand{
		out:       os.Stdout,
		openStore: backend.Open,
	}
}

func (x *userCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"user",
		"Register a user and open wallets",
		"Register a user with the given email against the backend "+
			"selected by LEDGER_BACKEND, open the requested number "+
			"of wallets and print the API key and wallet addresses",
		x,
	)
	return err
}

func (x *userCommand) Execute(_ []string) error {
	if x.Wallets < 0 {
		return errors.New("--wallets must not be negative")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}
	if x.Wallets > cfg.Ledger.WalletsLimit {
		return fmt.Errorf("--wallets %d exceeds WALLETS_LIMIT %d", x.Wallets, cfg.Ledger.WalletsLimit)
	}

	store, closeStore, err := x.openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("cannot open ledger store: %w", err)
	}
	defer closeStore()

	return x.seed(context.Background(), store, wallet.WalletConfig{
		Limit:           cfg.Ledger.WalletsLimit,
		StartingBalance: cfg.Ledger.StartingBalance,
	})
}

func (x *userCommand) seed(ctx context.Context, store repositories.Store, walletCfg wallet.WalletConfig) error {
	u, err := user.NewService(store.Users(), nil).Register(ctx, x.Email)
	if err != nil {
		return fmt.Errorf("cannot register %s: %w", x.Email, err)
	}
	fmt.Fprintf(x.out, "user_id=%s\napi_key=%s\n", u.ID, u.APIKey)

	wallets := wallet.NewService(store, walletCfg, nil)
	for i := 0; i < x.Wallets; i++ {
		w, err := wallets.Create(ctx, u.APIKey)
		if err != nil {
			return fmt.Errorf("cannot open wallet %d: %w", i+1, err)
		}
		fmt.Fprintf(x.out, "wallet=%s balance=%s\n", w.Address, w.Balance.StringFixed(8))
	}
	return nil
}
