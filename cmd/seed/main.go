// Command seed registers a user against the configured ledger backend and
// opens wallets for it, printing the API key.
package main

import (
	"fmt"
	"os"

	"btcledger/internal/config"
	"btcledger/internal/logger"

	"github.com/jessevdk/go-flags"
)

func main() {
	config.LoadEnv()
	logger.Init("btcledger-seed", "warn")
	defer logger.Sync()

	parser := flags.NewParser(nil, flags.Default)
	if err := newUserCommand().Register(parser); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
