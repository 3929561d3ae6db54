/*
Package wallet is the wallet registry of the ledger.

A wallet belongs to exactly one user and starts with a configured balance.
Every operation that takes an API key resolves the caller first and returns
the authorization failure unchanged.

Usage:

	svc := wallet.NewService(store, wallet.WalletConfig{Limit: 3}, metrics)

	// Open a wallet for the caller
	w, err := svc.Create(ctx, apiKey)

	// Read a wallet the caller owns
	w, err = svc.Read(ctx, address, apiKey, true)

	// Read any existing wallet, e.g. a transfer destination
	w, err = svc.Read(ctx, address, apiKey, false)

Inside a store transaction, bind the registry to the transaction's store with
WithStore so every read and write joins it.

Errors:

  - ErrInvalidAPIKey: the key resolves to no user
  - ErrWalletsLimitExceeded: the caller already owns Limit wallets
  - ErrWalletNotFound: the address is unknown
  - ErrWalletPermissionDenied: ownership was required and the caller is not the owner
*/
package wallet
