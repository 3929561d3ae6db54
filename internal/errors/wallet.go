package errors

var (
	ErrInvalidAPIKey = &DomainError{
		Code:    "INVALID_API_KEY",
		Message: "invalid API key",
	}
	ErrEmailAlreadyExists = &DomainError{
		Code:    "EMAIL_ALREADY_EXISTS",
		Message: "email already exists",
	}
	ErrWalletsLimitExceeded = &DomainError{
		Code:    "WALLETS_LIMIT_EXCEEDED",
		Message: "wallets limit exceeded",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletPermissionDenied = &DomainError{
		Code:    "WALLET_PERMISSION_DENIED",
		Message: "wallet permission denied",
	}
	ErrSameWalletTransfer = &DomainError{
		Code:    "SAME_WALLET_TRANSFER",
		Message: "transfer between the same wallet is restricted",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
)
