package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsKind(t *testing.T) {
	err := Wrap(ErrWalletNotFound, "address<%s>", "abc")

	assert.True(t, errors.Is(err, ErrWalletNotFound))
	assert.False(t, errors.Is(err, ErrWalletPermissionDenied))
	assert.Equal(t, "wallet not found: address<abc>", err.Error())
	assert.Equal(t, "WALLET_NOT_FOUND", Code(err))
}

func TestKindThroughFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("transfer aborted: %w", Wrap(ErrInsufficientBalance, "address<%s>", "w1"))

	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Same(t, ErrInsufficientBalance, kind)
}

func TestCodeForForeignError(t *testing.T) {
	assert.Equal(t, "INTERNAL", Code(errors.New("disk on fire")))
}
