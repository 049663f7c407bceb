package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"CARD", "CASH_ON_DELIVERY", "UPI", "WALLET"} {
		parsed, err := ParseMode(mode)
		assert.NoError(t, err)
		assert.Equal(t, Mode(mode), parsed)
	}

	for _, mode := range []string{"", "card", "BARTER", "CARD "} {
		_, err := ParseMode(mode)
		assert.ErrorIs(t, err, ErrUnknownMode, "mode %q", mode)
	}
}

func TestResultSuccess(t *testing.T) {
	t.Parallel()

	assert.True(t, Result{Status: StatusSuccess}.Success())
	assert.False(t, Result{Status: StatusFailed}.Success())
	assert.False(t, Result{}.Success())
}
