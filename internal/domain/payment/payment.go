package payment

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("payment: unknown payment mode")

// Mode is the closed set of recognized payment modes. Values outside the set
// are rejected at request validation time.
type Mode string

const (
	ModeCard           Mode = "CARD"
	ModeCashOnDelivery Mode = "CASH_ON_DELIVERY"
	ModeUPI            Mode = "UPI"
	ModeWallet         Mode = "WALLET"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeCard, ModeCashOnDelivery, ModeUPI, ModeWallet:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Request is built from a persisted order, so it always carries a valid
// order identifier.
type Request struct {
	OrderID         string
	Amount          int64
	ReferenceNumber string
	Mode            Mode
}

// Result is the explicit settlement outcome. A decline is data, not an error;
// the orchestrator switches on it to pick the status transition.
type Result struct {
	PaymentID string
	Status    Status
	Reason    string
}

func (r Result) Success() bool { return r.Status == StatusSuccess }
