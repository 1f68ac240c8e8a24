// Package pricing keeps the price table of the landing page in step with the
// billing toggle. It works against a small host-document contract so the same
// controller can drive a server-side HTML tree or a test double.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// BillingMode selects which of the two pre-formatted prices is displayed.
type BillingMode int

const (
	Monthly BillingMode = iota
	Yearly
)

// Period label literals, including the leading space the markup relies on.
const (
	PeriodMonthly = " /mo"
	PeriodYearly  = " /yr"
)

// ErrUnknownBillingMode is returned by ParseBillingMode for unrecognised input.
var ErrUnknownBillingMode = errors.New("unknown billing mode")

// ModeFromChecked maps the toggle state onto a billing mode:
// unchecked is Monthly, checked is Yearly.
func ModeFromChecked(checked bool) BillingMode {
	if checked {
		return Yearly
	}
	return Monthly
}

// Checked is the inverse of ModeFromChecked.
func (m BillingMode) Checked() bool { return m == Yearly }

// Period returns the label shown next to every price.
func (m BillingMode) Period() string {
	if m == Yearly {
		return PeriodYearly
	}
	return PeriodMonthly
}

func (m BillingMode) String() string {
	if m == Yearly {
		return "yearly"
	}
	return "monthly"
}

// ParseBillingMode accepts the String form plus a few common aliases.
func ParseBillingMode(s string) (BillingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "mo":
		return Monthly, nil
	case "yearly", "year", "yr", "annual":
		return Yearly, nil
	}
	return Monthly, fmt.Errorf("%w: %q", ErrUnknownBillingMode, s)
}

// MarshalText lets the mode travel through JSON and config as a string.
func (m BillingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BillingMode) UnmarshalText(b []byte) error {
	v, err := ParseBillingMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
