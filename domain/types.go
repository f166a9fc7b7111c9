package domain

import (
	"github.com/shopspring/decimal"
	"time"
)

// Currency a currency code
type Currency string

const (
	// USD the currency gross income is entered in
	USD Currency = "USD"

	// RSD the default local currency net income is converted to
	RSD Currency = "RSD"
)

// Rate an exchange rate, USD -> local currency
type Rate float64

// DefaultRate is used until the first successful rate refresh.
const DefaultRate Rate = 1.0

// Rates maps currency codes to the rate from a base currency
type Rates map[Currency]Rate

// ContractType of a marketplace contract. Only affects the marketplace arrival window.
type ContractType int

const (
	FixedPrice ContractType = iota
	Hourly
)

func (c ContractType) String() string {
	switch c {
	case FixedPrice:
		return "fixed"
	case Hourly:
		return "hourly"
	default:
		return "unknown"
	}
}

// PaymentOption how the freelancer gets paid
type PaymentOption int

const (
	DirectTransfer PaymentOption = iota
	Marketplace
)

func (p PaymentOption) String() string {
	switch p {
	case DirectTransfer:
		return "direct_transfer"
	case Marketplace:
		return "marketplace"
	default:
		return "unknown"
	}
}

// Window the date range funds are expected to arrive in. Start and End may be equal.
type Window struct {
	Start time.Time
	End   time.Time
}

// Quote the estimate for one PaymentOption.
// Fee is the total USD deducted; ServiceFee and TransactionFee break it down.
type Quote struct {
	Option         PaymentOption
	ServiceFee     decimal.Decimal
	TransactionFee decimal.Decimal
	Fee            decimal.Decimal
	Net            decimal.Decimal
	Window         Window
}

// Result of one calculation. A new Result replaces any previous one.
type Result struct {
	Gross       decimal.Decimal
	RequestDate time.Time
	Contract    ContractType
	Rate        Rate
	Direct      Quote
	Marketplace Quote
}
