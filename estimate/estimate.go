package estimate

import (
	"fmt"
	"github.com/shopspring/decimal"
	"income-estimator/calendar"
	"income-estimator/domain"
	"math"
	"strconv"
	"strings"
	"time"
)

// FeeSchedule what a payment option deducts from gross income.
type FeeSchedule struct {
	// Percent of gross income
	Percent decimal.Decimal
	// Flat per transaction, in USD
	Flat decimal.Decimal
}

var (
	directFees      = FeeSchedule{Percent: decimal.RequireFromString("5.465"), Flat: decimal.Zero}
	marketplaceFees = FeeSchedule{Percent: decimal.RequireFromString("10"), Flat: decimal.NewFromInt(1)}
	hundred         = decimal.NewFromInt(100)
)

const (
	// directFrom and directTo bound the direct transfer window, in business days
	directFrom = 2
	directTo   = 3

	// reviewDays marketplace review period for fixed-price contracts
	reviewDays = 7

	// settlementDays after an hourly billing cycle is released
	settlementDays = 2
)

// hourlyCycle describes how an hourly request made on a weekday reaches payout.
type hourlyCycle struct {
	// untilClose days until the weekly billing cycle closes or the next cycle boundary
	untilClose int
	// review business days spent in review after the cycle closes
	review int
}

// hourlyCycles the weekly billing-cycle rule by request weekday.
// Sunday to Wednesday wait for the cycle to close on Wednesday and then the review period.
// Thursday to Saturday count to the next cycle boundary only.
var hourlyCycles = map[time.Weekday]hourlyCycle{
	time.Sunday:    {untilClose: 3 - 0, review: reviewDays},
	time.Monday:    {untilClose: 3 - 1, review: reviewDays},
	time.Tuesday:   {untilClose: 3 - 2, review: reviewDays},
	time.Wednesday: {untilClose: 3 - 3, review: reviewDays},
	time.Thursday:  {untilClose: 10 - 4},
	time.Friday:    {untilClose: 10 - 5},
	time.Saturday:  {untilClose: 10 - 6},
}

// hourlyOffset business-day offset from the request date to the start of the hourly window
func hourlyOffset(day time.Weekday) int {
	c := hourlyCycles[day]
	return settlementDays + c.untilClose + c.review
}

// ParseGross parses gross income entered by the user.
func ParseGross(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: gross income is required", domain.ErrInvalidInput)
	}
	if _, err := decimal.NewFromString(trimmed); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: gross income must be numeric: %v", domain.ErrInvalidInput, err)
	}
	// the exponent is user controlled; only float64 finite magnitudes are accepted
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, fmt.Errorf("%w: gross income out of range: %v", domain.ErrInvalidInput, trimmed)
	}
	return decimal.NewFromFloat(f), nil
}

// ParseContractType maps a user selection to a ContractType. Empty selects FixedPrice.
func ParseContractType(raw string) (domain.ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "fixed", "fixed-price", "fixed_price":
		return domain.FixedPrice, nil
	case "hourly":
		return domain.Hourly, nil
	default:
		return domain.FixedPrice, fmt.Errorf("%w: unknown contract type %q", domain.ErrInvalidInput, raw)
	}
}

// Compute estimates both payment options. It never fails.
// rate must be positive and finite; rates.Holder only ever holds such a rate.
func Compute(gross decimal.Decimal, requested time.Time, contract domain.ContractType, rate domain.Rate) domain.Result {
	requested = calendar.Date(requested)
	r := decimal.NewFromFloat(float64(rate))

	return domain.Result{
		Gross:       gross,
		RequestDate: requested,
		Contract:    contract,
		Rate:        rate,
		Direct:      direct(gross, requested, r),
		Marketplace: marketplace(gross, requested, contract, r),
	}
}

func direct(gross decimal.Decimal, requested time.Time, rate decimal.Decimal) domain.Quote {
	fee := gross.Mul(directFees.Percent).Div(hundred)
	return domain.Quote{
		Option:         domain.DirectTransfer,
		ServiceFee:     fee,
		TransactionFee: directFees.Flat,
		Fee:            fee.Add(directFees.Flat),
		Net:            gross.Sub(fee).Sub(directFees.Flat).Mul(rate),
		Window: domain.Window{
			Start: calendar.AddBusinessDays(requested, directFrom),
			End:   calendar.AddBusinessDays(requested, directTo),
		},
	}
}

func marketplace(gross decimal.Decimal, requested time.Time, contract domain.ContractType, rate decimal.Decimal) domain.Quote {
	fee := gross.Mul(marketplaceFees.Percent).Div(hundred)
	return domain.Quote{
		Option:         domain.Marketplace,
		ServiceFee:     fee,
		TransactionFee: marketplaceFees.Flat,
		Fee:            fee.Add(marketplaceFees.Flat),
		Net:            gross.Sub(fee).Sub(marketplaceFees.Flat).Mul(rate),
		Window:         marketplaceWindow(requested, contract),
	}
}

func marketplaceWindow(requested time.Time, contract domain.ContractType) domain.Window {
	if contract == domain.Hourly {
		start := calendar.AddBusinessDays(requested, hourlyOffset(requested.Weekday()))
		return domain.Window{
			Start: start,
			End:   calendar.AddBusinessDays(start, settlementDays),
		}
	}
	day := calendar.AddBusinessDays(requested, reviewDays)
	return domain.Window{Start: day, End: day}
}
