package shared

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyScale is the number of fraction digits kept for currency amounts.
const MoneyScale = 2

// CurrencyCode prefixes fixed-format amounts in ledgers and receipts.
var CurrencyCode = currency.MustParseISO("PHP").String()

const pesoSign = "₱"

var (
	displayLocale = language.MustParse("en-PH")
	printer       = message.NewPrinter(displayLocale)
)

// ErrInvalidAmount is returned when a currency amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// FormatMoney renders an amount in the en-PH locale currency format,
// e.g. "₱1,250.00". Used for the inventory store price column.
func FormatMoney(amount decimal.Decimal) string {
	f, _ := amount.Round(MoneyScale).Float64()
	return pesoSign + printer.Sprint(number.Decimal(f, number.Scale(MoneyScale)))
}

// FormatFixed renders an amount as "PHP 1250.00".
func FormatFixed(amount decimal.Decimal) string {
	return CurrencyCode + " " + amount.StringFixed(MoneyScale)
}

// HasMoneyScale reports whether amount fits in MoneyScale fraction digits,
// so that formatting it loses nothing.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// ParseMoney parses an amount rendered by FormatMoney, FormatFixed or typed by
// an operator. A leading currency glyph or code, grouping separators and
// spaces are stripped before conversion.
func ParseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	cleaned = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
