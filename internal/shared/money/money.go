package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "en-NG"
	DefaultCurrency = "NGN"
)

var symbols = map[string]string{
	"NGN": "₦",
	"GHS": "GH₵",
	"KES": "KSh",
	"ZAR": "R",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
}

type Options struct {
	MinFractionDigits int
	MaxFractionDigits int
	// NoSymbol drops the currency symbol from the output.
	NoSymbol bool
}

var (
	Whole = Options{MinFractionDigits: 0, MaxFractionDigits: 0}
	Cents = Options{MinFractionDigits: 2, MaxFractionDigits: 2}
)

type Formatter struct {
	printer *message.Printer
	symbol  string
}

func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency + " "
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

var std = NewFormatter(DefaultLocale, DefaultCurrency)

// Format renders amount as symbol followed by the locale-grouped number.
// Negative amounts keep the sign in front of the symbol.
func (f *Formatter) Format(amount decimal.Decimal, opts Options) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	maxDigits := opts.MaxFractionDigits
	if maxDigits < opts.MinFractionDigits {
		maxDigits = opts.MinFractionDigits
	}

	digits := f.printer.Sprint(number.Decimal(
		amount.Round(int32(maxDigits)).InexactFloat64(),
		number.MinFractionDigits(opts.MinFractionDigits),
		number.MaxFractionDigits(maxDigits),
	))

	if opts.NoSymbol {
		return sign + digits
	}
	return sign + f.symbol + digits
}

// FormatAmount renders a list amount: two fraction digits, no symbol and
// an empty string for zero.
func (f *Formatter) FormatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return f.Format(amount, Options{MinFractionDigits: 2, MaxFractionDigits: 2, NoSymbol: true})
}

func (f *Formatter) Symbol() string {
	return f.symbol
}

func Format(amount decimal.Decimal, opts Options) string {
	return std.Format(amount, opts)
}

func FormatAmount(amount decimal.Decimal) string {
	return std.FormatAmount(amount)
}

// Parse reads a user-typed amount. Grouping commas and spaces are ignored;
// anything unparseable is zero.
func Parse(s string) decimal.Decimal {
	s = strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
