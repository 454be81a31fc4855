package render

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbolSpace separates symbol and amount without allowing a line break.
const symbolSpace = "\u00a0"

// convention describes how amounts of one currency are written.
type convention struct {
	locale language.Tag // number separators
	after  bool         // symbol follows the amount
	space  bool         // space between amount and symbol
}

// conventions holds the currencies with a well-known home locale.
// Other valid ISO 4217 codes use the engine locale with a leading symbol.
var conventions = map[string]convention{
	"USD": {locale: language.AmericanEnglish},
	"CAD": {locale: language.MustParse("en-CA")},
	"AUD": {locale: language.MustParse("en-AU")},
	"GBP": {locale: language.BritishEnglish},
	"JPY": {locale: language.Japanese},
	"CNY": {locale: language.SimplifiedChinese},
	"INR": {locale: language.MustParse("en-IN")},
	"EUR": {locale: language.German, after: true, space: true},
	"CHF": {locale: language.MustParse("de-CH"), space: true},
	"SEK": {locale: language.Swedish, after: true, space: true},
	"NOK": {locale: language.Norwegian, after: true, space: true},
	"DKK": {locale: language.Danish, after: true, space: true},
	"PLN": {locale: language.Polish, after: true, space: true},
	"BRL": {locale: language.BrazilianPortuguese, space: true},
}

type currencyFormatter struct {
	locale language.Tag
}

func newCurrencyFormatter(locale language.Tag) currencyFormatter {
	return currencyFormatter{locale: locale}
}

// Format writes amount with the symbol, separators and minor-unit scale of
// the currency code. An unknown or missing code yields the bare numeric
// value. Non-numeric amounts count as zero.
func (f currencyFormatter) Format(code, amount any) string {
	d, _ := ToDecimal(amount)

	codeStr, _ := code.(string)
	unit, err := currency.ParseISO(strings.TrimSpace(codeStr))
	if err != nil {
		return d.String()
	}

	conv, ok := conventions[unit.String()]
	if !ok {
		conv = convention{locale: f.locale}
	}

	scale, _ := currency.Standard.Rounding(unit)
	printer := message.NewPrinter(conv.locale)

	digits := styleFor(conv.locale).apply(d.Abs().StringFixed(int32(scale)))
	symbol := printer.Sprint(currency.NarrowSymbol(unit))
	if symbol == "" {
		symbol = unit.String()
	}

	sep := ""
	if conv.space {
		sep = symbolSpace
	}

	var out string
	if conv.after {
		out = digits + sep + symbol
	} else {
		out = symbol + sep + digits
	}

	if d.Round(int32(scale)).IsNegative() {
		return fmt.Sprintf("-%s", out)
	}
	return out
}

// numberStyle holds the separators and digit grouping of a locale.
type numberStyle struct {
	group     string
	decimal   string
	primary   int // digits in the group next to the decimal separator
	secondary int // digits in every other group
}

var defaultStyle = numberStyle{group: ",", decimal: ".", primary: 3, secondary: 3}

// styleSample is formatted in each locale to read its separators and grouping.
const styleSample = 1234567.5

var styles sync.Map // tag string -> numberStyle

// styleFor reads the number style of tag from x/text. Only separators and
// group sizes are taken from the sample; digits always come from the exact
// decimal value.
func styleFor(tag language.Tag) numberStyle {
	key := tag.String()
	if s, ok := styles.Load(key); ok {
		return s.(numberStyle)
	}

	sample := message.NewPrinter(tag).Sprint(number.Decimal(styleSample, number.Scale(1)))
	style, ok := parseStyle(sample)
	if !ok {
		style = defaultStyle
	}
	styles.Store(key, style)
	return style
}

// parseStyle splits a formatted styleSample into digit runs and separators.
func parseStyle(sample string) (numberStyle, bool) {
	var digits, seps []string
	var run strings.Builder
	inDigits := true
	flush := func() {
		if inDigits {
			digits = append(digits, run.String())
		} else {
			seps = append(seps, run.String())
		}
		run.Reset()
	}
	for _, r := range sample {
		if unicode.IsDigit(r) != inDigits && run.Len() > 0 {
			flush()
		}
		inDigits = unicode.IsDigit(r)
		run.WriteRune(r)
	}
	flush()

	// 1234567.5 has a one-digit fraction and at least one integer run.
	if len(digits) < 2 || len(seps) != len(digits)-1 || utf8.RuneCountInString(digits[len(digits)-1]) != 1 {
		return numberStyle{}, false
	}

	ints := digits[:len(digits)-1]
	style := numberStyle{decimal: seps[len(seps)-1]}
	if len(ints) > 1 {
		style.group = seps[0]
		style.primary = utf8.RuneCountInString(ints[len(ints)-1])
		style.secondary = utf8.RuneCountInString(ints[len(ints)-2])
		if len(ints) == 2 {
			style.secondary = style.primary
		}
	}
	return style, true
}

// apply formats a plain decimal string such as "1234567.50" in the style.
func (s numberStyle) apply(plain string) string {
	intPart, frac, hasFrac := strings.Cut(plain, ".")
	out := s.groupDigits(intPart)
	if hasFrac {
		out += s.decimal + frac
	}
	return out
}

func (s numberStyle) groupDigits(digits string) string {
	if s.primary <= 0 || len(digits) <= s.primary {
		return digits
	}

	cut := len(digits) - s.primary
	groups := []string{digits[cut:]}
	size := s.secondary
	if size <= 0 {
		size = s.primary
	}
	for cut > size {
		groups = append(groups, digits[cut-size:cut])
		cut -= size
	}
	groups = append(groups, digits[:cut])
	slices.Reverse(groups)
	return strings.Join(groups, s.group)
}
