package dashboard

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedLocales = []language.Tag{
	language.English,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Formatter renders derived metrics as display strings for a locale.
// The zero value formats in English.
type Formatter struct {
	printer *message.Printer
	tag     language.Tag
}

// NewFormatter resolves the closest supported locale. Unknown or empty
// locales fall back to English.
func NewFormatter(locale string) Formatter {
	tag := resolveLocale(locale)
	return Formatter{printer: message.NewPrinter(tag), tag: tag}
}

// Locale reports the resolved locale tag.
func (f Formatter) Locale() string {
	if f.printer == nil {
		return language.English.String()
	}
	return f.tag.String()
}

func (f Formatter) p() *message.Printer {
	if f.printer == nil {
		return message.NewPrinter(language.English)
	}
	return f.printer
}

// Count formats a whole number with grouping ("124,563").
func (f Formatter) Count(v float64) string {
	return f.p().Sprintf("%d", int64(math.Round(v)))
}

// Currency formats whole US dollars. Amounts are always USD: the "$" prefix
// is fixed and only the digit grouping follows the locale ("$95,000" in
// English, "$95.000" in German).
func (f Formatter) Currency(v float64) string {
	if v < 0 {
		return "-$" + f.Count(-v)
	}
	return "$" + f.Count(v)
}

// Decimal formats v with a fixed number of decimals and grouping.
func (f Formatter) Decimal(v float64, places int) string {
	if places <= 0 {
		return f.Count(v)
	}
	return f.p().Sprintf(fmt.Sprintf("%%.%df", places), Round(v, places))
}

// Percent formats v as a percentage ("73.1%").
func (f Formatter) Percent(v float64, places int) string {
	return f.Decimal(v, places) + "%"
}

// SignedPercent formats v as a percentage with an explicit sign ("+12.5%").
func (f Formatter) SignedPercent(v float64, places int) string {
	if Round(v, places) > 0 {
		return "+" + f.Percent(v, places)
	}
	return f.Percent(v, places)
}

// Rating formats a score out of five ("4.1").
func (f Formatter) Rating(v float64) string {
	return f.Decimal(v, 1)
}

func resolveLocale(locale string) language.Tag {
	locale = normalizeLocale(locale)
	if locale == "" {
		return language.English
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, confidence := localeMatcher.Match(requested)
	if confidence == language.No {
		return language.English
	}
	return supportedLocales[idx]
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}
