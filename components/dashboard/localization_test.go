package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
	"unicode"
)

func TestFormatterEnglish(t *testing.T) {
	f := NewFormatter("")
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"count", f.Count(124563), "124,563"},
		{"currency", f.Currency(95000), "$95,000"},
		{"negative currency", f.Currency(-35000), "-$35,000"},
		{"decimal", f.Decimal(4.36, 1), "4.4"},
		{"percent", f.Percent(73.0769, 1), "73.1%"},
		{"signed positive", f.SignedPercent(12.5, 1), "+12.5%"},
		{"signed negative", f.SignedPercent(-2.1, 1), "-2.1%"},
		{"signed zero", f.SignedPercent(0.01, 1), "0.0%"},
		{"rating", f.Rating(4.13), "4.1"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, tc.got)
		}
	}
}

func TestFormatterZeroValue(t *testing.T) {
	var f Formatter
	if got := f.Count(8543); got != "8,543" {
		t.Fatalf("expected zero value to format in English, got %q", got)
	}
	if got := f.Locale(); got != "en" {
		t.Fatalf("expected en locale, got %q", got)
	}
}

func TestFormatterGerman(t *testing.T) {
	f := NewFormatter("de-DE")
	if got := f.Count(124563); got != "124.563" {
		t.Fatalf("expected German grouping, got %q", got)
	}
	if got := f.Percent(73.1, 1); got != "73,1%" {
		t.Fatalf("expected German decimal comma, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	cases := map[string]string{
		"":        "en",
		"  ES-mx": "es",
		"fr-CA":   "fr",
		"en-GB":   "en-GB",
		"??":      "en",
	}
	for in, want := range cases {
		if got := NewFormatter(in).Locale(); got != want {
			t.Fatalf("locale %q: expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatterGermanCurrencyStaysUSD(t *testing.T) {
	f := NewFormatter("de")
	if got := f.Currency(95000); got != "$95.000" {
		t.Fatalf("expected USD with German grouping, got %q", got)
	}
	if got := f.Currency(-35000); got != "-$35.000" {
		t.Fatalf("expected negative USD with German grouping, got %q", got)
	}
}

func TestFormatterRoundTrip(t *testing.T) {
	for _, locale := range []string{"en", "en-GB", "de", "fr", "es"} {
		f := NewFormatter(locale)
		cases := []struct {
			text string
			want float64
		}{
			{f.Currency(95000), 95000},
			{f.Currency(-35000.4), -35000},
			{f.Currency(1234567.6), 1234568},
			{f.Count(124563), 124563},
			{f.Percent(73.0769, 1), 73.1},
			{f.Percent(1234.5, 1), 1234.5},
			{f.Percent(6.2856, 2), 6.29},
			{f.SignedPercent(12.5, 1), 12.5},
			{f.SignedPercent(-2.1, 1), -2.1},
			{f.Rating(4.13), 4.1},
		}
		for _, tc := range cases {
			got, err := parseFormatted(f, tc.text)
			if err != nil {
				t.Fatalf("%s: parse %q: %v", locale, tc.text, err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("%s: %q parsed to %v, want %v", locale, tc.text, got, tc.want)
			}
		}
	}
}

func TestParseFormattedRejectsForeignSeparators(t *testing.T) {
	de := NewFormatter("de")
	if got, err := parseFormatted(de, "73,1%"); err != nil || got != 73.1 {
		t.Fatalf("expected 73.1 from German percent, got %v (%v)", got, err)
	}
	if _, err := parseFormatted(NewFormatter("fr"), "1234.5%"); err == nil {
		t.Fatalf("expected an English decimal point to fail under French")
	}
	if _, err := parseFormatted(NewFormatter("en"), "   "); err == nil {
		t.Fatalf("expected error for blank input")
	}
}

// parseFormatted reads a Formatter display string back into a number using
// the grouping and decimal symbols the formatter's printer emits.
func parseFormatted(f Formatter, s string) (float64, error) {
	group, decimal := separators(f)
	text := strings.TrimSuffix(strings.TrimSpace(s), "%")
	negative := false
	switch {
	case strings.HasPrefix(text, "-"):
		negative = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}
	text = strings.TrimPrefix(text, "$")
	if group != "" {
		text = strings.ReplaceAll(text, group, "")
	}
	if decimal != "." {
		if strings.Contains(text, ".") {
			return 0, fmt.Errorf("parse %q: unexpected '.'", s)
		}
		text = strings.Replace(text, decimal, ".", 1)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// separators samples the formatter with a seven digit decimal: the first
// non-digit run is the grouping mark and the last one the decimal mark.
func separators(f Formatter) (group, decimal string) {
	var runs []string
	var run strings.Builder
	for _, r := range f.Decimal(1234567.5, 1) {
		if unicode.IsDigit(r) {
			if run.Len() > 0 {
				runs = append(runs, run.String())
				run.Reset()
			}
			continue
		}
		run.WriteRune(r)
	}
	switch len(runs) {
	case 0:
		return "", "."
	case 1:
		return "", runs[0]
	default:
		return runs[0], runs[len(runs)-1]
	}
}
