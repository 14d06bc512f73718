package gorouter

import (
	"testing"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/page controller missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	if routes.HTML != "/dashboard" {
		t.Fatalf("unexpected HTML route %q", routes.HTML)
	}
	if routes.TimeRange != "/dashboard/sessions/:session/time-range" {
		t.Fatalf("unexpected time range route %q", routes.TimeRange)
	}
	if routes.Tooltip != "/dashboard/sessions/:session/cards/:card/tooltip" {
		t.Fatalf("unexpected tooltip route %q", routes.Tooltip)
	}
}

func TestDefaultRouteConfigDerivesFromSession(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Session: "/s/:session", CardAction: "/act/:session/:card"})
	if routes.Tab != "/s/:session/tab" {
		t.Fatalf("expected tab route under custom session path, got %q", routes.Tab)
	}
	if routes.Card != "/s/:session/cards/:card" {
		t.Fatalf("expected card route under custom session path, got %q", routes.Card)
	}
	if routes.CardAction != "/act/:session/:card" {
		t.Fatalf("custom routes must be kept, got %q", routes.CardAction)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"de-DE,de;q=0.9,en;q=0.8": "de-de",
		" , en-US;q=0.7":          "en-us",
		"":                        "",
		";q=0.5":                  "",
	}
	for header, want := range cases {
		if got := parseAcceptLanguage(header); got != want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}
