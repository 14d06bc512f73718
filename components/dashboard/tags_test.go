package dashboard

import "testing"

func TestTagRoundTrip(t *testing.T) {
	for v := InsightType(0); v < insightTypeCount; v++ {
		got, err := ParseInsightType(v.String())
		if err != nil || got != v {
			t.Fatalf("insight type %d: got %v, %v", v, got, err)
		}
	}
	for v := Level(0); v < levelCount; v++ {
		got, err := ParseLevel(v.String())
		if err != nil || got != v {
			t.Fatalf("level %d: got %v, %v", v, got, err)
		}
	}
	for v := InsightCategory(0); v < insightCategoryCount; v++ {
		got, err := ParseInsightCategory(v.String())
		if err != nil || got != v {
			t.Fatalf("category %d: got %v, %v", v, got, err)
		}
	}
	for v := ActivityStatus(0); v < activityStatusCount; v++ {
		got, err := ParseActivityStatus(v.String())
		if err != nil || got != v {
			t.Fatalf("status %d: got %v, %v", v, got, err)
		}
	}
	for v := Intensity(0); v < intensityCount; v++ {
		got, err := ParseIntensity(v.String())
		if err != nil || got != v {
			t.Fatalf("intensity %d: got %v, %v", v, got, err)
		}
	}
	for v := Trend(0); v < trendCount; v++ {
		got, err := ParseTrend(v.String())
		if err != nil || got != v {
			t.Fatalf("trend %d: got %v, %v", v, got, err)
		}
	}
}

func TestTagStyles(t *testing.T) {
	if got := InsightWarning.Style(); got.Tone != "red" || got.Label != "Warning" {
		t.Fatalf("unexpected warning style %+v", got)
	}
	if got := CategoryOptimization.Style().Label; got != "Operations" {
		t.Fatalf("expected Operations label, got %q", got)
	}
	if got := IntensityHigh.Style().Tone; got != "red" {
		t.Fatalf("expected red high intensity, got %q", got)
	}
	if got := InsightType(42).String(); got != "unknown(42)" {
		t.Fatalf("expected unknown key, got %q", got)
	}
	if got := Level(-1).Style().Tone; got != "gray" {
		t.Fatalf("expected gray fallback, got %q", got)
	}
}

func TestParseTagRejectsUnknown(t *testing.T) {
	if _, err := ParseLevel("Critical"); err == nil {
		t.Fatalf("expected unknown level error")
	}
	if _, err := ParseCategoryFilter("weather"); err == nil {
		t.Fatalf("expected unknown category filter error")
	}
	if f, err := ParseCategoryFilter("all"); err != nil || f.Set {
		t.Fatalf("expected all filter, got %+v, %v", f, err)
	}
	if _, err := ParseTimeRange("2w"); err != ErrUnknownTimeRange {
		t.Fatalf("expected ErrUnknownTimeRange, got %v", err)
	}
	if got := TimeRange1y.Label(); got != "1 Year" {
		t.Fatalf("expected 1 Year, got %q", got)
	}
	if got := TabAIInsights.Label(); got != "AI Insights" {
		t.Fatalf("expected AI Insights, got %q", got)
	}
}
