package dashboard

import (
	"context"
	"time"
)

// TimeRange selects the reporting window shown in chart subtitles.
type TimeRange string

const (
	TimeRange24h TimeRange = "24h"
	TimeRange7d  TimeRange = "7d"
	TimeRange30d TimeRange = "30d"
	TimeRange90d TimeRange = "90d"
	TimeRange1y  TimeRange = "1y"

	DefaultTimeRange = TimeRange7d
)

var timeRangeLabels = map[TimeRange]string{
	TimeRange24h: "24 Hours",
	TimeRange7d:  "7 Days",
	TimeRange30d: "30 Days",
	TimeRange90d: "90 Days",
	TimeRange1y:  "1 Year",
}

// TimeRanges lists the selectable ranges in display order.
func TimeRanges() []TimeRange {
	return []TimeRange{TimeRange24h, TimeRange7d, TimeRange30d, TimeRange90d, TimeRange1y}
}

// ParseTimeRange validates a time range key.
func ParseTimeRange(key string) (TimeRange, error) {
	r := TimeRange(key)
	if _, ok := timeRangeLabels[r]; !ok {
		return "", ErrUnknownTimeRange
	}
	return r, nil
}

// Label returns the human readable name of the range.
func (r TimeRange) Label() string {
	return timeRangeLabels[r]
}

// Tab identifies a dashboard tab.
type Tab string

const (
	TabOverview    Tab = "overview"
	TabSectors     Tab = "sectors"
	TabPerformance Tab = "performance"
	TabAIInsights  Tab = "ai-insights"

	DefaultTab = TabOverview
)

var tabLabels = map[Tab]string{
	TabOverview:    "Overview",
	TabSectors:     "Sectors",
	TabPerformance: "Performance",
	TabAIInsights:  "AI Insights",
}

// Tabs lists the dashboard tabs in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabSectors, TabPerformance, TabAIInsights}
}

// ParseTab validates a tab key.
func ParseTab(key string) (Tab, error) {
	t := Tab(key)
	if _, ok := tabLabels[t]; !ok {
		return "", ErrUnknownTab
	}
	return t, nil
}

// Label returns the human readable tab name.
func (t Tab) Label() string {
	return tabLabels[t]
}

// DashboardState is the cross-cutting view state handed to dependent cards by value.
type DashboardState struct {
	TimeRange  TimeRange `json:"time_range"`
	ActiveTab  Tab       `json:"active_tab"`
	Refreshing bool      `json:"refreshing"`
}

// DefaultDashboardState returns the state a fresh dashboard starts with.
func DefaultDashboardState() DashboardState {
	return DashboardState{TimeRange: DefaultTimeRange, ActiveTab: DefaultTab}
}

// CardID identifies a card view.
type CardID string

const (
	CardKPIs                   CardID = "kpi_cards"
	CardRevenue                CardID = "revenue_chart"
	CardEngagement             CardID = "user_engagement"
	CardFunnel                 CardID = "conversion_funnel"
	CardGeography              CardID = "geographic_distribution"
	CardAIInsights             CardID = "ai_insights"
	CardEnhancedInsights       CardID = "enhanced_ai_insights"
	CardEngagementBreakdown    CardID = "engagement_breakdown"
	CardRecentActivity         CardID = "recent_activity"
	CardSectorRevenue          CardID = "sector_revenue"
	CardTopSectors             CardID = "top_sectors"
	CardUnderperformingSectors CardID = "underperforming_sectors"
	CardHeatmap                CardID = "market_heatmap"
	CardRadar                  CardID = "performance_radar"
	CardSidebar                CardID = "sidebar"
)

// WidgetData is the payload handed to templates and JSON clients.
type WidgetData map[string]any

// ViewerContext captures the session/locale information needed to render the dashboard.
type ViewerContext struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// ViewEvent describes a view-state change transports might care about.
type ViewEvent struct {
	SessionID string         `json:"session_id"`
	Card      CardID         `json:"card,omitempty"`
	Reason    string         `json:"reason"`
	State     DashboardState `json:"state"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventHook notifies transports (WebSocket/SSE) about view changes.
type EventHook interface {
	ViewUpdated(ctx context.Context, event ViewEvent) error
}

type noopEventHook struct{}

func (noopEventHook) ViewUpdated(context.Context, ViewEvent) error { return nil }
