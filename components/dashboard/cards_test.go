package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderCard(t *testing.T, card CardView) WidgetData {
	t.Helper()
	data, err := card.Render(context.Background(), RenderContext{
		State:  DefaultDashboardState(),
		Format: NewFormatter("en-US"),
	})
	require.NoError(t, err)
	return data
}

func TestRevenueCardAchievement(t *testing.T) {
	card := NewRevenueCard(CardDeps{})
	data := renderCard(t, card)

	assert.Equal(t, "73.1%", data["achievement"])
	assert.Equal(t, "73.1% Target", data["achievement_badge"])
	assert.Equal(t, "$95,000", data["current"])
	assert.Equal(t, "$35,000", data["gap"])
	assert.Equal(t, "$120,000", data["goal"])
	assert.Equal(t, "", data["chart_html"], "no renderer configured")
}

func TestRevenueCardMetricAnimationKey(t *testing.T) {
	card := NewRevenueCard(CardDeps{}).(*revenueCard)
	ctx := context.Background()

	require.NoError(t, card.HandleAction(ctx, CardAction{Action: "select_metric", Value: FieldProfit}))
	require.NoError(t, card.HandleAction(ctx, CardAction{Action: "select_metric", Value: FieldProfit}))
	data := renderCard(t, card)
	assert.Equal(t, 1, data["animation_key"], "selecting the same metric does not replay")

	lines, err := card.Tooltip(NewFormatter("en-US"), "Jan")
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, TooltipLine{Label: "Profit", Value: "$12,000"}, lines[2])

	err = card.HandleAction(ctx, CardAction{Action: "select_metric", Value: "margin"})
	assert.ErrorIs(t, err, ErrInvalidActionValue)
}

func TestEngagementCardAverages(t *testing.T) {
	data := renderCard(t, NewEngagementCard(CardDeps{}))

	assert.Equal(t, "4.1", data["avg_satisfaction"])
	assert.Equal(t, "4.1/5.0 Rating", data["rating_badge"])
	assert.Equal(t, "4.4", data["avg_session"])
	assert.Equal(t, "33", data["avg_bounce"])
}

func TestFunnelStages(t *testing.T) {
	stages := FunnelStages(FunnelDataset())
	require.Len(t, stages, 5)

	assert.Equal(t, 100.0, stages[0].Rate)
	assert.Zero(t, stages[0].Dropoff)
	assert.Equal(t, 41.2, stages[1].Rate)
	assert.Equal(t, 58.8, stages[1].Dropoff)
	assert.Equal(t, "Completed purchase", stages[4].Description)
}

func TestFunnelCardTotals(t *testing.T) {
	card := NewFunnelCard(CardDeps{})
	data := renderCard(t, card)

	assert.Equal(t, "6.29%", data["conversion"])
	assert.Equal(t, "6.29% Overall", data["overall_badge"])
	assert.Equal(t, "$253,205", data["total_revenue"])

	lines, err := card.(TooltipProvider).Tooltip(NewFormatter("en-US"), "Website Visitors")
	require.NoError(t, err)
	assert.Len(t, lines, 2, "the first stage has no drop-off line")

	_, err = card.(TooltipProvider).Tooltip(NewFormatter("en-US"), "Refunds")
	assert.ErrorIs(t, err, ErrUnknownDataPoint)
}

func TestGeographyCardShares(t *testing.T) {
	data := renderCard(t, NewGeographyCard(CardDeps{}))

	assert.Equal(t, "8,110", data["total"])
	rows := data["countries"].([]WidgetData)
	require.Len(t, rows, 6)
	assert.Equal(t, "United States", rows[0]["country"])
	assert.Equal(t, "42%", rows[0]["share_pc"])
}

func TestSectorShares(t *testing.T) {
	shares := SectorShares(SectorDataset())
	require.Len(t, shares, 6)

	assert.Equal(t, 32.5, shares[0].Share)
	assert.Equal(t, 1.6, shares[5].Share)
	assert.Equal(t, "down", shares[3].Trend)

	bottom := bottomSectorsReversed(shares)
	assert.Equal(t, "Others", bottom[0].Sector)
	assert.Equal(t, "Retail", bottom[2].Sector)
}

func TestSectorRevenueCardView(t *testing.T) {
	card := NewSectorRevenueCard(CardDeps{})
	ctx := context.Background()

	data := renderCard(t, card)
	assert.Equal(t, "pie", data["view"])
	assert.Equal(t, "$877,000", data["total"])

	require.NoError(t, card.(ActionHandler).HandleAction(ctx, CardAction{Action: "select_view", Value: "bar"}))
	assert.Equal(t, "bar", renderCard(t, card)["view"])

	lines, err := card.(TooltipProvider).Tooltip(NewFormatter("en-US"), "Retail")
	require.NoError(t, err)
	assert.Equal(t, "14.6% of total", lines[1].Value)
	assert.Equal(t, "-3.2%", lines[2].Value)
}

func TestSummarizeHeatmap(t *testing.T) {
	summary := SummarizeHeatmap(HeatmapDataset())

	assert.Equal(t, 865.0, summary.Total)
	assert.Equal(t, 31.0, summary.Average)
	assert.Equal(t, "Thursday", summary.PeakDay)
	assert.Equal(t, "06-12", summary.PeakPeriod)
	assert.Equal(t, 55.0, summary.PeakValue)
}

func TestHeatmapCardRender(t *testing.T) {
	data := renderCard(t, NewHeatmapCard(CardDeps{}))

	assert.Equal(t, "Thursday 06-12", data["peak_label"])
	rows := data["rows"].([]WidgetData)
	require.Len(t, rows, 7)
	cells := rows[0]["cells"].([]WidgetData)
	assert.Equal(t, "high", cells[1]["intensity"])
}

func TestRadarInsights(t *testing.T) {
	insights := RadarInsights(RadarDataset())
	require.Len(t, insights, 3)

	assert.Equal(t, "Exceeding", insights[0].Kind)
	assert.Equal(t, "Operational Efficiency", insights[0].Metric)
	assert.Equal(t, "89% vs 85% target", insights[0].Detail)

	assert.Equal(t, "Needs Focus", insights[1].Kind)
	assert.Equal(t, "Market Share", insights[1].Metric)
	assert.Equal(t, -7.0, insights[1].Delta)

	assert.Equal(t, "Improving", insights[2].Kind)
	assert.Equal(t, "Revenue", insights[2].Metric, "ties resolve to the first metric")
	assert.Equal(t, "+7% from last period", insights[2].Detail)

	assert.Nil(t, RadarInsights(Dataset{}))
}

func TestEnhancedInsightCardRender(t *testing.T) {
	sched := NewManualScheduler(time.Unix(0, 0))
	card := NewEnhancedInsightsCard(CardDeps{Scheduler: sched})
	defer card.Close()

	data := renderCard(t, card)
	assert.Equal(t, "AI-Powered Insights", data["title"])
	assert.Equal(t, "1 of 5", data["position"])
	insight := data["insight"].(WidgetData)
	assert.Contains(t, insight, "details")
	assert.Contains(t, insight, "expected_roi")
	filters := data["filters"].([]WidgetData)
	assert.Len(t, filters, 5)

	basic := NewAIInsightsCard(CardDeps{Scheduler: sched})
	defer basic.Close()
	err := basic.(ActionHandler).HandleAction(context.Background(), CardAction{Action: "select_category", Value: "user"})
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}
