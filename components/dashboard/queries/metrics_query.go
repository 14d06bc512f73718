package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// MetricsInput selects the locale used for the formatted summary.
type MetricsInput struct {
	Locale string `json:"locale"`
}

// RevenueSummary is the latest month against its target.
type RevenueSummary struct {
	Month       string  `json:"month"`
	Revenue     float64 `json:"revenue"`
	Target      float64 `json:"target"`
	Achievement float64 `json:"achievement"`
	Display     string  `json:"display"`
}

// FunnelSummary carries the funnel stages and the overall conversion.
type FunnelSummary struct {
	Stages       []dashboard.FunnelStage `json:"stages"`
	Conversion   float64                 `json:"conversion"`
	TotalRevenue string                  `json:"total_revenue"`
}

// MetricsReport is every derived metric the cards display, computed from
// the static datasets. It does not depend on any session.
type MetricsReport struct {
	Revenue     RevenueSummary           `json:"revenue"`
	Funnel      FunnelSummary            `json:"funnel"`
	Sectors     []dashboard.SectorShare  `json:"sectors"`
	SectorTotal string                   `json:"sector_total"`
	Heatmap     dashboard.HeatmapSummary `json:"heatmap"`
	Radar       []dashboard.RadarInsight `json:"radar"`
}

// MetricsQuery derives the report.
type MetricsQuery struct{}

// NewMetricsQuery builds the query.
func NewMetricsQuery() *MetricsQuery {
	return &MetricsQuery{}
}

var _ gocommand.Querier[MetricsInput, MetricsReport] = (*MetricsQuery)(nil)

func (q *MetricsQuery) Query(_ context.Context, input MetricsInput) (MetricsReport, error) {
	f := dashboard.NewFormatter(input.Locale)

	revenue := dashboard.RevenueDataset()
	last := revenue.Last()
	achievement := dashboard.Ratio(last.Value(dashboard.FieldRevenue), last.Value(dashboard.FieldTarget))

	funnel := dashboard.FunnelDataset()
	counts := funnel.Column(dashboard.FieldCount)
	var conversion, purchases float64
	if len(counts) > 0 {
		purchases = counts[len(counts)-1]
		conversion = dashboard.Round(dashboard.Ratio(purchases, counts[0]), 2)
	}

	sectors := dashboard.SectorDataset()
	return MetricsReport{
		Revenue: RevenueSummary{
			Month:       last.Label,
			Revenue:     last.Value(dashboard.FieldRevenue),
			Target:      last.Value(dashboard.FieldTarget),
			Achievement: dashboard.Round(achievement, 1),
			Display:     f.Percent(achievement, 1),
		},
		Funnel: FunnelSummary{
			Stages:       dashboard.FunnelStages(funnel),
			Conversion:   conversion,
			TotalRevenue: f.Currency(purchases * dashboard.AverageOrderValue),
		},
		Sectors:     dashboard.SectorShares(sectors),
		SectorTotal: f.Currency(dashboard.Sum(sectors.Column(dashboard.FieldRevenue))),
		Heatmap:     dashboard.SummarizeHeatmap(dashboard.HeatmapDataset()),
		Radar:       dashboard.RadarInsights(dashboard.RadarDataset()),
	}, nil
}
