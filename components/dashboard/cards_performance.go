package dashboard

import (
	"context"
	"fmt"
)

// RadarInsight is one computed callout under the performance radar.
type RadarInsight struct {
	Kind   string  `json:"kind"`
	Metric string  `json:"metric"`
	Delta  float64 `json:"delta"`
	Detail string  `json:"detail"`
	Tone   string  `json:"tone"`
}

// RadarInsights picks the metric furthest above target ("Exceeding"), the one
// furthest below target ("Needs Focus") and the one with the largest gain over
// the previous period ("Improving"). Ties resolve to the first metric.
// Exceeding is omitted when no metric beats its target, Needs Focus when none
// falls short.
func RadarInsights(ds Dataset) []RadarInsight {
	if ds.Len() == 0 {
		return nil
	}
	current := ds.Column(FieldCurrent)
	target := ds.Column(FieldTarget)
	gaps := Differences(current, target)
	gains := Differences(current, ds.Column(FieldPrevious))

	out := make([]RadarInsight, 0, 3)
	if i, gap := MaxIndex(gaps); gap > 0 {
		out = append(out, RadarInsight{
			Kind:   "Exceeding",
			Metric: ds.At(i).Label,
			Delta:  gap,
			Detail: fmt.Sprintf("%g%% vs %g%% target", current[i], target[i]),
			Tone:   "green",
		})
	}
	if i, gap := MinIndex(gaps); gap < 0 {
		out = append(out, RadarInsight{
			Kind:   "Needs Focus",
			Metric: ds.At(i).Label,
			Delta:  gap,
			Detail: fmt.Sprintf("%g%% vs %g%% target", current[i], target[i]),
			Tone:   "yellow",
		})
	}
	if i, gain := MaxIndex(gains); gain > 0 {
		out = append(out, RadarInsight{
			Kind:   "Improving",
			Metric: ds.At(i).Label,
			Delta:  gain,
			Detail: fmt.Sprintf("+%g%% from last period", gain),
			Tone:   "blue",
		})
	}
	return out
}

// radarCard compares current performance against target on a radar chart.
type radarCard struct {
	staticCard
	data Dataset
}

// NewRadarCard builds the performance radar.
func NewRadarCard(CardDeps) CardView {
	return &radarCard{staticCard: staticCard{id: CardRadar}, data: RadarDataset()}
}

func (c *radarCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	indicators := make([]RadarIndicator, c.data.Len())
	for i, rec := range c.data.Records {
		indicators[i] = RadarIndicator{Name: rec.Label, Max: rec.Value(FieldFullMark)}
	}
	html, err := renderSpec(rc, ChartSpec{
		Kind:       ChartRadar,
		Indicators: indicators,
		Series: []ChartSeries{
			{Name: "Current Performance", Points: PointsFrom(c.data, FieldCurrent), Area: true},
			{Name: "Target Performance", Points: PointsFrom(c.data, FieldTarget), Dashed: true},
		},
	})
	if err != nil {
		return nil, err
	}
	insights := RadarInsights(c.data)
	callouts := make([]WidgetData, len(insights))
	for i, in := range insights {
		callouts[i] = WidgetData{
			"kind":   in.Kind,
			"metric": in.Metric,
			"detail": in.Detail,
			"tone":   in.Tone,
		}
	}
	return WidgetData{
		"title":      "Performance Radar",
		"subtitle":   "Multi-dimensional business performance",
		"insights":   callouts,
		"legend":     []string{"Current Performance", "Target Performance"},
		"chart_html": html,
	}, nil
}

func (c *radarCard) Tooltip(f Formatter, label string) ([]TooltipLine, error) {
	rec, ok := c.data.Lookup(label)
	if !ok {
		return nil, wrapCardErr(CardRadar, ErrUnknownDataPoint, label)
	}
	return []TooltipLine{
		{Label: "Current", Value: f.Percent(rec.Value(FieldCurrent), 0)},
		{Label: "Target", Value: f.Percent(rec.Value(FieldTarget), 0)},
		{Label: "Previous", Value: f.Percent(rec.Value(FieldPrevious), 0)},
	}, nil
}
