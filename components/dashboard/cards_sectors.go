package dashboard

import (
	"context"
	"sync"
)

var sectorViews = []choice{
	{Key: "pie", Label: "Pie"},
	{Key: "bar", Label: "Bar"},
}

// SectorShare is a sector with its share of total revenue.
type SectorShare struct {
	Sector  string  `json:"sector"`
	Revenue float64 `json:"revenue"`
	Share   float64 `json:"share"`
	Growth  float64 `json:"growth"`
	Trend   string  `json:"trend"`
}

// SectorShares derives one-decimal revenue shares in dataset order.
func SectorShares(ds Dataset) []SectorShare {
	revenue := ds.Column(FieldRevenue)
	shares := Shares(revenue)
	out := make([]SectorShare, len(revenue))
	for i, rec := range ds.Records {
		out[i] = SectorShare{
			Sector:  rec.Label,
			Revenue: revenue[i],
			Share:   Round(shares[i], 1),
			Growth:  rec.Value(FieldGrowth),
			Trend:   rec.Tag(TagTrend),
		}
	}
	return out
}

func sectorRow(f Formatter, s SectorShare) WidgetData {
	tone := TrendUp.Style().Tone
	if s.Trend == TrendDown.String() {
		tone = TrendDown.Style().Tone
	}
	return WidgetData{
		"sector":  s.Sector,
		"revenue": f.Currency(s.Revenue),
		"share":   f.Percent(s.Share, 1),
		"growth":  f.SignedPercent(s.Growth, 1),
		"trend":   s.Trend,
		"tone":    tone,
	}
}

func sectorRows(f Formatter, shares []SectorShare) []WidgetData {
	rows := make([]WidgetData, len(shares))
	for i, s := range shares {
		rows[i] = sectorRow(f, s)
	}
	return rows
}

func topSectors(shares []SectorShare) []SectorShare {
	if len(shares) > 3 {
		return shares[:3]
	}
	return shares
}

func bottomSectorsReversed(shares []SectorShare) []SectorShare {
	n := min(3, len(shares))
	out := make([]SectorShare, 0, n)
	for i := len(shares) - 1; i >= len(shares)-n; i-- {
		out = append(out, shares[i])
	}
	return out
}

// sectorRevenueCard shows revenue by sector as a pie or bar chart.
type sectorRevenueCard struct {
	mu   sync.Mutex
	data Dataset
	view string
}

// NewSectorRevenueCard builds the sector revenue chart.
func NewSectorRevenueCard(CardDeps) CardView {
	return &sectorRevenueCard{data: SectorDataset(), view: "pie"}
}

func (c *sectorRevenueCard) ID() CardID { return CardSectorRevenue }

func (c *sectorRevenueCard) Close() {}

func (c *sectorRevenueCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_view" {
		return unsupported(CardSectorRevenue, action.Action)
	}
	if !hasChoice(sectorViews, action.Value) {
		return wrapCardErr(CardSectorRevenue, ErrInvalidActionValue, action.Value)
	}
	c.mu.Lock()
	c.view = action.Value
	c.mu.Unlock()
	return nil
}

func (c *sectorRevenueCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	c.mu.Lock()
	view := c.view
	c.mu.Unlock()

	shares := SectorShares(c.data)
	kind := ChartPie
	if view == "bar" {
		kind = ChartBar
	}
	html, err := renderSpec(rc, ChartSpec{
		Kind:   kind,
		Labels: c.data.Labels(),
		Series: []ChartSeries{{Name: "Revenue", Points: PointsFrom(c.data, FieldRevenue)}},
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"title":      "Revenue by Sector",
		"subtitle":   "Industry performance breakdown",
		"view":       view,
		"views":      choiceData(sectorViews, view),
		"sectors":    sectorRows(rc.Format, shares),
		"top":        sectorRows(rc.Format, topSectors(shares)),
		"bottom":     sectorRows(rc.Format, bottomSectorsReversed(shares)),
		"total":      rc.Format.Currency(Sum(c.data.Column(FieldRevenue))),
		"chart_html": html,
	}, nil
}

func (c *sectorRevenueCard) Tooltip(f Formatter, label string) ([]TooltipLine, error) {
	for _, s := range SectorShares(c.data) {
		if s.Sector == label {
			return []TooltipLine{
				{Label: "Revenue", Value: f.Currency(s.Revenue)},
				{Label: "Share", Value: f.Percent(s.Share, 1) + " of total"},
				{Label: "Growth", Value: f.SignedPercent(s.Growth, 1)},
			}, nil
		}
	}
	return nil, wrapCardErr(CardSectorRevenue, ErrUnknownDataPoint, label)
}

// sectorHighlightCard lists the leading or trailing sectors.
type sectorHighlightCard struct {
	staticCard
	data   Dataset
	bottom bool
}

// NewTopSectorsCard lists the three highest-revenue sectors.
func NewTopSectorsCard(CardDeps) CardView {
	return &sectorHighlightCard{staticCard: staticCard{id: CardTopSectors}, data: SectorDataset()}
}

// NewUnderperformingSectorsCard lists the three lowest-revenue sectors, lowest first.
func NewUnderperformingSectorsCard(CardDeps) CardView {
	return &sectorHighlightCard{staticCard: staticCard{id: CardUnderperformingSectors}, data: SectorDataset(), bottom: true}
}

func (c *sectorHighlightCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	shares := SectorShares(c.data)
	if c.bottom {
		return WidgetData{
			"title":    "Growth Opportunities",
			"subtitle": "Sectors needing attention",
			"tone":     "yellow",
			"sectors":  sectorRows(rc.Format, bottomSectorsReversed(shares)),
		}, nil
	}
	return WidgetData{
		"title":    "Top Performing Sectors",
		"subtitle": "Highest revenue contributors",
		"tone":     "green",
		"sectors":  sectorRows(rc.Format, topSectors(shares)),
	}, nil
}

var heatmapPeriods = []choice{
	{Key: "week", Label: "Week"},
	{Key: "month", Label: "Month"},
}

// HeatmapSummary aggregates the heatmap grid.
type HeatmapSummary struct {
	Total      float64 `json:"total"`
	Average    float64 `json:"average"`
	PeakDay    string  `json:"peak_day"`
	PeakPeriod string  `json:"peak_period"`
	PeakValue  float64 `json:"peak_value"`
}

// SummarizeHeatmap totals every cell, averages over 28 periods (rounded to a
// whole number) and finds the first cell holding the maximum.
func SummarizeHeatmap(ds Dataset) HeatmapSummary {
	var summary HeatmapSummary
	first := true
	for _, rec := range ds.Records {
		for _, period := range HeatmapPeriods {
			v := rec.Value(period)
			summary.Total += v
			if first || v > summary.PeakValue {
				summary.PeakDay, summary.PeakPeriod, summary.PeakValue = rec.Label, period, v
				first = false
			}
		}
	}
	summary.Average = Round(summary.Total/28, 0)
	return summary
}

// heatmapCard renders the weekday by period activity grid.
type heatmapCard struct {
	mu     sync.Mutex
	data   Dataset
	period string
}

// NewHeatmapCard builds the market trends heatmap.
func NewHeatmapCard(CardDeps) CardView {
	return &heatmapCard{data: HeatmapDataset(), period: "month"}
}

func (c *heatmapCard) ID() CardID { return CardHeatmap }

func (c *heatmapCard) Close() {}

func (c *heatmapCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_period" {
		return unsupported(CardHeatmap, action.Action)
	}
	if !hasChoice(heatmapPeriods, action.Value) {
		return wrapCardErr(CardHeatmap, ErrInvalidActionValue, action.Value)
	}
	c.mu.Lock()
	c.period = action.Value
	c.mu.Unlock()
	return nil
}

func (c *heatmapCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	c.mu.Lock()
	period := c.period
	c.mu.Unlock()

	rows := make([]WidgetData, len(c.data.Records))
	for i, rec := range c.data.Records {
		cells := make([]WidgetData, len(HeatmapPeriods))
		for j, p := range HeatmapPeriods {
			intensity, err := ParseIntensity(rec.Tag(p))
			if err != nil {
				return nil, err
			}
			cells[j] = WidgetData{
				"period":    p,
				"value":     rc.Format.Count(rec.Value(p)),
				"intensity": intensity.String(),
				"tone":      intensity.Style().Tone,
			}
		}
		rows[i] = WidgetData{"day": rec.Label, "cells": cells}
	}
	summary := SummarizeHeatmap(c.data)
	legend := make([]WidgetData, 0, 3)
	for _, level := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh} {
		legend = append(legend, WidgetData{"label": level.Style().Label, "tone": level.Style().Tone})
	}
	return WidgetData{
		"title":        "Market Activity Heatmap",
		"subtitle":     "Activity intensity by day and time",
		"period":       period,
		"periods":      choiceData(heatmapPeriods, period),
		"columns":      HeatmapPeriods,
		"rows":         rows,
		"legend":       legend,
		"total":        rc.Format.Count(summary.Total),
		"average":      rc.Format.Count(summary.Average),
		"peak":         rc.Format.Count(summary.PeakValue),
		"peak_label":   summary.PeakDay + " " + summary.PeakPeriod,
		"vs_last_week": "+12%",
	}, nil
}
