package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// choice is one selectable chip of a card.
type choice struct {
	Key   string
	Label string
}

func choiceData(choices []choice, selected string) []WidgetData {
	out := make([]WidgetData, len(choices))
	for i, c := range choices {
		out[i] = WidgetData{"key": c.Key, "label": c.Label, "active": c.Key == selected}
	}
	return out
}

func hasChoice(choices []choice, key string) bool {
	for _, c := range choices {
		if c.Key == key {
			return true
		}
	}
	return false
}

func choiceKeys(choices []choice) []any {
	keys := make([]any, len(choices))
	for i, c := range choices {
		keys[i] = c.Key
	}
	return keys
}

func renderSpec(rc RenderContext, spec ChartSpec) (string, error) {
	if rc.Charts == nil {
		return "", nil
	}
	return rc.Charts.RenderChart(spec, rc.ChartTheme)
}

// kpiCard adapts a KPIBoard to the card contract.
type kpiCard struct {
	board *KPIBoard
}

// NewKPICard builds the live KPI grid and starts its jitter timer.
func NewKPICard(deps CardDeps) CardView {
	board := NewKPIBoard(KPIBoardOptions{
		Interval:  deps.Timings.withDefaults().KPIInterval,
		Scheduler: deps.Scheduler,
		Rand:      deps.Rand,
		OnChange:  deps.notifier(CardKPIs),
	})
	board.Start()
	return &kpiCard{board: board}
}

func (c *kpiCard) ID() CardID { return CardKPIs }

func (c *kpiCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	return WidgetData{"tiles": c.board.Tiles(rc.Format)}, nil
}

func (c *kpiCard) Close() { c.board.Close() }

var revenueMetrics = []choice{
	{Key: FieldRevenue, Label: "Revenue"},
	{Key: FieldTarget, Label: "Target"},
	{Key: FieldProfit, Label: "Profit"},
	{Key: FieldForecast, Label: "Forecast"},
}

// revenueCard charts monthly revenue against target.
type revenueCard struct {
	mu           sync.Mutex
	data         Dataset
	metric       string
	timeRange    TimeRange
	animationKey int
}

// NewRevenueCard builds the revenue analytics chart.
func NewRevenueCard(CardDeps) CardView {
	return &revenueCard{data: RevenueDataset(), metric: FieldRevenue}
}

func (c *revenueCard) ID() CardID { return CardRevenue }

func (c *revenueCard) Close() {}

func (c *revenueCard) StateChanged(state DashboardState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if state.TimeRange != c.timeRange {
		c.timeRange = state.TimeRange
		c.animationKey++
	}
}

func (c *revenueCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_metric" {
		return unsupported(CardRevenue, action.Action)
	}
	if !hasChoice(revenueMetrics, action.Value) {
		return wrapCardErr(CardRevenue, ErrInvalidActionValue, action.Value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if action.Value != c.metric {
		c.metric = action.Value
		c.animationKey++
	}
	return nil
}

func (c *revenueCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	c.mu.Lock()
	metric, key := c.metric, c.animationKey
	c.mu.Unlock()

	last := c.data.Last()
	current, target := last.Value(FieldRevenue), last.Value(FieldTarget)
	achievement := rc.Format.Percent(Ratio(current, target), 1)

	series := []ChartSeries{
		{Name: "Revenue", Points: PointsFrom(c.data, FieldRevenue), Smooth: true, Area: true},
		{Name: "Target", Points: PointsFrom(c.data, FieldTarget), Dashed: true},
	}
	switch metric {
	case FieldProfit:
		series = append(series, ChartSeries{Name: "Profit", Points: PointsFrom(c.data, FieldProfit), Smooth: true})
	case FieldForecast:
		series = append(series, ChartSeries{Name: "Forecast", Points: PointsFrom(c.data, FieldForecast), Smooth: true, Dashed: true})
	}
	subtitle := fmt.Sprintf("Performance vs ambitious targets • %s", rc.State.TimeRange)
	html, err := renderSpec(rc, ChartSpec{
		Kind:      ChartLine,
		Labels:    c.data.Labels(),
		Series:    series,
		Reference: &ReferenceLine{Name: "Goal", Value: RevenueGoal},
	})
	if err != nil {
		return nil, err
	}

	return WidgetData{
		"title":             "Revenue Analytics",
		"subtitle":          subtitle,
		"metric":            metric,
		"metrics":           choiceData(revenueMetrics, metric),
		"animation_key":     key,
		"achievement":       achievement,
		"achievement_badge": achievement + " Target",
		"growth_badge":      "+12.5% ↗",
		"current":           rc.Format.Currency(current),
		"target":            rc.Format.Currency(target),
		"gap":               rc.Format.Currency(target - current),
		"goal":              rc.Format.Currency(RevenueGoal),
		"chart_html":        html,
	}, nil
}

func (c *revenueCard) Tooltip(f Formatter, label string) ([]TooltipLine, error) {
	rec, ok := c.data.Lookup(label)
	if !ok {
		return nil, wrapCardErr(CardRevenue, ErrUnknownDataPoint, label)
	}
	revenue, target := rec.Value(FieldRevenue), rec.Value(FieldTarget)
	lines := []TooltipLine{
		{Label: "Revenue", Value: f.Currency(revenue)},
		{Label: "Target", Value: f.Currency(target)},
	}
	c.mu.Lock()
	metric := c.metric
	c.mu.Unlock()
	if metric == FieldProfit || metric == FieldForecast {
		lines = append(lines, TooltipLine{Label: labelFor(revenueMetrics, metric), Value: f.Currency(rec.Value(metric))})
	}
	return append(lines,
		TooltipLine{Label: "Gap to Target", Value: f.Currency(target - revenue)},
		TooltipLine{Label: "Achievement", Value: f.Percent(Ratio(revenue, target), 1)},
	), nil
}

func labelFor(choices []choice, key string) string {
	for _, c := range choices {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

var engagementMetrics = []choice{
	{Key: "engagement", Label: "Engagement"},
	{Key: "satisfaction", Label: "Satisfaction"},
	{Key: "retention", Label: "Retention"},
	{Key: "performance", Label: "Performance"},
}

// engagementCard charts daily traffic with session quality on a second axis.
type engagementCard struct {
	mu           sync.Mutex
	data         Dataset
	metric       string
	timeRange    TimeRange
	animationKey int
}

// NewEngagementCard builds the user engagement chart.
func NewEngagementCard(CardDeps) CardView {
	return &engagementCard{data: EngagementDataset(), metric: "engagement"}
}

func (c *engagementCard) ID() CardID { return CardEngagement }

func (c *engagementCard) Close() {}

func (c *engagementCard) StateChanged(state DashboardState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if state.TimeRange != c.timeRange {
		c.timeRange = state.TimeRange
		c.animationKey++
	}
}

func (c *engagementCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_metric" {
		return unsupported(CardEngagement, action.Action)
	}
	if !hasChoice(engagementMetrics, action.Value) {
		return wrapCardErr(CardEngagement, ErrInvalidActionValue, action.Value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if action.Value != c.metric {
		c.metric = action.Value
		c.animationKey++
	}
	return nil
}

func (c *engagementCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	c.mu.Lock()
	metric, key := c.metric, c.animationKey
	c.mu.Unlock()

	satisfaction := rc.Format.Rating(Mean(c.data.Column(FieldSatisfied)))
	html, err := renderSpec(rc, ChartSpec{
		Kind:          ChartComposed,
		Labels:        c.data.Labels(),
		SecondaryAxis: "Quality",
		Series: []ChartSeries{
			{Name: "Page Views", Kind: ChartBar, Points: PointsFrom(c.data, FieldPageViews)},
			{Name: "Interactions", Kind: ChartBar, Points: PointsFrom(c.data, FieldInteraction)},
			{Name: "Avg Session", Kind: ChartLine, Axis: 1, Smooth: true, Points: PointsFrom(c.data, FieldSession)},
			{Name: "Satisfaction", Kind: ChartLine, Axis: 1, Smooth: true, Points: PointsFrom(c.data, FieldSatisfied)},
		},
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"title":            "User Engagement Insights",
		"subtitle":         fmt.Sprintf("Comprehensive user behavior analytics • %s", rc.State.TimeRange),
		"metric":           metric,
		"metrics":          choiceData(engagementMetrics, metric),
		"animation_key":    key,
		"avg_satisfaction": satisfaction,
		"rating_badge":     satisfaction + "/5.0 Rating",
		"avg_session":      rc.Format.Decimal(Mean(c.data.Column(FieldSession)), 1),
		"avg_bounce":       rc.Format.Decimal(Mean(c.data.Column(FieldBounceRate)), 0),
		"chart_html":       html,
	}, nil
}

func (c *engagementCard) Tooltip(f Formatter, label string) ([]TooltipLine, error) {
	rec, ok := c.data.Lookup(label)
	if !ok {
		return nil, wrapCardErr(CardEngagement, ErrUnknownDataPoint, label)
	}
	return []TooltipLine{
		{Label: "Page Views", Value: f.Count(rec.Value(FieldPageViews))},
		{Label: "Avg Session", Value: f.Decimal(rec.Value(FieldSession), 1) + "m"},
		{Label: "Bounce Rate", Value: f.Percent(rec.Value(FieldBounceRate), 0)},
		{Label: "Interactions", Value: f.Count(rec.Value(FieldInteraction))},
		{Label: "Satisfaction", Value: f.Rating(rec.Value(FieldSatisfied)) + "/5.0"},
	}, nil
}

var funnelPeriods = []choice{
	{Key: "week", Label: "Week"},
	{Key: "month", Label: "Month"},
	{Key: "quarter", Label: "Quarter"},
}

// funnelCard shows the conversion journey as a horizontal bar chart.
type funnelCard struct {
	mu     sync.Mutex
	data   Dataset
	period string
}

// NewFunnelCard builds the conversion funnel.
func NewFunnelCard(CardDeps) CardView {
	return &funnelCard{data: FunnelDataset(), period: "month"}
}

func (c *funnelCard) ID() CardID { return CardFunnel }

func (c *funnelCard) Close() {}

func (c *funnelCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_period" {
		return unsupported(CardFunnel, action.Action)
	}
	if !hasChoice(funnelPeriods, action.Value) {
		return wrapCardErr(CardFunnel, ErrInvalidActionValue, action.Value)
	}
	c.mu.Lock()
	c.period = action.Value
	c.mu.Unlock()
	return nil
}

// FunnelStage is one step of the conversion funnel with derived rates.
type FunnelStage struct {
	Stage       string  `json:"stage"`
	Description string  `json:"description"`
	Count       float64 `json:"count"`
	Rate        float64 `json:"rate"`
	Dropoff     float64 `json:"dropoff"`
}

// FunnelStages derives each stage's rate against the first stage and its
// drop-off against the previous stage, both rounded to one decimal.
func FunnelStages(ds Dataset) []FunnelStage {
	counts := ds.Column(FieldCount)
	drops := Dropoffs(counts)
	stages := make([]FunnelStage, len(counts))
	for i, rec := range ds.Records {
		stages[i] = FunnelStage{
			Stage:       rec.Label,
			Description: rec.Tag(TagDescription),
			Count:       counts[i],
			Rate:        Round(Ratio(counts[i], counts[0]), 1),
			Dropoff:     Round(drops[i], 1),
		}
	}
	return stages
}

func (c *funnelCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	c.mu.Lock()
	period := c.period
	c.mu.Unlock()

	stages := FunnelStages(c.data)
	rows := make([]WidgetData, len(stages))
	for i, s := range stages {
		rows[i] = WidgetData{
			"stage":       s.Stage,
			"description": s.Description,
			"count":       rc.Format.Count(s.Count),
			"rate":        rc.Format.Percent(s.Rate, 1),
			"dropoff":     rc.Format.Percent(s.Dropoff, 1),
			"first":       i == 0,
		}
	}
	first, last := c.data.At(0).Value(FieldCount), c.data.Last().Value(FieldCount)
	conversion := rc.Format.Percent(Ratio(last, first), 2)

	html, err := renderSpec(rc, ChartSpec{
		Kind:       ChartBar,
		Horizontal: true,
		Labels:     c.data.Labels(),
		Series:     []ChartSeries{{Name: "Users", Points: PointsFrom(c.data, FieldCount)}},
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"title":         "Conversion Funnel",
		"subtitle":      "Customer journey analysis",
		"period":        period,
		"periods":       choiceData(funnelPeriods, period),
		"stages":        rows,
		"conversion":    conversion,
		"overall_badge": conversion + " Overall",
		"total_revenue": rc.Format.Currency(last * AverageOrderValue),
		"quick_stats": []WidgetData{
			{"label": "Total Visitors", "value": rc.Format.Count(first)},
			{"label": "Conversions", "value": rc.Format.Count(last)},
			{"label": "Avg Order Value", "value": rc.Format.Currency(AverageOrderValue)},
		},
		"chart_html": html,
	}, nil
}

func (c *funnelCard) Tooltip(f Formatter, label string) ([]TooltipLine, error) {
	for _, s := range FunnelStages(c.data) {
		if s.Stage != label {
			continue
		}
		lines := []TooltipLine{
			{Label: "Users", Value: f.Count(s.Count)},
			{Label: "Conversion Rate", Value: f.Percent(s.Rate, 1)},
		}
		if s.Dropoff > 0 {
			lines = append(lines, TooltipLine{Label: "Drop-off", Value: f.Percent(s.Dropoff, 1)})
		}
		return lines, nil
	}
	return nil, wrapCardErr(CardFunnel, ErrUnknownDataPoint, label)
}

// geographyCard lists active users per country with their share of the total.
type geographyCard struct {
	staticCard
	data Dataset
}

// NewGeographyCard builds the geographic distribution list.
func NewGeographyCard(CardDeps) CardView {
	return &geographyCard{staticCard: staticCard{id: CardGeography}, data: GeographyDataset()}
}

func (c *geographyCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	users := c.data.Column(FieldUsers)
	shares := Shares(users)
	rows := make([]WidgetData, len(users))
	for i, rec := range c.data.Records {
		share := Round(shares[i], 0)
		rows[i] = WidgetData{
			"country":  rec.Label,
			"flag":     rec.Tag(TagFlag),
			"users":    rc.Format.Count(users[i]),
			"share":    share,
			"share_pc": rc.Format.Percent(share, 0),
		}
	}
	return WidgetData{
		"title":     "Geographic Distribution",
		"subtitle":  "Active users by country",
		"countries": rows,
		"total":     rc.Format.Count(Sum(users)),
	}, nil
}

type breakdownItem struct {
	label string
	value string
	trend string
}

// breakdownCard summarizes the engagement dataset as two metric groups.
type breakdownCard struct {
	staticCard
	data Dataset
}

// NewEngagementBreakdownCard builds the engagement breakdown panel.
func NewEngagementBreakdownCard(CardDeps) CardView {
	return &breakdownCard{staticCard: staticCard{id: CardEngagementBreakdown}, data: EngagementDataset()}
}

func (c *breakdownCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	f := rc.Format
	traffic := []breakdownItem{
		{label: "Page Views", value: f.Count(Sum(c.data.Column(FieldPageViews))), trend: "+12.3%"},
		{label: "Interactions", value: f.Count(Sum(c.data.Column(FieldInteraction))), trend: "+8.7%"},
		{label: "Return Visitors", value: f.Percent(Mean(c.data.Column(FieldReturning)), 0), trend: "+5.2%"},
	}
	quality := []breakdownItem{
		{label: "Avg Session", value: f.Decimal(Mean(c.data.Column(FieldSession)), 1) + "m", trend: "+4.2%"},
		{label: "Satisfaction", value: f.Rating(Mean(c.data.Column(FieldSatisfied))) + "/5.0", trend: "+0.3%"},
		{label: "Bounce Rate", value: f.Percent(Mean(c.data.Column(FieldBounceRate)), 0), trend: "-2.1%"},
	}
	return WidgetData{
		"title":    "Engagement Breakdown",
		"subtitle": "Traffic and session quality",
		"traffic":  breakdownData(traffic),
		"quality":  breakdownData(quality),
	}, nil
}

func breakdownData(items []breakdownItem) []WidgetData {
	out := make([]WidgetData, len(items))
	for i, item := range items {
		out[i] = WidgetData{"label": item.label, "value": item.value, "trend": item.trend}
	}
	return out
}

// activityCard renders the recent activity feed.
type activityCard struct {
	staticCard
	feed []ActivityRecord
}

// NewRecentActivityCard builds the activity feed.
func NewRecentActivityCard(CardDeps) CardView {
	return &activityCard{staticCard: staticCard{id: CardRecentActivity}, feed: ActivityFeed()}
}

func (c *activityCard) Render(context.Context, RenderContext) (WidgetData, error) {
	items := make([]WidgetData, len(c.feed))
	for i, item := range c.feed {
		style := item.Status.Style()
		items[i] = WidgetData{
			"id":          item.ID,
			"type":        item.Type.String(),
			"icon":        item.Type.Style().Icon,
			"title":       item.Title,
			"description": item.Description,
			"timestamp":   item.Timestamp,
			"user":        item.User,
			"status":      item.Status.String(),
			"tone":        style.Tone,
		}
	}
	return WidgetData{
		"title":    "Recent Activity",
		"subtitle": "Latest platform events",
		"items":    items,
	}, nil
}
