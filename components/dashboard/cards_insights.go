package dashboard

import (
	"context"
	"fmt"
)

// insightCard wraps an InsightCarousel. The enhanced variant adds category
// filters and the expanded details block.
type insightCard struct {
	id       CardID
	carousel *InsightCarousel
	enhanced bool
}

// NewAIInsightsCard builds the compact four-insight carousel.
func NewAIInsightsCard(deps CardDeps) CardView {
	timings := deps.Timings.withDefaults()
	return newInsightCard(CardAIInsights, false, CarouselOptions{
		Deck:            BasicInsightDeck(),
		Interval:        timings.InsightInterval,
		RegenerateDelay: timings.RegenerateDelay,
		Scheduler:       deps.Scheduler,
		OnChange:        deps.notifier(CardAIInsights),
	})
}

// NewEnhancedInsightsCard builds the categorized five-insight carousel.
func NewEnhancedInsightsCard(deps CardDeps) CardView {
	timings := deps.Timings.withDefaults()
	return newInsightCard(CardEnhancedInsights, true, CarouselOptions{
		Deck:            EnhancedInsightDeck(),
		Interval:        timings.EnhancedInsightInterval,
		RegenerateDelay: timings.RegenerateDelay,
		Scheduler:       deps.Scheduler,
		OnChange:        deps.notifier(CardEnhancedInsights),
	})
}

func newInsightCard(id CardID, enhanced bool, opts CarouselOptions) *insightCard {
	carousel := NewInsightCarousel(opts)
	carousel.Start()
	return &insightCard{id: id, carousel: carousel, enhanced: enhanced}
}

func (c *insightCard) ID() CardID { return c.id }

func (c *insightCard) Close() { c.carousel.Close() }

// Carousel exposes the underlying carousel.
func (c *insightCard) Carousel() *InsightCarousel { return c.carousel }

func (c *insightCard) HandleAction(_ context.Context, action CardAction) error {
	switch action.Action {
	case "select":
		return c.carousel.Select(action.Index)
	case "regenerate":
		return c.carousel.Regenerate()
	case "select_category":
		if !c.enhanced {
			return unsupported(c.id, action.Action)
		}
		filter, err := ParseCategoryFilter(action.Value)
		if err != nil {
			return wrapCardErr(c.id, ErrInvalidActionValue, action.Value)
		}
		return c.carousel.SetCategory(filter)
	default:
		return unsupported(c.id, action.Action)
	}
}

func (c *insightCard) Render(context.Context, RenderContext) (WidgetData, error) {
	snap := c.carousel.Snapshot()
	dots := make([]WidgetData, snap.Count)
	for i := range dots {
		dots[i] = WidgetData{"index": i, "active": i == snap.Index}
	}
	data := WidgetData{
		"title":    "AI Insights",
		"subtitle": "Powered by machine learning",
		"position": snap.Position,
		"count":    snap.Count,
		"loading":  snap.Loading,
		"dots":     dots,
		"insight":  insightData(snap.Current, c.enhanced),
	}
	if !c.enhanced {
		return data, nil
	}
	data["title"] = "AI-Powered Insights"
	data["subtitle"] = "Advanced analytics and predictive recommendations"
	data["filter"] = snap.Filter
	filters := EnhancedCategoryFilters()
	chips := make([]WidgetData, len(filters))
	for i, filter := range filters {
		chips[i] = WidgetData{
			"key":    filter.Key(),
			"label":  filter.Label(),
			"count":  snap.Counts[filter.Key()],
			"active": filter.Key() == snap.Filter,
		}
	}
	data["filters"] = chips
	return data, nil
}

func insightData(insight InsightRecord, enhanced bool) WidgetData {
	style := insight.Type.Style()
	data := WidgetData{
		"type":        insight.Type.String(),
		"type_label":  style.Label,
		"tone":        style.Tone,
		"icon":        style.Icon,
		"title":       insight.Title,
		"description": insight.Description,
		"confidence":  fmt.Sprintf("%d%%", insight.Confidence),
		"impact":      insight.Impact.String(),
		"impact_tone": insight.Impact.Style().Tone,
		"timeframe":   insight.Timeframe,
		"action":      insight.Action,
	}
	if !enhanced {
		return data
	}
	data["category"] = insight.Category.String()
	data["category_label"] = insight.Category.Style().Label
	data["priority"] = insight.Priority
	data["expected_roi"] = fmt.Sprintf("+%g%%", insight.ExpectedROI)
	if insight.Details != nil {
		data["details"] = WidgetData{
			"current_performance": insight.Details.CurrentPerformance,
			"recommendation":      insight.Details.Recommendation,
			"risk_factor":         insight.Details.RiskFactor.String(),
			"risk_tone":           insight.Details.RiskFactor.Style().Tone,
		}
	}
	return data
}
