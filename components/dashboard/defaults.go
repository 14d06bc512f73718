package dashboard

// actionRule describes one action a card accepts. Values lists the allowed
// "value" strings; NeedsIndex requires an "index".
type actionRule struct {
	Action     string
	Values     []any
	NeedsIndex bool
}

// actionSchema builds the JSON schema validating a card action payload.
func actionSchema(rules ...actionRule) map[string]any {
	actions := make([]any, len(rules))
	conditions := make([]any, 0, len(rules))
	for i, rule := range rules {
		actions[i] = rule.Action
		then := map[string]any{}
		switch {
		case len(rule.Values) > 0:
			then["required"] = []string{"value"}
			then["properties"] = map[string]any{"value": map[string]any{"enum": rule.Values}}
		case rule.NeedsIndex:
			then["required"] = []string{"index"}
		default:
			continue
		}
		conditions = append(conditions, map[string]any{
			"if":   map[string]any{"properties": map[string]any{"action": map[string]any{"const": rule.Action}}},
			"then": then,
		})
	}
	schema := map[string]any{
		"type":     "object",
		"required": []string{"action"},
		"properties": map[string]any{
			"action": map[string]any{"type": "string", "enum": actions},
			"value":  map[string]any{"type": "string"},
			"index":  map[string]any{"type": "integer", "minimum": 0},
		},
		"additionalProperties": false,
	}
	if len(conditions) > 0 {
		schema["allOf"] = conditions
	}
	return schema
}

func navLabels() []any {
	items := NavItems()
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func categoryFilterKeys() []any {
	filters := EnhancedCategoryFilters()
	out := make([]any, 0, len(filters)+1)
	for _, f := range filters {
		out = append(out, f.Key())
	}
	return append(out, CategoryForecast.String())
}

// DefaultCardDefinitions returns the built-in cards.
func DefaultCardDefinitions() []CardDefinition {
	return []CardDefinition{
		{
			ID:          CardSidebar,
			Title:       "Navigation",
			Description: "Sidebar navigation, AI status and plan usage",
			TitleLocalized: map[string]string{
				"es": "Navegación",
			},
			Schema:  actionSchema(actionRule{Action: "select_nav", Values: navLabels()}),
			Factory: NewSidebarCard,
		},
		{
			ID:          CardKPIs,
			Title:       "Key Metrics",
			Description: "Live headline KPIs",
			TitleLocalized: map[string]string{
				"es": "Métricas clave",
				"de": "Kennzahlen",
			},
			Factory: NewKPICard,
		},
		{
			ID:          CardRevenue,
			Title:       "Revenue Analytics",
			Description: "Monthly revenue against target",
			TitleLocalized: map[string]string{
				"es": "Análisis de ingresos",
			},
			Schema:  actionSchema(actionRule{Action: "select_metric", Values: choiceKeys(revenueMetrics)}),
			Factory: NewRevenueCard,
		},
		{
			ID:          CardEngagement,
			Title:       "User Engagement Insights",
			Description: "Daily traffic and session quality",
			Schema:      actionSchema(actionRule{Action: "select_metric", Values: choiceKeys(engagementMetrics)}),
			Factory:     NewEngagementCard,
		},
		{
			ID:          CardFunnel,
			Title:       "Conversion Funnel",
			Description: "Customer journey analysis",
			Schema:      actionSchema(actionRule{Action: "select_period", Values: choiceKeys(funnelPeriods)}),
			Factory:     NewFunnelCard,
		},
		{
			ID:          CardGeography,
			Title:       "Geographic Distribution",
			Description: "Active users by country",
			Factory:     NewGeographyCard,
		},
		{
			ID:          CardAIInsights,
			Title:       "AI Insights",
			Description: "Rotating machine learning recommendations",
			Schema: actionSchema(
				actionRule{Action: "select", NeedsIndex: true},
				actionRule{Action: "regenerate"},
			),
			Factory: NewAIInsightsCard,
		},
		{
			ID:          CardEnhancedInsights,
			Title:       "AI-Powered Insights",
			Description: "Categorized recommendations with details",
			Schema: actionSchema(
				actionRule{Action: "select", NeedsIndex: true},
				actionRule{Action: "select_category", Values: categoryFilterKeys()},
				actionRule{Action: "regenerate"},
			),
			Factory: NewEnhancedInsightsCard,
		},
		{
			ID:          CardEngagementBreakdown,
			Title:       "Engagement Breakdown",
			Description: "Traffic and session quality totals",
			Factory:     NewEngagementBreakdownCard,
		},
		{
			ID:          CardRecentActivity,
			Title:       "Recent Activity",
			Description: "Latest platform events",
			TitleLocalized: map[string]string{
				"es": "Actividad reciente",
			},
			Factory: NewRecentActivityCard,
		},
		{
			ID:          CardSectorRevenue,
			Title:       "Revenue by Sector",
			Description: "Industry performance breakdown",
			Schema:      actionSchema(actionRule{Action: "select_view", Values: choiceKeys(sectorViews)}),
			Factory:     NewSectorRevenueCard,
		},
		{
			ID:          CardTopSectors,
			Title:       "Top Performing Sectors",
			Description: "Highest revenue contributors",
			Factory:     NewTopSectorsCard,
		},
		{
			ID:          CardUnderperformingSectors,
			Title:       "Growth Opportunities",
			Description: "Sectors needing attention",
			Factory:     NewUnderperformingSectorsCard,
		},
		{
			ID:          CardHeatmap,
			Title:       "Market Activity Heatmap",
			Description: "Activity intensity by day and time",
			Schema:      actionSchema(actionRule{Action: "select_period", Values: choiceKeys(heatmapPeriods)}),
			Factory:     NewHeatmapCard,
		},
		{
			ID:          CardRadar,
			Title:       "Performance Radar",
			Description: "Multi-dimensional business performance",
			Factory:     NewRadarCard,
		},
	}
}
