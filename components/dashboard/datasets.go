package dashboard

// Field names shared by the datasets and the cards reading them.
const (
	FieldRevenue     = "revenue"
	FieldTarget      = "target"
	FieldProfit      = "profit"
	FieldForecast    = "forecast"
	FieldPageViews   = "pageViews"
	FieldSession     = "avgSessionDuration"
	FieldBounceRate  = "bounceRate"
	FieldInteraction = "interactions"
	FieldSatisfied   = "satisfaction"
	FieldReturning   = "returnVisitors"
	FieldGrowth      = "growth"
	FieldCount       = "count"
	FieldUsers       = "users"
	FieldCurrent     = "current"
	FieldPrevious    = "previous"
	FieldFullMark    = "fullMark"

	TagTrend       = "trend"
	TagDescription = "description"
	TagFlag        = "flag"
)

// RevenueGoal is the reference line drawn on the revenue chart.
const RevenueGoal = 120000

// AverageOrderValue converts completed funnel purchases into revenue.
const AverageOrderValue = 89

// HeatmapPeriods are the four daily buckets of the activity heatmap.
var HeatmapPeriods = []string{"00-06", "06-12", "12-18", "18-24"}

func rec(label string, values map[string]float64, tags map[string]string) Record {
	return Record{Label: label, Values: values, Tags: tags}
}

// RevenueDataset returns 12 months of revenue vs target.
func RevenueDataset() Dataset {
	row := func(month string, revenue, target, profit, forecast float64) Record {
		return rec(month, map[string]float64{
			FieldRevenue:  revenue,
			FieldTarget:   target,
			FieldProfit:   profit,
			FieldForecast: forecast,
		}, nil)
	}
	return Dataset{
		Name:   "revenue",
		Fields: []string{FieldRevenue, FieldTarget, FieldProfit, FieldForecast},
		Records: []Record{
			row("Jan", 45000, 75000, 12000, 48000),
			row("Feb", 52000, 80000, 15600, 55000),
			row("Mar", 48000, 85000, 14400, 52000),
			row("Apr", 61000, 90000, 18300, 65000),
			row("May", 55000, 95000, 16500, 62000),
			row("Jun", 67000, 100000, 20100, 72000),
			row("Jul", 72000, 105000, 21600, 78000),
			row("Aug", 68000, 110000, 20400, 75000),
			row("Sep", 75000, 115000, 22500, 82000),
			row("Oct", 82000, 120000, 24600, 88000),
			row("Nov", 89000, 125000, 26700, 95000),
			row("Dec", 95000, 130000, 28500, 102000),
		},
	}
}

// EngagementDataset returns seven days of user behavior metrics.
func EngagementDataset() Dataset {
	row := func(day string, views, session, bounce, interactions, satisfaction, returning float64) Record {
		return rec(day, map[string]float64{
			FieldPageViews:   views,
			FieldSession:     session,
			FieldBounceRate:  bounce,
			FieldInteraction: interactions,
			FieldSatisfied:   satisfaction,
			FieldReturning:   returning,
		}, nil)
	}
	return Dataset{
		Name:   "engagement",
		Fields: []string{FieldPageViews, FieldSession, FieldBounceRate, FieldInteraction, FieldSatisfied, FieldReturning},
		Records: []Record{
			row("Mon", 12450, 4.2, 32, 8950, 4.1, 65),
			row("Tue", 15680, 4.8, 28, 11200, 4.3, 72),
			row("Wed", 13920, 4.5, 35, 9850, 4.0, 68),
			row("Thu", 18750, 5.1, 25, 13650, 4.5, 78),
			row("Fri", 16840, 4.7, 30, 12100, 4.2, 75),
			row("Sat", 11230, 3.8, 38, 7890, 3.9, 58),
			row("Sun", 9680, 3.5, 42, 6750, 3.8, 52),
		},
	}
}

// SectorDataset returns revenue by industry sector in rank order.
func SectorDataset() Dataset {
	row := func(name string, revenue, growth float64, trend Trend) Record {
		return rec(name, map[string]float64{
			FieldRevenue: revenue,
			FieldGrowth:  growth,
		}, map[string]string{TagTrend: trend.String()})
	}
	return Dataset{
		Name:   "sectors",
		Fields: []string{FieldRevenue, FieldGrowth},
		Records: []Record{
			row("Technology", 285000, 15.2, TrendUp),
			row("Healthcare", 198000, 8.7, TrendUp),
			row("Finance", 165000, 12.3, TrendUp),
			row("Retail", 128000, -3.2, TrendDown),
			row("Manufacturing", 87000, 5.8, TrendUp),
			row("Others", 14000, 2.1, TrendUp),
		},
	}
}

// FunnelDataset returns the conversion journey stages in order.
func FunnelDataset() Dataset {
	row := func(stage string, count float64, description string) Record {
		return rec(stage, map[string]float64{FieldCount: count}, map[string]string{TagDescription: description})
	}
	return Dataset{
		Name:   "funnel",
		Fields: []string{FieldCount},
		Records: []Record{
			row("Website Visitors", 45230, "Total unique visitors"),
			row("Product Views", 18650, "Viewed product pages"),
			row("Cart Additions", 8920, "Added items to cart"),
			row("Checkout Started", 4280, "Initiated checkout process"),
			row("Payment Success", 2845, "Completed purchase"),
		},
	}
}

// GeographyDataset returns active users by country.
func GeographyDataset() Dataset {
	row := func(country string, users float64, flag string) Record {
		return rec(country, map[string]float64{FieldUsers: users}, map[string]string{TagFlag: flag})
	}
	return Dataset{
		Name:   "geography",
		Fields: []string{FieldUsers},
		Records: []Record{
			row("United States", 3420, "🇺🇸"),
			row("United Kingdom", 1680, "🇬🇧"),
			row("Germany", 1240, "🇩🇪"),
			row("France", 890, "🇫🇷"),
			row("Canada", 560, "🇨🇦"),
			row("Others", 320, "🌍"),
		},
	}
}

// RadarDataset returns the performance axes scored out of 100.
func RadarDataset() Dataset {
	row := func(metric string, current, target, previous float64) Record {
		return rec(metric, map[string]float64{
			FieldCurrent:  current,
			FieldTarget:   target,
			FieldPrevious: previous,
			FieldFullMark: 100,
		}, nil)
	}
	return Dataset{
		Name:   "performance",
		Fields: []string{FieldCurrent, FieldTarget, FieldPrevious, FieldFullMark},
		Records: []Record{
			row("Revenue", 85, 90, 78),
			row("Customer Satisfaction", 92, 95, 88),
			row("Market Share", 68, 75, 65),
			row("Operational Efficiency", 89, 85, 82),
			row("Innovation", 76, 80, 72),
			row("Employee Engagement", 88, 90, 85),
		},
	}
}

// HeatmapDataset returns market activity per weekday and period. Values are
// keyed by period and the intensity of each cell is carried as a tag with the
// same key.
func HeatmapDataset() Dataset {
	row := func(day string, values [4]float64, intensity [4]Intensity) Record {
		r := rec(day, map[string]float64{}, map[string]string{})
		for i, period := range HeatmapPeriods {
			r.Values[period] = values[i]
			r.Tags[period] = intensity[i].String()
		}
		return r
	}
	lo, md, hi := IntensityLow, IntensityMedium, IntensityHigh
	return Dataset{
		Name:   "heatmap",
		Fields: append([]string(nil), HeatmapPeriods...),
		Records: []Record{
			row("Monday", [4]float64{12, 45, 38, 22}, [4]Intensity{lo, hi, md, md}),
			row("Tuesday", [4]float64{8, 52, 41, 28}, [4]Intensity{lo, hi, hi, md}),
			row("Wednesday", [4]float64{15, 48, 35, 25}, [4]Intensity{lo, hi, md, md}),
			row("Thursday", [4]float64{10, 55, 44, 31}, [4]Intensity{lo, hi, hi, md}),
			row("Friday", [4]float64{18, 42, 38, 35}, [4]Intensity{lo, md, md, md}),
			row("Saturday", [4]float64{6, 28, 48, 42}, [4]Intensity{lo, md, hi, hi}),
			row("Sunday", [4]float64{4, 22, 35, 38}, [4]Intensity{lo, lo, md, md}),
		},
	}
}

// ActivityRecord is one entry of the recent activity feed.
type ActivityRecord struct {
	ID          int            `json:"id"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timestamp   string         `json:"timestamp"`
	User        string         `json:"user"`
	Status      ActivityStatus `json:"status"`
}

// ActivityFeed returns the most recent platform events, newest first.
func ActivityFeed() []ActivityRecord {
	return []ActivityRecord{
		{ID: 1, Type: ActivityUserSignup, Title: "New user registered", Description: "John Doe signed up for premium plan", Timestamp: "2 minutes ago", User: "JD", Status: StatusSuccess},
		{ID: 2, Type: ActivityPayment, Title: "Payment received", Description: "$299 payment from Sarah Wilson", Timestamp: "5 minutes ago", User: "SW", Status: StatusSuccess},
		{ID: 3, Type: ActivitySystem, Title: "System update", Description: "Analytics engine updated to v2.1.3", Timestamp: "15 minutes ago", User: "SYS", Status: StatusInfo},
		{ID: 4, Type: ActivityAlert, Title: "High traffic alert", Description: "Server load increased by 40% in the last hour", Timestamp: "32 minutes ago", User: "ALT", Status: StatusWarning},
		{ID: 5, Type: ActivityUserSignup, Title: "New user registered", Description: "Mike Johnson signed up for basic plan", Timestamp: "1 hour ago", User: "MJ", Status: StatusSuccess},
	}
}

// KPISeed is the starting point of a live KPI tile.
type KPISeed struct {
	Key      string  `json:"key"`
	Title    string  `json:"title"`
	Value    float64 `json:"value"`
	Jitter   float64 `json:"jitter"`
	Whole    bool    `json:"whole"`
	Currency bool    `json:"currency"`
	Percent  bool    `json:"percent"`
	Change   string  `json:"change"`
	Trend    Trend   `json:"trend"`
	Icon     string  `json:"icon"`
	Caption  string  `json:"caption"`
}

// KPISeeds returns the headline KPI tiles.
func KPISeeds() []KPISeed {
	return []KPISeed{
		{Key: "revenue", Title: "Total Revenue", Value: 124563, Jitter: 50, Whole: true, Currency: true, Change: "+12.5%", Trend: TrendUp, Icon: "dollar-sign", Caption: "vs last month"},
		{Key: "users", Title: "Active Users", Value: 8543, Jitter: 5, Whole: true, Change: "+8.2%", Trend: TrendUp, Icon: "users", Caption: "vs last month"},
		{Key: "conversion", Title: "Conversion Rate", Value: 3.24, Jitter: 0.05, Percent: true, Change: "-2.1%", Trend: TrendDown, Icon: "shopping-cart", Caption: "vs last month"},
		{Key: "pageViews", Title: "Page Views", Value: 45123, Jitter: 25, Whole: true, Change: "+15.3%", Trend: TrendUp, Icon: "eye", Caption: "vs last month"},
	}
}

// NavItem is one sidebar navigation entry.
type NavItem struct {
	Label         string `json:"label"`
	Icon          string `json:"icon"`
	Notifications int    `json:"notifications"`
}

// NavItems returns the sidebar navigation in display order.
func NavItems() []NavItem {
	return []NavItem{
		{Label: "Overview", Icon: "bar-chart", Notifications: 0},
		{Label: "Analytics", Icon: "trending-up", Notifications: 2},
		{Label: "Users", Icon: "users", Notifications: 0},
		{Label: "Revenue", Icon: "dollar-sign", Notifications: 1},
		{Label: "AI Insights", Icon: "brain", Notifications: 3},
		{Label: "Settings", Icon: "settings", Notifications: 0},
		{Label: "Help", Icon: "help-circle", Notifications: 0},
	}
}
