package dashboard

import "fmt"

// DisplayStyle is the presentation record attached to a tag variant.
type DisplayStyle struct {
	Tone  string `json:"tone"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// InsightType classifies an insight record.
type InsightType int

const (
	InsightOpportunity InsightType = iota
	InsightWarning
	InsightRecommendation
	InsightObservation
	InsightPrediction
	insightTypeCount
)

var insightTypeKeys = [...]string{
	InsightOpportunity:    "opportunity",
	InsightWarning:        "warning",
	InsightRecommendation: "recommendation",
	InsightObservation:    "insight",
	InsightPrediction:     "prediction",
}

var insightTypeStyles = [...]DisplayStyle{
	InsightOpportunity:    {Tone: "green", Icon: "trending-up", Label: "Opportunity"},
	InsightWarning:        {Tone: "red", Icon: "alert-triangle", Label: "Warning"},
	InsightRecommendation: {Tone: "blue", Icon: "lightbulb", Label: "Recommendation"},
	InsightObservation:    {Tone: "purple", Icon: "target", Label: "Insight"},
	InsightPrediction:     {Tone: "yellow", Icon: "bar-chart", Label: "Prediction"},
}

// Level grades impact and risk.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
	levelCount
)

var levelKeys = [...]string{
	LevelLow:    "Low",
	LevelMedium: "Medium",
	LevelHigh:   "High",
}

var levelStyles = [...]DisplayStyle{
	LevelLow:    {Tone: "green", Icon: "shield", Label: "Low"},
	LevelMedium: {Tone: "yellow", Icon: "gauge", Label: "Medium"},
	LevelHigh:   {Tone: "red", Icon: "flame", Label: "High"},
}

// InsightCategory groups enhanced insights for filtering.
type InsightCategory int

const (
	CategoryRevenue InsightCategory = iota
	CategoryUser
	CategoryGrowth
	CategoryOptimization
	CategoryForecast
	insightCategoryCount
)

var insightCategoryKeys = [...]string{
	CategoryRevenue:      "revenue",
	CategoryUser:         "user",
	CategoryGrowth:       "growth",
	CategoryOptimization: "optimization",
	CategoryForecast:     "forecast",
}

var insightCategoryStyles = [...]DisplayStyle{
	CategoryRevenue:      {Tone: "green", Icon: "dollar-sign", Label: "Revenue"},
	CategoryUser:         {Tone: "blue", Icon: "users", Label: "Users"},
	CategoryGrowth:       {Tone: "purple", Icon: "trending-up", Label: "Growth"},
	CategoryOptimization: {Tone: "yellow", Icon: "zap", Label: "Operations"},
	CategoryForecast:     {Tone: "yellow", Icon: "bar-chart", Label: "Forecast"},
}

// ActivityType classifies an activity feed entry.
type ActivityType int

const (
	ActivityUserSignup ActivityType = iota
	ActivityPayment
	ActivitySystem
	ActivityAlert
	activityTypeCount
)

var activityTypeKeys = [...]string{
	ActivityUserSignup: "user_signup",
	ActivityPayment:    "payment",
	ActivitySystem:     "system",
	ActivityAlert:      "alert",
}

var activityTypeStyles = [...]DisplayStyle{
	ActivityUserSignup: {Tone: "green", Icon: "user-plus", Label: "Signup"},
	ActivityPayment:    {Tone: "green", Icon: "credit-card", Label: "Payment"},
	ActivitySystem:     {Tone: "blue", Icon: "settings", Label: "System"},
	ActivityAlert:      {Tone: "yellow", Icon: "alert-triangle", Label: "Alert"},
}

// ActivityStatus grades an activity feed entry.
type ActivityStatus int

const (
	StatusSuccess ActivityStatus = iota
	StatusInfo
	StatusWarning
	activityStatusCount
)

var activityStatusKeys = [...]string{
	StatusSuccess: "success",
	StatusInfo:    "info",
	StatusWarning: "warning",
}

var activityStatusStyles = [...]DisplayStyle{
	StatusSuccess: {Tone: "green", Icon: "check-circle", Label: "Success"},
	StatusInfo:    {Tone: "blue", Icon: "info", Label: "Info"},
	StatusWarning: {Tone: "yellow", Icon: "alert-circle", Label: "Warning"},
}

// Intensity grades a heatmap cell.
type Intensity int

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
	intensityCount
)

var intensityKeys = [...]string{
	IntensityLow:    "low",
	IntensityMedium: "medium",
	IntensityHigh:   "high",
}

var intensityStyles = [...]DisplayStyle{
	IntensityLow:    {Tone: "blue", Icon: "circle", Label: "Low"},
	IntensityMedium: {Tone: "yellow", Icon: "circle", Label: "Medium"},
	IntensityHigh:   {Tone: "red", Icon: "circle", Label: "High"},
}

// Trend marks the direction of a change badge.
type Trend int

const (
	TrendUp Trend = iota
	TrendDown
	trendCount
)

var trendKeys = [...]string{
	TrendUp:   "up",
	TrendDown: "down",
}

var trendStyles = [...]DisplayStyle{
	TrendUp:   {Tone: "green", Icon: "trending-up", Label: "Up"},
	TrendDown: {Tone: "red", Icon: "trending-down", Label: "Down"},
}

// Compile-time checks: each key and style table has exactly one entry per variant.
var (
	_ = [1]struct{}{}[len(insightTypeKeys)-int(insightTypeCount)]
	_ = [1]struct{}{}[len(insightTypeStyles)-int(insightTypeCount)]
	_ = [1]struct{}{}[len(levelKeys)-int(levelCount)]
	_ = [1]struct{}{}[len(levelStyles)-int(levelCount)]
	_ = [1]struct{}{}[len(insightCategoryKeys)-int(insightCategoryCount)]
	_ = [1]struct{}{}[len(insightCategoryStyles)-int(insightCategoryCount)]
	_ = [1]struct{}{}[len(activityTypeKeys)-int(activityTypeCount)]
	_ = [1]struct{}{}[len(activityTypeStyles)-int(activityTypeCount)]
	_ = [1]struct{}{}[len(activityStatusKeys)-int(activityStatusCount)]
	_ = [1]struct{}{}[len(activityStatusStyles)-int(activityStatusCount)]
	_ = [1]struct{}{}[len(intensityKeys)-int(intensityCount)]
	_ = [1]struct{}{}[len(intensityStyles)-int(intensityCount)]
	_ = [1]struct{}{}[len(trendKeys)-int(trendCount)]
	_ = [1]struct{}{}[len(trendStyles)-int(trendCount)]
)

func tagKey(keys []string, v int) string {
	if v < 0 || v >= len(keys) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return keys[v]
}

func tagStyle(styles []DisplayStyle, v int) DisplayStyle {
	if v < 0 || v >= len(styles) {
		return DisplayStyle{Tone: "gray", Icon: "circle"}
	}
	return styles[v]
}

func parseTag(kind string, keys []string, key string) (int, error) {
	for i, candidate := range keys {
		if candidate == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("dashboard: unknown %s %q", kind, key)
}

func (t InsightType) String() string {
	return tagKey(insightTypeKeys[:], int(t))
}

// Style returns the display attributes for the variant.
func (t InsightType) Style() DisplayStyle {
	return tagStyle(insightTypeStyles[:], int(t))
}

func (l Level) String() string {
	return tagKey(levelKeys[:], int(l))
}

// Style returns the display attributes for the variant.
func (l Level) Style() DisplayStyle {
	return tagStyle(levelStyles[:], int(l))
}

func (c InsightCategory) String() string {
	return tagKey(insightCategoryKeys[:], int(c))
}

// Style returns the display attributes for the variant.
func (c InsightCategory) Style() DisplayStyle {
	return tagStyle(insightCategoryStyles[:], int(c))
}

func (t ActivityType) String() string {
	return tagKey(activityTypeKeys[:], int(t))
}

// Style returns the display attributes for the variant.
func (t ActivityType) Style() DisplayStyle {
	return tagStyle(activityTypeStyles[:], int(t))
}

func (s ActivityStatus) String() string {
	return tagKey(activityStatusKeys[:], int(s))
}

// Style returns the display attributes for the variant.
func (s ActivityStatus) Style() DisplayStyle {
	return tagStyle(activityStatusStyles[:], int(s))
}

func (i Intensity) String() string {
	return tagKey(intensityKeys[:], int(i))
}

// Style returns the display attributes for the variant.
func (i Intensity) Style() DisplayStyle {
	return tagStyle(intensityStyles[:], int(i))
}

func (t Trend) String() string {
	return tagKey(trendKeys[:], int(t))
}

// Style returns the display attributes for the variant.
func (t Trend) Style() DisplayStyle {
	return tagStyle(trendStyles[:], int(t))
}

// ParseInsightType resolves an insight type key.
func ParseInsightType(key string) (InsightType, error) {
	v, err := parseTag("insight type", insightTypeKeys[:], key)
	return InsightType(v), err
}

// ParseLevel resolves an impact/risk level key.
func ParseLevel(key string) (Level, error) {
	v, err := parseTag("level", levelKeys[:], key)
	return Level(v), err
}

// ParseInsightCategory resolves an insight category key.
func ParseInsightCategory(key string) (InsightCategory, error) {
	v, err := parseTag("insight category", insightCategoryKeys[:], key)
	return InsightCategory(v), err
}

// ParseActivityStatus resolves an activity status key.
func ParseActivityStatus(key string) (ActivityStatus, error) {
	v, err := parseTag("activity status", activityStatusKeys[:], key)
	return ActivityStatus(v), err
}

// ParseIntensity resolves a heatmap intensity key.
func ParseIntensity(key string) (Intensity, error) {
	v, err := parseTag("intensity", intensityKeys[:], key)
	return Intensity(v), err
}

// ParseTrend resolves a trend key.
func ParseTrend(key string) (Trend, error) {
	v, err := parseTag("trend", trendKeys[:], key)
	return Trend(v), err
}

func (t InsightType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (c InsightCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (t ActivityType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (s ActivityStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (i Intensity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (c *InsightCategory) UnmarshalText(text []byte) error {
	v, err := ParseInsightCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
