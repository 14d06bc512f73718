package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// ChartKind selects the go-echarts chart family.
type ChartKind string

const (
	ChartLine     ChartKind = "line"
	ChartBar      ChartKind = "bar"
	ChartPie      ChartKind = "pie"
	ChartRadar    ChartKind = "radar"
	ChartComposed ChartKind = "composed"
)

// ChartPoint is one labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a set of values plotted under one legend entry. Kind and Axis
// only matter for composed charts, where Axis 1 is the right-hand y-axis.
type ChartSeries struct {
	Name   string       `json:"name"`
	Kind   ChartKind    `json:"kind,omitempty"`
	Axis   int          `json:"axis,omitempty"`
	Points []ChartPoint `json:"points"`
	Smooth bool         `json:"smooth,omitempty"`
	Dashed bool         `json:"dashed,omitempty"`
	Area   bool         `json:"area,omitempty"`
	Color  string       `json:"color,omitempty"`
}

// ReferenceLine draws a horizontal mark line at Value.
type ReferenceLine struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RadarIndicator is one spoke of a radar chart.
type RadarIndicator struct {
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

// ChartSpec is the renderer-neutral description of a chart.
type ChartSpec struct {
	Kind          ChartKind        `json:"kind"`
	Title         string           `json:"title,omitempty"`
	Subtitle      string           `json:"subtitle,omitempty"`
	Labels        []string         `json:"labels,omitempty"`
	Series        []ChartSeries    `json:"series"`
	Reference     *ReferenceLine   `json:"reference,omitempty"`
	Horizontal    bool             `json:"horizontal,omitempty"`
	Indicators    []RadarIndicator `json:"indicators,omitempty"`
	SecondaryAxis string           `json:"secondary_axis,omitempty"`
}

// ChartRenderer turns a ChartSpec into embeddable HTML.
type ChartRenderer interface {
	RenderChart(spec ChartSpec, theme string) (string, error)
}

// EChartsRenderer renders ChartSpecs server-side with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	assetsHost string
	height     string
}

// EChartsOption customizes the renderer.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache. Passing nil disables caching.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight overrides the 360px default.
func WithChartHeight(height string) EChartsOption {
	return func(r *EChartsRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewEChartsRenderer builds a renderer with a five minute cache.
func NewEChartsRenderer(options ...EChartsOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache:  NewChartCache(5 * time.Minute),
		height: defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderChart renders the spec, reusing cached markup for identical input.
func (r *EChartsRenderer) RenderChart(spec ChartSpec, theme string) (string, error) {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("dashboard: chart %q has no series", spec.Title)
	}
	render := func() (string, error) {
		return r.render(spec, theme)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", spec.Kind, theme, specKey(spec))
	return r.cache.GetOrRender(key, render)
}

// Purge drops expired markup from the cache when it supports purging.
func (r *EChartsRenderer) Purge() int {
	if p, ok := r.cache.(interface{ Purge() int }); ok {
		return p.Purge()
	}
	return 0
}

func (r *EChartsRenderer) render(spec ChartSpec, theme string) (string, error) {
	switch spec.Kind {
	case ChartLine:
		return r.renderLine(spec, theme)
	case ChartBar:
		return r.renderBar(spec, theme)
	case ChartPie:
		return r.renderPie(spec, theme)
	case ChartRadar:
		return r.renderRadar(spec, theme)
	case ChartComposed:
		return r.renderComposed(spec, theme)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart kind %q", spec.Kind)
	}
}

func (r *EChartsRenderer) renderLine(spec ChartSpec, theme string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
	line.SetXAxis(spec.Labels)
	for i, s := range spec.Series {
		options := lineSeriesOptions(s)
		if i == 0 && spec.Reference != nil {
			options = append(options, referenceOption(*spec.Reference))
		}
		line.AddSeries(s.Name, toLineData(s.Points), options...)
	}
	return renderChart(line)
}

func (r *EChartsRenderer) renderBar(spec ChartSpec, theme string) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
	if spec.Horizontal {
		bar.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
			charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
		)
		bar.XYReversal()
	}
	bar.SetXAxis(spec.Labels)
	for _, s := range spec.Series {
		bar.AddSeries(s.Name, toBarData(s.Points), barSeriesOptions(s)...)
	}
	return renderChart(bar)
}

func (r *EChartsRenderer) renderPie(spec ChartSpec, theme string) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
	for _, s := range spec.Series {
		pie.AddSeries(s.Name, toPieData(s.Points),
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		)
	}
	return renderChart(pie)
}

func (r *EChartsRenderer) renderRadar(spec ChartSpec, theme string) (string, error) {
	radar := charts.NewRadar()
	indicators := make([]*opts.Indicator, len(spec.Indicators))
	for i, ind := range spec.Indicators {
		indicators[i] = &opts.Indicator{Name: ind.Name, Max: float32(ind.Max)}
	}
	global := append(r.globalChartOptions(spec, theme),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: 5,
		}),
	)
	radar.SetGlobalOptions(global...)
	for _, s := range spec.Series {
		values := make([]float64, len(s.Points))
		for i, point := range s.Points {
			values[i] = point.Value
		}
		options := []charts.SeriesOpts{}
		if s.Area {
			options = append(options, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}))
		}
		if s.Dashed {
			options = append(options, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 2}))
		}
		radar.AddSeries(s.Name, []opts.RadarData{{Name: s.Name, Value: values}}, options...)
	}
	return renderChart(radar)
}

// renderComposed draws bar series on a bar chart and overlaps a line chart for
// the line series. Series with Axis 1 use a second y-axis on the right.
func (r *EChartsRenderer) renderComposed(spec ChartSpec, theme string) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
	bar.SetXAxis(spec.Labels)
	if spec.SecondaryAxis != "" || hasSecondaryAxis(spec.Series) {
		bar.ExtendYAxis(opts.YAxis{Name: spec.SecondaryAxis, Type: "value", Position: "right"})
	}

	line := charts.NewLine()
	line.SetXAxis(spec.Labels)
	lines := 0
	for _, s := range spec.Series {
		if s.Kind == ChartLine {
			line.AddSeries(s.Name, toLineData(s.Points), lineSeriesOptions(s)...)
			lines++
			continue
		}
		bar.AddSeries(s.Name, toBarData(s.Points), barSeriesOptions(s)...)
	}
	if lines > 0 {
		bar.Overlap(line)
	}
	return renderChart(bar)
}

func hasSecondaryAxis(series []ChartSeries) bool {
	for _, s := range series {
		if s.Axis > 0 {
			return true
		}
	}
	return false
}

func lineSeriesOptions(s ChartSeries) []charts.SeriesOpts {
	options := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(s.Smooth), YAxisIndex: s.Axis}),
	}
	style := opts.LineStyle{Width: 2, Color: s.Color}
	if s.Dashed {
		style.Type = "dashed"
	}
	options = append(options, charts.WithLineStyleOpts(style))
	if s.Area {
		options = append(options, charts.WithAreaStyleOpts(opts.AreaStyle{Color: s.Color, Opacity: opts.Float(0.2)}))
	}
	if s.Color != "" {
		options = append(options, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	return options
}

func barSeriesOptions(s ChartSeries) []charts.SeriesOpts {
	options := []charts.SeriesOpts{
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: s.Axis}),
	}
	if s.Color != "" {
		options = append(options, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	return options
}

func referenceOption(ref ReferenceLine) charts.SeriesOpts {
	return charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
		Name:  ref.Name,
		YAxis: ref.Value,
	})
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(spec ChartSpec, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	tooltip := opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}
	if spec.Kind == ChartPie || spec.Kind == ChartRadar {
		tooltip.Trigger = "item"
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(tooltip),
	}
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

// PointsFrom pairs a dataset column with its record labels.
func PointsFrom(ds Dataset, field string) []ChartPoint {
	points := make([]ChartPoint, ds.Len())
	for i, rec := range ds.Records {
		points[i] = ChartPoint{Label: rec.Label, Value: rec.Value(field)}
	}
	return points
}
