package httpapi

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-insights-dashboard/components/dashboard"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/queries"
)

// Executor is the transport-neutral surface shared by the net/http handlers
// and the go-router registration.
type Executor interface {
	SetTimeRange(ctx context.Context, input commands.SetTimeRangeInput) error
	SetActiveTab(ctx context.Context, input commands.SetActiveTabInput) error
	TriggerRefresh(ctx context.Context, input commands.TriggerRefreshInput) error
	ToggleDarkMode(ctx context.Context, input commands.ToggleDarkModeInput) error
	SelectNav(ctx context.Context, input commands.SelectNavInput) error
	CardAction(ctx context.Context, input commands.CardActionInput) error

	Page(ctx context.Context, input queries.PageInput) (dashboard.Page, error)
	Card(ctx context.Context, input queries.CardInput) (dashboard.CardFrame, error)
	Tooltip(ctx context.Context, input queries.TooltipInput) ([]dashboard.TooltipLine, error)
	Search(ctx context.Context, input queries.SearchInput) (dashboard.SearchResult, error)
	Metrics(ctx context.Context, input queries.MetricsInput) (queries.MetricsReport, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
// A nil field makes the matching call fail.
type CommandExecutor struct {
	TimeRangeCommander  gocommand.Commander[commands.SetTimeRangeInput]
	TabCommander        gocommand.Commander[commands.SetActiveTabInput]
	RefreshCommander    gocommand.Commander[commands.TriggerRefreshInput]
	ThemeCommander      gocommand.Commander[commands.ToggleDarkModeInput]
	NavCommander        gocommand.Commander[commands.SelectNavInput]
	CardActionCommander gocommand.Commander[commands.CardActionInput]

	PageQuerier    gocommand.Querier[queries.PageInput, dashboard.Page]
	CardQuerier    gocommand.Querier[queries.CardInput, dashboard.CardFrame]
	TooltipQuerier gocommand.Querier[queries.TooltipInput, []dashboard.TooltipLine]
	SearchQuerier  gocommand.Querier[queries.SearchInput, dashboard.SearchResult]
	MetricsQuerier gocommand.Querier[queries.MetricsInput, queries.MetricsReport]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires every command and query against sessions.
func NewCommandExecutor(sessions dashboard.SessionSource, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		TimeRangeCommander:  commands.NewSetTimeRangeCommand(sessions, telemetry),
		TabCommander:        commands.NewSetActiveTabCommand(sessions, telemetry),
		RefreshCommander:    commands.NewTriggerRefreshCommand(sessions, telemetry),
		ThemeCommander:      commands.NewToggleDarkModeCommand(sessions, telemetry),
		NavCommander:        commands.NewSelectNavCommand(sessions, telemetry),
		CardActionCommander: commands.NewCardActionCommand(sessions, telemetry),
		PageQuerier:         queries.NewPageQuery(sessions),
		CardQuerier:         queries.NewCardQuery(sessions),
		TooltipQuerier:      queries.NewTooltipQuery(sessions),
		SearchQuerier:       queries.NewSearchQuery(sessions),
		MetricsQuerier:      queries.NewMetricsQuery(),
	}
}

func notConfigured(name string) error {
	return fmt.Errorf("httpapi: %s is not configured", name)
}

func (e *CommandExecutor) SetTimeRange(ctx context.Context, input commands.SetTimeRangeInput) error {
	if e.TimeRangeCommander == nil {
		return notConfigured("time range commander")
	}
	return e.TimeRangeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetActiveTab(ctx context.Context, input commands.SetActiveTabInput) error {
	if e.TabCommander == nil {
		return notConfigured("tab commander")
	}
	return e.TabCommander.Execute(ctx, input)
}

func (e *CommandExecutor) TriggerRefresh(ctx context.Context, input commands.TriggerRefreshInput) error {
	if e.RefreshCommander == nil {
		return notConfigured("refresh commander")
	}
	return e.RefreshCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleDarkMode(ctx context.Context, input commands.ToggleDarkModeInput) error {
	if e.ThemeCommander == nil {
		return notConfigured("theme commander")
	}
	return e.ThemeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SelectNav(ctx context.Context, input commands.SelectNavInput) error {
	if e.NavCommander == nil {
		return notConfigured("nav commander")
	}
	return e.NavCommander.Execute(ctx, input)
}

func (e *CommandExecutor) CardAction(ctx context.Context, input commands.CardActionInput) error {
	if e.CardActionCommander == nil {
		return notConfigured("card action commander")
	}
	return e.CardActionCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Page(ctx context.Context, input queries.PageInput) (dashboard.Page, error) {
	if e.PageQuerier == nil {
		return dashboard.Page{}, notConfigured("page querier")
	}
	return e.PageQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Card(ctx context.Context, input queries.CardInput) (dashboard.CardFrame, error) {
	if e.CardQuerier == nil {
		return dashboard.CardFrame{}, notConfigured("card querier")
	}
	return e.CardQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Tooltip(ctx context.Context, input queries.TooltipInput) ([]dashboard.TooltipLine, error) {
	if e.TooltipQuerier == nil {
		return nil, notConfigured("tooltip querier")
	}
	return e.TooltipQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Search(ctx context.Context, input queries.SearchInput) (dashboard.SearchResult, error) {
	if e.SearchQuerier == nil {
		return dashboard.SearchResult{}, notConfigured("search querier")
	}
	return e.SearchQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Metrics(ctx context.Context, input queries.MetricsInput) (queries.MetricsReport, error) {
	if e.MetricsQuerier == nil {
		return queries.MetricsReport{}, notConfigured("metrics querier")
	}
	return e.MetricsQuerier.Query(ctx, input)
}
