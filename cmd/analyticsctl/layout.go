package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

type layoutCmd struct {
	Scaffold layoutScaffoldCmd `cmd:"" help:"Write a layout manifest, optionally seeded from the built-in one."`
}

type layoutScaffoldCmd struct {
	Out       string   `arg:"" type:"path" help:"Destination YAML file."`
	Name      string   `help:"Layout name (stored kebab-cased)."`
	Title     string   `help:"Header title."`
	Subtitle  string   `help:"Header subtitle."`
	Empty     bool     `help:"Start from an empty layout instead of the built-in one."`
	Row       []string `help:"Append a row as tab=card,card (repeatable). Tab and card names are normalized."`
	Overwrite bool     `help:"Replace an existing file."`
}

func (cmd *layoutScaffoldCmd) Run() error {
	if _, err := os.Stat(cmd.Out); err == nil && !cmd.Overwrite {
		return fmt.Errorf("analyticsctl: %s already exists (use --overwrite)", cmd.Out)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("analyticsctl: stat %s: %w", cmd.Out, err)
	}

	doc, err := cmd.build()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("analyticsctl: mkdir %s: %w", filepath.Dir(cmd.Out), err)
	}
	file, err := os.Create(cmd.Out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("analyticsctl: create %s: %w", cmd.Out, err)
	}
	defer file.Close()
	if err := dashboard.EncodeLayout(file, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote layout %s with %d tabs\n", cmd.Out, len(doc.Tabs))
	return nil
}

func (cmd *layoutScaffoldCmd) build() (*dashboard.LayoutManifest, error) {
	doc := &dashboard.LayoutManifest{Version: dashboard.ManifestVersion}
	if !cmd.Empty {
		base, err := dashboard.DefaultLayout()
		if err != nil {
			return nil, err
		}
		doc = base
	}
	doc.Source = ""
	if cmd.Name != "" {
		doc.Name = strcase.ToKebab(cmd.Name)
	}
	if cmd.Title != "" {
		doc.Header.Title = cmd.Title
	}
	if cmd.Subtitle != "" {
		doc.Header.Subtitle = cmd.Subtitle
	}
	for _, spec := range cmd.Row {
		tab, cards, err := parseRow(spec)
		if err != nil {
			return nil, err
		}
		appendRow(doc, tab, cards)
	}
	if err := doc.Validate(dashboard.NewRegistry()); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseRow reads "tab=card,card". Tabs are kebab-cased ("AI Insights" is
// ai-insights) and cards snake-cased ("RevenueChart" is revenue_chart).
func parseRow(spec string) (dashboard.Tab, []dashboard.CardID, error) {
	left, right, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("analyticsctl: row %q must look like tab=card,card", spec)
	}
	tab, err := dashboard.ParseTab(strcase.ToKebab(strings.TrimSpace(left)))
	if err != nil {
		return "", nil, fmt.Errorf("analyticsctl: row %q: %w", spec, err)
	}
	var cards []dashboard.CardID
	for _, name := range strings.Split(right, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cards = append(cards, dashboard.CardID(strcase.ToSnake(name)))
	}
	if len(cards) == 0 {
		return "", nil, fmt.Errorf("analyticsctl: row %q lists no cards", spec)
	}
	return tab, cards, nil
}

func appendRow(doc *dashboard.LayoutManifest, tab dashboard.Tab, cards []dashboard.CardID) {
	for i := range doc.Tabs {
		if doc.Tabs[i].Key == tab {
			doc.Tabs[i].Rows = append(doc.Tabs[i].Rows, cards)
			return
		}
	}
	doc.Tabs = append(doc.Tabs, dashboard.TabLayout{Key: tab, Rows: [][]dashboard.CardID{cards}})
}
