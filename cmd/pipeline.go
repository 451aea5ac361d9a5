package cmd

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/fooddash/internal/chart"
	cfgpkg "github.com/KaramelBytes/fooddash/internal/config"
	"github.com/KaramelBytes/fooddash/internal/dashboard"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

// buildPage runs load, aggregate, render and compose once.
func buildPage(c *cfgpkg.Global, logger *slog.Logger) (*dashboard.Page, error) {
	ds, err := survey.LoadFile(c.DataPath)
	if err != nil {
		return nil, err
	}
	rows, cols := ds.Shape()
	logger.Info("loaded survey", "path", c.DataPath, "rows", rows, "columns", cols)

	figs, err := chart.Build(ds, chart.Options{Palette: chart.Palette(c.Palette)})
	if err != nil {
		return nil, fmt.Errorf("build charts: %w", err)
	}
	for _, f := range figs {
		logger.Debug("chart ready", "kind", f.Kind(), "title", f.Title())
	}

	layout := dashboard.DefaultLayout()
	layout.StylesheetURL = c.StylesheetURL
	layout.Footer = c.Footer
	layout.Size = chart.Size{Width: c.ChartWidth, Height: c.ChartHeight}
	page, err := dashboard.Compose(figs, layout)
	if err != nil {
		return nil, err
	}
	return page, nil
}
