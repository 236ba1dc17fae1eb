package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/formatter"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

func chartParamsFromFlags(cmd *cli.Command) api.ChartParams {
	return api.ChartParams{
		Period: cmd.String("period"),
		Genre:  cmd.String("genre"),
		Limit:  int(cmd.Int("limit")),
	}
}

func chartTitle(params api.ChartParams) string {
	period := params.Period
	if period == "" {
		period = "weekly"
	}
	title := strings.ToUpper(period[:1]) + period[1:] + " Chart"
	if params.Genre != "" && params.Genre != "all" {
		title = fmt.Sprintf("%s (%s)", title, params.Genre)
	}
	return title
}

// ChartsShow fetches one chart and renders it as a styled table.
func (r *Runner) ChartsShow(ctx context.Context, cmd *cli.Command) error {
	params := chartParamsFromFlags(cmd)

	r.logger.Infof("fetching chart period=%v genre=%v", params.Period, params.Genre)

	tracks, err := api.Charts(ctx, r.cached, params)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	chart := &formatter.Chart{Title: chartTitle(params), Period: params.Period, Genre: params.Genre, Tracks: tracks}
	return r.writePlain("%s", formatter.RenderChartTable(chart))
}

// ChartsPanels fetches the weekly, monthly and all-time charts concurrently.
func (r *Runner) ChartsPanels(ctx context.Context, cmd *cli.Command) error {
	panels := []api.ChartParams{
		{Period: "weekly"},
		{Period: "monthly"},
		{Period: "all"},
	}

	requests := make([]api.PanelRequest, len(panels))
	for i, params := range panels {
		requests[i] = api.PanelRequest{
			Name: params.Period,
			Op:   api.OpCharts,
			Req:  api.Request{Query: params.Query()},
		}
	}

	r.logger.Infof("fetching %v chart panels", len(requests))

	limiter := rate.NewLimiter(rate.Limit(10), len(requests))
	results, err := api.FetchAll(ctx, r.cached, limiter, requests)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		raw := make(map[string]any, len(results))
		for name, res := range results {
			raw[name] = res.Data
		}
		return r.writeJSON(raw, cmd.Bool("pretty"))
	}

	for _, params := range panels {
		res := results[params.Period]
		tracks, derr := api.DecodeTracks(res.Data)
		if derr != nil {
			return derr
		}
		chart := &formatter.Chart{Title: chartTitle(params), Period: params.Period, Tracks: tracks}
		r.writePlain("%s\n", formatter.RenderChartTable(chart))
	}
	return nil
}

// ChartsExport writes a chart to a file in the requested format.
func (r *Runner) ChartsExport(ctx context.Context, cmd *cli.Command) error {
	params := chartParamsFromFlags(cmd)

	tracks, err := api.Charts(ctx, r.cached, params)
	if err != nil {
		return err
	}

	chart := &formatter.Chart{Title: chartTitle(params), Period: params.Period, Genre: params.Genre, Tracks: tracks}
	path, err := formatter.WriteExport(chart, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Infof("exported %v tracks to %v", len(tracks), path)
	return r.writePlain("✓ Exported %d tracks to %s\n", len(tracks), path)
}
