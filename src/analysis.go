package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"hashtag-analyzer/src/loader"
	"hashtag-analyzer/src/pipeline"
	"hashtag-analyzer/src/render"
	"hashtag-analyzer/src/tweets"
)

// AnalysisRequest is one user interaction: which dataset to analyze and how
// to show the result. Every request is served from its own copy.
type AnalysisRequest struct {
	Dataset       string `json:"dataset"`
	CaseSensitive bool   `json:"case_sensitive"`
	TopN          int    `json:"top_n"`
	Color         string `json:"color"`
	Orientation   string `json:"orientation"`
	Placement     string `json:"placement"`
}

// requestFromConfig builds the request a one-shot run performs.
func requestFromConfig(cfg *Config) AnalysisRequest {
	return AnalysisRequest{
		Dataset:       cfg.Dataset,
		CaseSensitive: cfg.CaseSensitive,
		TopN:          cfg.TopN,
		Color:         cfg.Color,
		Orientation:   cfg.Orientation,
		Placement:     cfg.Placement,
	}
}

// withDefaults fills empty display fields from cfg. The case flag is taken
// as sent.
func (r AnalysisRequest) withDefaults(cfg *Config) AnalysisRequest {
	if r.Dataset == "" {
		r.Dataset = cfg.Dataset
	}
	if r.TopN == 0 {
		r.TopN = cfg.TopN
	}
	if r.Color == "" {
		r.Color = cfg.Color
	}
	if r.Orientation == "" {
		r.Orientation = cfg.Orientation
	}
	if r.Placement == "" {
		r.Placement = cfg.Placement
	}
	return r
}

// Style returns the display parameters of the request.
func (r AnalysisRequest) Style() render.Style {
	return render.Style{
		Color:       r.Color,
		Orientation: render.Orientation(r.Orientation),
		Placement:   render.Placement(r.Placement),
	}.Normalized()
}

func (r AnalysisRequest) validate() error {
	if !loader.IsAllowed(r.Dataset) {
		return fmt.Errorf("dataset %q is not one of %v", r.Dataset, loader.Datasets)
	}
	if r.TopN < minTopN || r.TopN > maxTopN {
		return fmt.Errorf("top_n must be between %d and %d, got %d", minTopN, maxTopN, r.TopN)
	}
	return r.Style().Validate()
}

// datasetSource is satisfied by *loader.Loader.
type datasetSource interface {
	Load(name string) (*tweets.Dataset, error)
}

// renderPublisher is satisfied by *RabbitMQ.
type renderPublisher interface {
	PublishRender(ctx context.Context, req render.RenderRequest) error
}

// Analyzer runs requests against a dataset source.
type Analyzer struct {
	source      datasetSource
	exclude     pipeline.Excluder
	freqClasses int
	statsPath   string
}

// Run loads the requested dataset, analyzes it and builds the render request.
// Loader errors are returned unchanged.
func (a *Analyzer) Run(req AnalysisRequest) (*pipeline.Analysis, render.RenderRequest, error) {
	if err := req.validate(); err != nil {
		return nil, render.RenderRequest{}, err
	}
	ds, err := a.source.Load(req.Dataset)
	if err != nil {
		return nil, render.RenderRequest{}, err
	}

	opts := pipeline.Options{
		CaseSensitive: req.CaseSensitive,
		TopN:          req.TopN,
		Exclude:       a.exclude,
		FreqClasses:   a.freqClasses,
	}

	start := time.Now()
	analysis, err := pipeline.Analyze(ds, opts)
	if err != nil {
		return nil, render.RenderRequest{}, err
	}
	slog.Info("Analysis complete",
		"dataset", req.Dataset,
		"case_sensitive", req.CaseSensitive,
		"top_n", req.TopN,
		"records", analysis.Records,
		"tokens", analysis.Table.Total(),
		"distinct", analysis.Table.Len(),
		"top", analysis.Top.Labels(),
		"duration", time.Since(start))

	if a.statsPath != "" {
		appendStats(a.statsPath, analysis, req.TopN)
	}
	return analysis, render.NewRenderRequest(analysis.Top, req.TopN, req.Style()), nil
}

// handleMessage serves one queued analysis request and publishes its chart.
func (a *Analyzer) handleMessage(ctx context.Context, cfg *Config, body []byte, pub renderPublisher) error {
	var req AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("failed to decode analysis request: %w", err)
	}
	req = req.withDefaults(cfg)

	_, chart, err := a.Run(req)
	if err != nil {
		return err
	}
	return pub.PublishRender(ctx, chart)
}

// ensureStatsCSVHeader creates the stats CSV file and writes the header if it doesn't exist.
func ensureStatsCSVHeader(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Warn("Failed to create stats CSV", "path", path, "error", err)
			return
		}
		defer f.Close()
		writer := csv.NewWriter(f)
		writer.Write([]string{"timestamp", "dataset", "records", "tokens", "distinct_tokens", "top_n"})
		writer.Flush()
	}
}

// appendStats logs one analysis as a CSV row for machine consumption.
func appendStats(path string, a *pipeline.Analysis, topN int) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Warn("Failed to open stats CSV", "path", path, "error", err)
		return
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	writer.Write([]string{
		time.Now().Format(time.RFC3339),
		a.Dataset,
		strconv.Itoa(a.Records),
		strconv.Itoa(a.Table.Total()),
		strconv.Itoa(a.Table.Len()),
		strconv.Itoa(topN),
	})
	writer.Flush()
}
