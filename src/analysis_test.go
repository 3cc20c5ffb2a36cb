package main

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"hashtag-analyzer/src/filter"
	"hashtag-analyzer/src/loader"
	"hashtag-analyzer/src/pipeline"
	"hashtag-analyzer/src/render"
	"hashtag-analyzer/src/tweets"
)

type fakeSource struct {
	datasets map[string]*tweets.Dataset
	calls    int
}

func (f *fakeSource) Load(name string) (*tweets.Dataset, error) {
	f.calls++
	ds, ok := f.datasets[name]
	if !ok {
		return nil, &loader.DataSourceError{Name: name, Op: "open", Err: os.ErrNotExist}
	}
	return ds, nil
}

type fakePublisher struct {
	published []render.RenderRequest
	err       error
}

func (f *fakePublisher) PublishRender(ctx context.Context, req render.RenderRequest) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, req)
	return nil
}

func testConfig() *Config {
	cfg := &Config{LogDir: "logs"}
	cfg.applyDefaults()
	return cfg
}

func newTestAnalyzer() (*Analyzer, *fakeSource) {
	src := &fakeSource{datasets: map[string]*tweets.Dataset{
		"obamacare.csv": tweets.FromTexts("obamacare.csv", "#ACA #aca #health", "#Health #aca", "no tags"),
		"got_tweets.csv": {
			Name:    "got_tweets.csv",
			Columns: []string{"id_str"},
		},
	}}
	return &Analyzer{source: src}, src
}

// TestAnalyzerRun tests a full request from config to render request.
//
// Rationale: This is the path every user interaction takes; the chart must
// carry the ranked hashtags in display order with the chosen style.
func TestAnalyzerRun(t *testing.T) {
	a, _ := newTestAnalyzer()
	req := requestFromConfig(testConfig())
	req.Orientation = "horizontal"

	analysis, chart, err := a.Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expectedTop := pipeline.RankedResult{{Token: "#aca", Count: 3}, {Token: "#health", Count: 2}}
	if !reflect.DeepEqual(analysis.Top, expectedTop) {
		t.Errorf("Expected top %v, got %v", expectedTop, analysis.Top)
	}
	expectedBars := []render.Bar{{Label: "#health", Count: 2}, {Label: "#aca", Count: 3}}
	if !reflect.DeepEqual(chart.Bars, expectedBars) {
		t.Errorf("Expected bars %v, got %v", expectedBars, chart.Bars)
	}
	if chart.Title != "Top 10 most common hashtags" {
		t.Errorf("Unexpected title %q", chart.Title)
	}
	if chart.Style.Color != render.DefaultColor {
		t.Errorf("Expected default colour, got %s", chart.Style.Color)
	}
}

// TestAnalyzerRunCaseSensitive tests that the case flag reaches the pipeline.
func TestAnalyzerRunCaseSensitive(t *testing.T) {
	a, _ := newTestAnalyzer()
	req := requestFromConfig(testConfig())
	req.CaseSensitive = true

	analysis, _, err := a.Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if analysis.Table.Len() != 4 {
		t.Errorf("Expected 4 distinct hashtags, got %v", analysis.Table.Counts())
	}
}

// TestAnalyzerRunErrors tests request validation and error propagation.
func TestAnalyzerRunErrors(t *testing.T) {
	a, src := newTestAnalyzer()
	cfg := testConfig()

	bad := requestFromConfig(cfg)
	bad.TopN = 50
	if _, _, err := a.Run(bad); err == nil {
		t.Error("Expected error for top_n out of range")
	}
	if src.calls != 0 {
		t.Errorf("Expected no load for an invalid request, got %d", src.calls)
	}

	missing := requestFromConfig(cfg)
	missing.Dataset = "trumptweets.csv"
	_, _, err := a.Run(missing)
	var dsErr *loader.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Errorf("Expected DataSourceError to pass through, got %v", err)
	}

	noText := requestFromConfig(cfg)
	noText.Dataset = "got_tweets.csv"
	_, _, err = a.Run(noText)
	var invalid *pipeline.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidInputError, got %v", err)
	}
}

// TestAnalyzerExclude tests the exclusion list wiring.
func TestAnalyzerExclude(t *testing.T) {
	a, _ := newTestAnalyzer()
	hf := filter.NewHashtagFilter()
	hf.AddHashtag("aca")
	a.exclude = hf

	analysis, _, err := a.Run(requestFromConfig(testConfig()))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	expected := pipeline.RankedResult{{Token: "#health", Count: 2}}
	if !reflect.DeepEqual(analysis.Top, expected) {
		t.Errorf("Expected %v, got %v", expected, analysis.Top)
	}
}

// TestHandleMessage tests the queue handler with defaults and overrides.
//
// Rationale: Requests on the queue may leave display fields out; those fall
// back to the configured defaults while explicit values win.
func TestHandleMessage(t *testing.T) {
	a, _ := newTestAnalyzer()
	a.freqClasses = 2
	pub := &fakePublisher{}
	cfg := testConfig()

	body := []byte(`{"dataset":"obamacare.csv","top_n":5,"color":"#1E90FF"}`)
	if err := a.handleMessage(context.Background(), cfg, body, pub); err != nil {
		t.Fatalf("handleMessage failed: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("Expected 1 published request, got %d", len(pub.published))
	}
	got := pub.published[0]
	if got.Title != "Top 5 most common hashtags" || got.Style.Color != "#1E90FF" {
		t.Errorf("Unexpected render request %+v", got)
	}
	if got.Style.Orientation != render.Vertical || got.InvertAxis {
		t.Errorf("Expected vertical default, got %+v", got.Style)
	}
}

// TestHandleMessageErrors tests malformed requests and publish failures.
func TestHandleMessageErrors(t *testing.T) {
	a, _ := newTestAnalyzer()
	cfg := testConfig()

	testCases := []struct {
		name string
		body string
		pub  *fakePublisher
	}{
		{"not json", `{{{`, &fakePublisher{}},
		{"bad colour", `{"color":"blue"}`, &fakePublisher{}},
		{"unknown dataset", `{"dataset":"secret.csv"}`, &fakePublisher{}},
		{"publish fails", `{}`, &fakePublisher{err: errors.New("channel closed")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := a.handleMessage(context.Background(), cfg, []byte(tc.body), tc.pub); err == nil {
				t.Error("Expected error, got nil")
			}
			if len(tc.pub.published) != 0 {
				t.Errorf("Expected nothing published, got %d", len(tc.pub.published))
			}
		})
	}
}

// TestStatsCSV tests the stats file header and rows.
func TestStatsCSV(t *testing.T) {
	dir, err := os.MkdirTemp("", "stats_test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "stats.csv")

	ensureStatsCSVHeader(path)
	ensureStatsCSVHeader(path)

	a, _ := newTestAnalyzer()
	a.statsPath = path
	if _, _, err := a.Run(requestFromConfig(testConfig())); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open stats: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse stats: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header and one row, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	expected := []string{"obamacare.csv", "3", "5", "2", "10"}
	if !reflect.DeepEqual(rows[1][1:], expected) {
		t.Errorf("Expected %v, got %v", expected, rows[1][1:])
	}
}

// TestSetupLogger tests that the log file is created in log_dir.
func TestSetupLogger(t *testing.T) {
	dir, err := os.MkdirTemp("", "logger_test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(dir)

	logger, f, err := setupLogger(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("setupLogger failed: %v", err)
	}
	logger.Info("hello")
	f.Close()

	if _, err := os.Stat(filepath.Join(dir, "nested", "analyzer.log")); err != nil {
		t.Errorf("Expected log file to exist: %v", err)
	}
	if _, _, err := setupLogger(""); err == nil {
		t.Error("Expected error for empty log dir")
	}
}
