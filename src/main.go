package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"hashtag-analyzer/src/filter"
	"hashtag-analyzer/src/loader"
	"hashtag-analyzer/src/pipeline"
	"hashtag-analyzer/src/render"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	dataset := flag.String("dataset", "", "Dataset to analyze (obamacare.csv, trumptweets.csv, got_tweets.csv)")
	caseSensitive := flag.Bool("case-sensitive", false, "Consider letter case when counting hashtags")
	top := flag.Int("top", 0, "Number of top hashtags to display (5-20)")
	color := flag.String("color", "", "Bar colour as #RRGGBB")
	orientation := flag.String("orientation", "", "Bar orientation: vertical or horizontal")
	placement := flag.String("placement", "", "Chart placement: sidebar or main")
	output := flag.String("output", "", "Chart output: text or svg")
	saveTable := flag.String("save-table", "", "Write the full frequency table to this file")
	noColor := flag.Bool("no-color", false, "Print the text chart without ANSI colours")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			cfg.Dataset = *dataset
		case "case-sensitive":
			cfg.CaseSensitive = *caseSensitive
		case "top":
			cfg.TopN = *top
		case "color":
			cfg.Color = *color
		case "orientation":
			cfg.Orientation = *orientation
		case "placement":
			cfg.Placement = *placement
		case "output":
			cfg.Output = *output
		}
	})
	if err := cfg.validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logFile, err := setupLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	statsPath := filepath.Join(cfg.LogDir, "stats.csv")
	ensureStatsCSVHeader(statsPath)

	analyzer := &Analyzer{
		source:      loader.New(cfg.DataDir),
		freqClasses: cfg.FreqClasses,
		statsPath:   statsPath,
	}
	if cfg.ExcludeFile != "" {
		hf := filter.NewHashtagFilter()
		if err := hf.LoadFromFile(cfg.ExcludeFile); err != nil {
			log.Fatalf("Failed to load exclude file: %v", err)
		}
		slog.Info("Loaded exclude list", "path", cfg.ExcludeFile, "hashtags", hf.GetFilteredCount())
		analyzer.exclude = hf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case "serve":
		err = serve(ctx, cfg, analyzer)
	default:
		err = runOnce(ctx, cfg, analyzer, *saveTable, !*noColor)
	}
	if err != nil {
		slog.Error("Hashtag analyzer failed", "mode", cfg.Mode, "error", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger creates the log directory if needed and returns a slog.Logger that writes to a file.
func setupLogger(logDir string) (*slog.Logger, *os.File, error) {
	if logDir == "" {
		return nil, nil, fmt.Errorf("logDir must be set in config; refusing to use a default")
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}
	logPath := filepath.Join(logDir, "analyzer.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(logFile, nil))
	return logger, logFile, nil
}

// runOnce analyzes the configured dataset and draws the chart.
func runOnce(ctx context.Context, cfg *Config, analyzer *Analyzer, saveTable string, ansi bool) error {
	analysis, chart, err := analyzer.Run(requestFromConfig(cfg))
	if err != nil {
		return err
	}

	if saveTable != "" {
		if err := analysis.Table.SaveToFile(saveTable); err != nil {
			return err
		}
		slog.Info("Saved frequency table", "path", saveTable, "distinct", analysis.Table.Len())
	}

	switch cfg.Output {
	case "svg":
		if err := render.SaveSVG(cfg.SVGPath, chart); err != nil {
			return err
		}
		fmt.Printf("Chart written to %s\n", cfg.SVGPath)
	default:
		if err := render.WriteText(os.Stdout, chart, ansi); err != nil {
			return err
		}
	}

	if analysis.Classes != nil {
		printClasses(analysis)
	}

	if cfg.Publish {
		mq, err := NewRabbitMQ(ctx, cfg.RabbitMQ())
		if err != nil {
			return err
		}
		defer mq.Close()
		if err := mq.PublishRender(ctx, chart); err != nil {
			return err
		}
		slog.Info("Published render request", "queue", cfg.MQRenderQueue, "bars", len(chart.Bars))
	}
	return nil
}

// printClasses prints the frequency class partition and the class of each
// ranked hashtag.
func printClasses(a *pipeline.Analysis) {
	fmt.Printf("\n--- Frequency classes ---\n")
	for i, c := range a.Classes.Classes {
		kind := "set"
		if c.Bloom {
			kind = "bloom"
		}
		fmt.Printf("Class %d: %d hashtags, %d occurrences (%s)\n", i+1, c.Tokens, c.Occurrences, kind)
	}
	for _, tc := range a.Top {
		fmt.Printf("%s -> class %d\n", tc.Token, a.Classes.ClassOf(tc.Token)+1)
	}
	fmt.Printf("-------------------------\n")
}

// serve consumes analysis requests until ctx is cancelled. Each message is
// analyzed on its own and answered with a render request.
func serve(ctx context.Context, cfg *Config, analyzer *Analyzer) error {
	mq, err := NewRabbitMQ(ctx, cfg.RabbitMQ())
	if err != nil {
		return err
	}
	defer mq.Close()

	msgs, err := mq.Consume(ctx)
	if err != nil {
		return err
	}
	slog.Info("Connected to RabbitMQ. Waiting for messages...", "queue", cfg.MQQueue, "render_queue", cfg.MQRenderQueue)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := analyzer.handleMessage(ctx, cfg, msg.Body, mq); err != nil {
				slog.Warn("Rejecting analysis request", "error", err, "body", string(msg.Body))
				msg.Nack(false, false)
				continue
			}
			msg.Ack(false)
		}
	}
}
