package main

import (
	"errors"
	"fmt"
	"os"

	"hashtag-analyzer/src/loader"
	"hashtag-analyzer/src/pipeline"
	"hashtag-analyzer/src/render"

	"gopkg.in/yaml.v3"
)

const (
	minTopN = 5
	maxTopN = 20
)

// Config struct for YAML config file
type Config struct {
	Mode          string `yaml:"mode"`
	DataDir       string `yaml:"data_dir"`
	Dataset       string `yaml:"dataset"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	TopN          int    `yaml:"top_n"`
	Color         string `yaml:"color"`
	Orientation   string `yaml:"orientation"`
	Placement     string `yaml:"placement"`
	Output        string `yaml:"output"`
	SVGPath       string `yaml:"svg_path"`
	ExcludeFile   string `yaml:"exclude_file"`
	FreqClasses   int    `yaml:"freq_classes"`
	LogDir        string `yaml:"log_dir"`
	MQHost        string `yaml:"mq_host"`
	MQPort        int    `yaml:"mq_port"`
	MQUser        string `yaml:"mq_user"`
	MQPassword    string `yaml:"mq_password"`
	MQQueue       string `yaml:"mq_queue"`
	MQRenderQueue string `yaml:"mq_render_queue"`
	Publish       bool   `yaml:"publish"`
}

// loadConfig loads the YAML config file into a Config struct, fills in
// defaults and validates the result.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "once"
	}
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.Dataset == "" {
		c.Dataset = loader.Datasets[0]
	}
	if c.TopN == 0 {
		c.TopN = pipeline.DefaultTopN
	}
	if c.Color == "" {
		c.Color = render.DefaultColor
	}
	if c.Orientation == "" {
		c.Orientation = string(render.Vertical)
	}
	if c.Placement == "" {
		c.Placement = string(render.Sidebar)
	}
	if c.Output == "" {
		c.Output = "text"
	}
	if c.SVGPath == "" {
		c.SVGPath = "hashtags.svg"
	}
	if c.MQPort == 0 {
		c.MQPort = 5672
	}
	if c.MQUser == "" {
		c.MQUser = "guest"
	}
	if c.MQPassword == "" {
		c.MQPassword = "guest"
	}
	if c.MQQueue == "" {
		c.MQQueue = "hashtag_requests"
	}
	if c.MQRenderQueue == "" {
		c.MQRenderQueue = "hashtag_charts"
	}
}

func (c *Config) validate() error {
	if c.LogDir == "" {
		return errors.New("'log_dir' must be defined in the config file and cannot be empty")
	}
	if c.Mode != "once" && c.Mode != "serve" {
		return fmt.Errorf("unknown mode %q: want once or serve", c.Mode)
	}
	if !loader.IsAllowed(c.Dataset) {
		return fmt.Errorf("dataset %q is not one of %v", c.Dataset, loader.Datasets)
	}
	if c.TopN < minTopN || c.TopN > maxTopN {
		return fmt.Errorf("top_n must be between %d and %d, got %d", minTopN, maxTopN, c.TopN)
	}
	if err := c.Style().Validate(); err != nil {
		return err
	}
	if c.Output != "text" && c.Output != "svg" {
		return fmt.Errorf("unknown output %q: want text or svg", c.Output)
	}
	if c.FreqClasses < 0 {
		return fmt.Errorf("freq_classes must not be negative, got %d", c.FreqClasses)
	}
	if c.Mode == "serve" || c.Publish {
		if err := c.RabbitMQ().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Style returns the display parameters of the config.
func (c *Config) Style() render.Style {
	return render.Style{
		Color:       c.Color,
		Orientation: render.Orientation(c.Orientation),
		Placement:   render.Placement(c.Placement),
	}.Normalized()
}

// RabbitMQ returns the broker settings of the config.
func (c *Config) RabbitMQ() RabbitMQConfig {
	return RabbitMQConfig{
		Host:        c.MQHost,
		Port:        c.MQPort,
		Username:    c.MQUser,
		Password:    c.MQPassword,
		Queue:       c.MQQueue,
		RenderQueue: c.MQRenderQueue,
	}
}
