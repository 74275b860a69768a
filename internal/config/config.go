package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultURL = "https://en.wikipedia.org/wiki/List_of_parties_to_the_United_Nations_Framework_Convention_on_Climate_Change"

	TransportHTTP  = "http"
	TransportColly = "colly"

	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

type FetchConfig struct {
	URL           string `yaml:"url"`
	Transport     string `yaml:"transport"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	UserAgent     string `yaml:"user_agent"`
	RespectRobots bool   `yaml:"respect_robots"`
}

// TableConfig picks the table. Index is always applied; CSS and Caption
// narrow the candidate set before the index is taken.
type TableConfig struct {
	Index   int    `yaml:"index"`
	CSS     string `yaml:"css"`
	Caption string `yaml:"caption"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type SpiderConfig struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Table  TableConfig  `yaml:"table"`
	Output OutputConfig `yaml:"output"`
}

func Default() *SpiderConfig {
	return &SpiderConfig{
		Fetch: FetchConfig{
			URL:       DefaultURL,
			Transport: TransportHTTP,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
	}
}

func LoadConfig(path string) (*SpiderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to Default
// when the file does not exist.
func LoadConfigOrDefault(path string) (*SpiderConfig, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *SpiderConfig) Validate() error {
	if c.Fetch.URL == "" {
		return fmt.Errorf("fetch.url is required")
	}
	switch c.Fetch.Transport {
	case TransportHTTP, TransportColly:
	default:
		return fmt.Errorf("unknown fetch.transport %q", c.Fetch.Transport)
	}
	if c.Fetch.TimeoutSec < 0 {
		return fmt.Errorf("fetch.timeout_sec must not be negative")
	}
	if c.Table.Index < 0 {
		return fmt.Errorf("table.index must not be negative")
	}
	if c.Table.CSS != "" && c.Table.Caption != "" {
		return fmt.Errorf("table.css and table.caption are mutually exclusive")
	}
	switch c.Output.Format {
	case FormatTable, FormatCSV, FormatMarkdown:
	default:
		return fmt.Errorf("unknown output.format %q", c.Output.Format)
	}
	return nil
}
