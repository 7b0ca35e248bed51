package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFileTypes is the extension allow-list used when none is configured.
const DefaultFileTypes = "jpg,jpeg,png,gif,wav,wmv,mp3,flac,mkv,avi,flv,swf,mp4,webm,pdf,mobi,zip,rar"

// DefaultUserAgent is the browser identity sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; WOW64; rv:56.0) Gecko/20100101 Firefox/56.0"

// Config represents the application configuration. Values come from an
// optional YAML file, then environment variables, then defaults; command line
// flags are applied on top by the caller.
type Config struct {
	// Environment selects the log encoding (development or production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Scraper holds the defaults of the scrape command
	Scraper struct {
		// UserAgent is the identity header sent with the page fetch and every download
		UserAgent string `env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; WOW64; rv:56.0) Gecko/20100101 Firefox/56.0" yaml:"userAgent"` //nolint: lll
		// FileTypes is the comma-separated extension allow-list; "*" disables filtering
		FileTypes string `env:"SCRAPER_FILE_TYPES" env-default:"jpg,jpeg,png,gif,wav,wmv,mp3,flac,mkv,avi,flv,swf,mp4,webm,pdf,mobi,zip,rar" yaml:"fileTypes"` //nolint: lll
		// WaitTime is the pause after each successful download
		WaitTime time.Duration `env:"SCRAPER_WAIT_TIME" env-default:"1s" yaml:"waitTime"`
		// Concurrency is the number of downloads allowed in flight
		Concurrency int `env:"SCRAPER_CONCURRENCY" env-default:"1" yaml:"concurrency"`
		// HTTPTimeout bounds every request; zero means no timeout
		HTTPTimeout time.Duration `env:"SCRAPER_HTTP_TIMEOUT" env-default:"0s" yaml:"httpTimeout"`
	} `yaml:"scraper"`

	// Output holds optional run artifacts
	Output struct {
		// ReportPath is where the JSON run report is written; empty disables it
		ReportPath string `env:"SCRAPER_REPORT_PATH" yaml:"reportPath"`
		// MetricsPath is where the Prometheus textfile is written; empty disables it
		MetricsPath string `env:"SCRAPER_METRICS_PATH" yaml:"metricsPath"`
	} `yaml:"output"`
}

// Load reads the configuration. An empty configPath reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
