package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "NEWSCANVAS_CONFIG"

	newsAPIKeyEnv        = "NEWS_API_KEY"
	xaiAPIKeyEnv         = "XAI_API_KEY"
	consumerKeyEnv       = "TWITTER_CONSUMER_KEY"
	consumerSecretEnv    = "TWITTER_CONSUMER_SECRET"
	accessTokenEnv       = "TWITTER_ACCESS_TOKEN"
	accessTokenSecretEnv = "TWITTER_ACCESS_TOKEN_SECRET"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	News      NewsConfig      `yaml:"news"`
	XAI       XAIConfig       `yaml:"xai"`
	Twitter   TwitterConfig   `yaml:"twitter"`
	History   HistoryConfig   `yaml:"history"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewsConfig wires the headline provider.
type NewsConfig struct {
	Endpoint string `yaml:"endpoint"`
	Country  string `yaml:"country"`
	Category string `yaml:"category"`
	APIKey   string `yaml:"apiKey"`
}

// XAIConfig defines how to contact the OpenAI-compatible generation API.
type XAIConfig struct {
	BaseURL    string `yaml:"baseUrl"`
	ChatModel  string `yaml:"chatModel"`
	ImageModel string `yaml:"imageModel"`
	APIKey     string `yaml:"apiKey"`
}

// TwitterConfig carries the OAuth 1.0a credential set and posting options.
type TwitterConfig struct {
	ConsumerKey       string `yaml:"consumerKey"`
	ConsumerSecret    string `yaml:"consumerSecret"`
	AccessToken       string `yaml:"accessToken"`
	AccessTokenSecret string `yaml:"accessTokenSecret"`
	PostSourceReply   bool   `yaml:"postSourceReply"`
}

// HistoryConfig locates the posted-articles document.
type HistoryConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retentionDays"`
}

// SchedulerConfig defines when daemon mode triggers a run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate reports every missing required credential at once. A non-nil
// result is a fatal startup condition.
func (c Config) Validate() error {
	var missing []string
	required := []struct {
		env   string
		value string
	}{
		{newsAPIKeyEnv, c.News.APIKey},
		{xaiAPIKeyEnv, c.XAI.APIKey},
		{consumerKeyEnv, c.Twitter.ConsumerKey},
		{consumerSecretEnv, c.Twitter.ConsumerSecret},
		{accessTokenEnv, c.Twitter.AccessToken},
		{accessTokenSecretEnv, c.Twitter.AccessTokenSecret},
	}
	for _, req := range required {
		if req.value == "" {
			missing = append(missing, req.env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.News.APIKey = v
	}

	if v := os.Getenv(xaiAPIKeyEnv); v != "" {
		c.XAI.APIKey = v
	}

	if v := os.Getenv(consumerKeyEnv); v != "" {
		c.Twitter.ConsumerKey = v
	}

	if v := os.Getenv(consumerSecretEnv); v != "" {
		c.Twitter.ConsumerSecret = v
	}

	if v := os.Getenv(accessTokenEnv); v != "" {
		c.Twitter.AccessToken = v
	}

	if v := os.Getenv(accessTokenSecretEnv); v != "" {
		c.Twitter.AccessTokenSecret = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.News.Endpoint != "" {
		base.News.Endpoint = override.News.Endpoint
	}
	if override.News.Country != "" {
		base.News.Country = override.News.Country
	}
	if override.News.Category != "" {
		base.News.Category = override.News.Category
	}
	if override.News.APIKey != "" {
		base.News.APIKey = override.News.APIKey
	}

	if override.XAI.BaseURL != "" {
		base.XAI.BaseURL = override.XAI.BaseURL
	}
	if override.XAI.ChatModel != "" {
		base.XAI.ChatModel = override.XAI.ChatModel
	}
	if override.XAI.ImageModel != "" {
		base.XAI.ImageModel = override.XAI.ImageModel
	}
	if override.XAI.APIKey != "" {
		base.XAI.APIKey = override.XAI.APIKey
	}

	if override.Twitter.ConsumerKey != "" {
		base.Twitter.ConsumerKey = override.Twitter.ConsumerKey
	}
	if override.Twitter.ConsumerSecret != "" {
		base.Twitter.ConsumerSecret = override.Twitter.ConsumerSecret
	}
	if override.Twitter.AccessToken != "" {
		base.Twitter.AccessToken = override.Twitter.AccessToken
	}
	if override.Twitter.AccessTokenSecret != "" {
		base.Twitter.AccessTokenSecret = override.Twitter.AccessTokenSecret
	}
	base.Twitter.PostSourceReply = base.Twitter.PostSourceReply || override.Twitter.PostSourceReply

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}
	if override.History.RetentionDays > 0 {
		base.History.RetentionDays = override.History.RetentionDays
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		News: NewsConfig{
			Endpoint: "https://newsapi.org/v2/top-headlines",
			Country:  "us",
			Category: "technology",
		},
		XAI: XAIConfig{
			BaseURL:    "https://api.x.ai/v1",
			ChatModel:  "grok-4-1-fast-reasoning",
			ImageModel: "grok-imagine-image-pro",
		},
		History: HistoryConfig{
			Path:          "posted_articles.json",
			RetentionDays: 7,
		},
		Scheduler: SchedulerConfig{CronExpression: "0 9 * * *", Timezone: defaultTimezone, location: tz},
	}
}
