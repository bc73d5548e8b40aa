package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	GenAI       GenAIConfig       `yaml:"genai"`
	Outline     OutlineConfig     `yaml:"outline"`
	Script      ScriptConfig      `yaml:"script"`
	Render      RenderConfig      `yaml:"render"`
	Entitlement EntitlementConfig `yaml:"entitlement"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
	Mode         string   `yaml:"mode"`
}

type GenAIConfig struct {
	Model           string `yaml:"model"`
	Endpoint        string `yaml:"endpoint"`
	TimeoutSec      int    `yaml:"timeout_sec"`
	MaxRetries      int    `yaml:"max_retries"`
	RetryBackoffSec int    `yaml:"retry_backoff_sec"`
}

type OutlineConfig struct {
	MaxTopics      int `yaml:"max_topics"`
	ContentPreview int `yaml:"content_preview_chars"`
	MinTitleLength int `yaml:"min_title_length"`
}

type ScriptConfig struct {
	ContentPreview    int `yaml:"content_preview_chars"`
	TargetDurationMin int `yaml:"target_duration_min"`
	TargetDurationMax int `yaml:"target_duration_max"`
}

type RenderConfig struct {
	SimulatedDelayMs int    `yaml:"simulated_delay_ms"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	DemoURL          string `yaml:"demo_url"`
	DemoThumbnail    string `yaml:"demo_thumbnail"`
	DemoDurationSec  int    `yaml:"demo_duration_sec"`
	PromptLimit      int    `yaml:"prompt_limit_chars"`
}

type EntitlementConfig struct {
	FreeVideoLimit int `yaml:"free_video_limit"`
}

// Load reads a yaml config file and returns a Config with defaults applied
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a Config usable without a config file on disk
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.GenAI.Model == "" {
		c.GenAI.Model = "gemini-2.5-flash"
	}
	if c.GenAI.Endpoint == "" {
		c.GenAI.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.GenAI.TimeoutSec <= 0 {
		c.GenAI.TimeoutSec = 60
	}
	if c.GenAI.MaxRetries <= 0 {
		c.GenAI.MaxRetries = 3
	}
	if c.GenAI.RetryBackoffSec <= 0 {
		c.GenAI.RetryBackoffSec = 3
	}
	if c.Outline.MaxTopics <= 0 {
		c.Outline.MaxTopics = 5
	}
	if c.Outline.ContentPreview <= 0 {
		c.Outline.ContentPreview = 2000
	}
	if c.Outline.MinTitleLength <= 0 {
		c.Outline.MinTitleLength = 4
	}
	if c.Script.ContentPreview <= 0 {
		c.Script.ContentPreview = 1000
	}
	if c.Script.TargetDurationMin <= 0 {
		c.Script.TargetDurationMin = 2
	}
	if c.Script.TargetDurationMax <= 0 {
		c.Script.TargetDurationMax = 3
	}
	if c.Render.SimulatedDelayMs <= 0 {
		c.Render.SimulatedDelayMs = 5000
	}
	if c.Render.TimeoutSec <= 0 {
		c.Render.TimeoutSec = 600
	}
	if c.Render.DemoURL == "" {
		c.Render.DemoURL = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
	}
	if c.Render.DemoThumbnail == "" {
		c.Render.DemoThumbnail = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg"
	}
	if c.Render.DemoDurationSec <= 0 {
		c.Render.DemoDurationSec = 180
	}
	if c.Render.PromptLimit <= 0 {
		c.Render.PromptLimit = 500
	}
	if c.Entitlement.FreeVideoLimit <= 0 {
		c.Entitlement.FreeVideoLimit = 1
	}
}
