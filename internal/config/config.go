package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/doodlepad/doodlepad/internal/document"
)

type Config struct {
	Port            int        `envconfig:"PORT" default:"8080"`
	StaticDir       string     `envconfig:"STATIC_DIR" default:"./web"`
	CanvasWidth     int        `envconfig:"CANVAS_WIDTH" default:"256"`
	CanvasHeight    int        `envconfig:"CANVAS_HEIGHT" default:"256"`
	ExportScale     float64    `envconfig:"EXPORT_SCALE" default:"4"`
	MaxExportScale  float64    `envconfig:"MAX_EXPORT_SCALE" default:"16"`
	StickerFontPath string     `envconfig:"STICKER_FONT_PATH"`
	AllowedOrigins  string     `envconfig:"ALLOWED_ORIGINS" default:"localhost:8080"`
	LogLevel        slog.Level `envconfig:"LOG_LEVEL" default:"info"`
	ClearKeepsRedo  bool       `envconfig:"CLEAR_KEEPS_REDO" default:"false"`

	WSWriteTimeout time.Duration `envconfig:"WS_WRITE_TIMEOUT" default:"10s"`
	WSPingInterval time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 ||
		c.CanvasWidth > document.MaxSize || c.CanvasHeight > document.MaxSize {
		return fmt.Errorf("canvas size must be within 1..%d: %dx%d", document.MaxSize, c.CanvasWidth, c.CanvasHeight)
	}
	if !(c.ExportScale > 0) {
		return fmt.Errorf("EXPORT_SCALE must be positive: %v", c.ExportScale)
	}
	if c.MaxExportScale < c.ExportScale {
		return fmt.Errorf("MAX_EXPORT_SCALE %v is below EXPORT_SCALE %v", c.MaxExportScale, c.ExportScale)
	}
	if c.WSWriteTimeout <= 0 || c.WSPingInterval <= 0 {
		return fmt.Errorf("websocket timings must be positive: write %v, ping %v", c.WSWriteTimeout, c.WSPingInterval)
	}
	return nil
}

// Origins splits AllowedOrigins into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
