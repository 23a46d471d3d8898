package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dataflow-ng/statement-auditor/internal/audit"
)

// Config carries every knob the pipeline and its surfaces consume. It is
// built once at startup and passed in explicitly; the core never reads the
// environment itself.
type Config struct {
	// Model is the completion model identifier.
	Model string

	// Delimiter is the column separator the model is instructed to emit,
	// fixed per deployment. "pipe" or "tab".
	Delimiter audit.Delimiter

	// MaxPages bounds how many statement pages feed the excerpt.
	MaxPages int

	// MaxPromptChars truncates the excerpt embedded in the prompt.
	MaxPromptChars int

	// MinTextLength is the scanned-image rejection threshold.
	MinTextLength int

	// DefaultSalary is the declared salary used when a request omits one.
	DefaultSalary float64

	// LumpSumMultiplier and TurnoverMultiplier parameterize the risk rules.
	LumpSumMultiplier  float64
	TurnoverMultiplier float64
	TurnoverEnabled    bool

	// BindAddr is the HTTP API listen address.
	BindAddr string

	// QueueSize is the in-memory job queue buffer.
	QueueSize int
}

// Load builds a Config from environment variables with defaults.
func Load() (*Config, error) {
	c := &Config{
		Model:              getEnv("AUDITOR_MODEL", "gemini-2.5-flash"),
		MaxPages:           getInt("AUDITOR_MAX_PAGES", 4),
		MaxPromptChars:     getInt("AUDITOR_MAX_PROMPT_CHARS", 6000),
		MinTextLength:      getInt("AUDITOR_MIN_TEXT_LEN", 50),
		DefaultSalary:      getFloat("AUDITOR_DEFAULT_SALARY", 200000),
		LumpSumMultiplier:  getFloat("AUDITOR_LUMP_SUM_MULTIPLIER", 3),
		TurnoverMultiplier: getFloat("AUDITOR_TURNOVER_MULTIPLIER", 5),
		TurnoverEnabled:    getBool("AUDITOR_TURNOVER_ENABLED", true),
		BindAddr:           getEnv("AUDITOR_BIND_ADDR", "0.0.0.0:8080"),
		QueueSize:          getInt("AUDITOR_QUEUE_SIZE", 100),
	}

	switch getEnv("AUDITOR_DELIMITER", "pipe") {
	case "pipe":
		c.Delimiter = audit.DelimiterPipe
	case "tab":
		c.Delimiter = audit.DelimiterTab
	default:
		return nil, fmt.Errorf("AUDITOR_DELIMITER must be \"pipe\" or \"tab\"")
	}

	if c.MaxPages <= 0 {
		return nil, fmt.Errorf("AUDITOR_MAX_PAGES must be positive")
	}
	if c.MaxPromptChars <= 0 {
		return nil, fmt.Errorf("AUDITOR_MAX_PROMPT_CHARS must be positive")
	}
	if c.MinTextLength < 0 {
		return nil, fmt.Errorf("AUDITOR_MIN_TEXT_LEN cannot be negative")
	}
	if c.DefaultSalary < 0 {
		return nil, fmt.Errorf("AUDITOR_DEFAULT_SALARY cannot be negative")
	}
	if c.LumpSumMultiplier <= 0 {
		return nil, fmt.Errorf("AUDITOR_LUMP_SUM_MULTIPLIER must be positive")
	}
	if c.TurnoverMultiplier <= 0 {
		return nil, fmt.Errorf("AUDITOR_TURNOVER_MULTIPLIER must be positive")
	}
	if c.QueueSize <= 0 {
		return nil, fmt.Errorf("AUDITOR_QUEUE_SIZE must be positive")
	}

	return c, nil
}

// AuditorOptions maps the config onto pipeline options.
func (c *Config) AuditorOptions() audit.Options {
	return audit.Options{
		Delimiter:      c.Delimiter,
		MaxPromptChars: c.MaxPromptChars,
		MaxPages:       c.MaxPages,
		MinTextLength:  c.MinTextLength,
	}
}

// RiskPolicy maps the config onto a risk policy for the given salary.
// A non-positive salary falls back to the configured default.
func (c *Config) RiskPolicy(declaredSalary float64) audit.RiskPolicy {
	if declaredSalary <= 0 {
		declaredSalary = c.DefaultSalary
	}
	return audit.RiskPolicy{
		DeclaredSalary:     declaredSalary,
		LumpSumMultiplier:  c.LumpSumMultiplier,
		TurnoverMultiplier: c.TurnoverMultiplier,
		TurnoverEnabled:    c.TurnoverEnabled,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}
