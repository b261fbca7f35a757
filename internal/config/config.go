// Package config loads the formbuilder CLI settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/idgen"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/recovery"
)

// ID strategies understood by IDStrategy.
const (
	IDStrategyTimestamp = "timestamp"
	IDStrategyUUID      = "uuid"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Duration is a time.Duration that reads Go duration strings ("10s").
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: gracePeriod: %v", ErrInvalidConfig, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Defaults holds values seeded into new forms.
type Defaults struct {
	FormSettings model.FormSettings `yaml:"formSettings"`
}

// Config is the on-disk CLI configuration.
type Config struct {
	HistoryLimit int      `yaml:"historyLimit"`
	GracePeriod  Duration `yaml:"gracePeriod"`
	IDStrategy   string   `yaml:"idStrategy"`
	Defaults     Defaults `yaml:"defaults"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HistoryLimit: history.DefaultLimit,
		GracePeriod:  Duration(recovery.DefaultGracePeriod),
		IDStrategy:   IDStrategyTimestamp,
		Defaults: Defaults{
			FormSettings: model.DefaultFormSettings(),
		},
	}
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports out-of-range values.
func (c Config) Validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: historyLimit must be positive, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	if c.GracePeriod <= 0 {
		return fmt.Errorf("%w: gracePeriod must be positive", ErrInvalidConfig)
	}
	switch c.IDStrategy {
	case IDStrategyTimestamp, IDStrategyUUID:
	default:
		return fmt.Errorf("%w: unknown idStrategy %q", ErrInvalidConfig, c.IDStrategy)
	}
	if th := c.Defaults.FormSettings.Theme; th != "" && !th.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, th)
	}
	return nil
}

// BuilderOptions translates the configuration into builder options.
func (c Config) BuilderOptions(now func() time.Time) []builder.Option {
	return []builder.Option{
		builder.WithHistoryLimit(c.HistoryLimit),
		builder.WithGracePeriod(time.Duration(c.GracePeriod)),
		builder.WithIDGenerator(idgen.ForStrategy(c.IDStrategy, now)),
		builder.WithInitialSettings(c.Defaults.FormSettings),
	}
}
