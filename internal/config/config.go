package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads and writes as "4h30m" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

type Config struct {
	// CalendarName is the dedicated calendar the companion events
	// live in, never scanned as a source.
	CalendarName string `yaml:"calendar_name"`

	// Transport is the preferred mode for route lookups: driving,
	// walking, bicycling or transit.
	Transport string `yaml:"transport"`

	// LocationStaleness is how long a last known location is trusted
	// as the user's current origin.
	LocationStaleness Duration `yaml:"location_staleness"`

	// MaxCommute is the longest commute worth a companion event.
	MaxCommute Duration `yaml:"max_commute"`

	// CacheTTL bounds both the route cache and the per-event records.
	CacheTTL Duration `yaml:"cache_ttl"`

	// Cron, when set, keeps the process running and replans on the
	// given schedule (e.g. "0 6 * * *"). Empty means run once.
	Cron string `yaml:"cron,omitempty"`

	// SkipCalendars lists calendar names or ids excluded from the scan.
	SkipCalendars []string `yaml:"skip_calendars,omitempty"`

	Google struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"google"`

	Maps struct {
		APIKey     string `yaml:"api_key,omitempty"`
		APIKeyFile string `yaml:"api_key_file,omitempty"`
	} `yaml:"maps"`
}

func Default() *Config {
	cfg := &Config{
		CalendarName:      "Travel time",
		Transport:         "driving",
		LocationStaleness: Duration(4 * time.Hour),
		MaxCommute:        Duration(5 * time.Hour),
		CacheTTL:          Duration(30 * 24 * time.Hour),
	}
	cfg.Google.CredentialsFile = "credentials.json"
	cfg.Maps.APIKeyFile = "key.txt"
	return cfg
}

func (c *Config) Normalize() {
	d := Default()
	if c.CalendarName == "" {
		c.CalendarName = d.CalendarName
	}
	if c.Transport == "" {
		c.Transport = d.Transport
	}
	if c.LocationStaleness <= 0 {
		c.LocationStaleness = d.LocationStaleness
	}
	if c.MaxCommute <= 0 {
		c.MaxCommute = d.MaxCommute
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	if c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = d.Google.CredentialsFile
	}
	if c.Maps.APIKey == "" && c.Maps.APIKeyFile == "" {
		c.Maps.APIKeyFile = d.Maps.APIKeyFile
	}
}

// Load reads the YAML config at path. A missing file is not an error:
// it returns the defaults, so a flags-only setup keeps working.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
