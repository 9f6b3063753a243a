package libcfg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libworld"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile = "globe.yaml"
	EnvPrefix   = "GLOBE_"
)

type WindowConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	Compatibility bool   `yaml:"compatibility_profile"`
	Debug         bool   `yaml:"debug"`
	// ScrollUnit is how wheel offsets from the window system are interpreted: line or pixel.
	ScrollUnit    string `yaml:"scroll_unit,omitempty"`
}

type AssetsConfig struct {
	Root  string `yaml:"root"`
	Index string `yaml:"index,omitempty"`
}

type RemoteConfig struct {
	Addr      string `yaml:"addr"`
	QueueSize int    `yaml:"queue_size"`
}

func (r RemoteConfig) Enabled() bool {
	return r.Addr != ""
}

type SatelliteConfig struct {
	TLE    string `yaml:"tle"`
	Follow bool   `yaml:"follow"`
}

type Config struct {
	Window     WindowConfig      `yaml:"window"`
	Navigation libnav.Config     `yaml:"navigation"`
	World      libworld.Settings `yaml:"world"`
	Places     []libworld.Place  `yaml:"places,omitempty"`
	Assets     AssetsConfig      `yaml:"assets"`
	Remote     RemoteConfig      `yaml:"remote"`
	Satellite  SatelliteConfig   `yaml:"satellite"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "Globe",
		},
		Navigation: libnav.DefaultConfig(),
		World:      libworld.DefaultSettings(),
		Assets: AssetsConfig{
			Root: "assets",
		},
		Remote: RemoteConfig{
			QueueSize: 16,
		},
	}
}

// Load reads a YAML file on top of the defaults. A missing file is not an error
// unless required is set.
func Load(filename string, required bool) (Config, error) {
	cfg := Default()
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not open config file %q: %w", filename, err)
	}
	defer f.Close()

	if err = cfg.Decode(f); err != nil {
		return cfg, fmt.Errorf("could not load config file %q: %w", filename, err)
	}
	return cfg, nil
}

// Decode overlays YAML onto c. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return enc.Close()
}

func (c Config) String() string {
	buf := bytes.Buffer{}
	if err := c.Encode(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

// LoadDotEnv loads KEY=VALUE pairs into the process environment. Variables that are
// already set win, missing files are skipped.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load env file %q: %w", name, err)
		}
	}
	return nil
}

type envVar struct {
	key   string
	apply func(c *Config, v string) error
}

var envVars = []envVar{
	{"ASSETS", func(c *Config, v string) error { c.Assets.Root = v; return nil }},
	{"ASSET_INDEX", func(c *Config, v string) error { c.Assets.Index = v; return nil }},
	{"REMOTE_ADDR", func(c *Config, v string) error { c.Remote.Addr = v; return nil }},
	{"REMOTE_QUEUE", intVar(func(c *Config) *int { return &c.Remote.QueueSize })},
	{"TLE", func(c *Config, v string) error { c.Satellite.TLE = v; return nil }},
	{"FOLLOW_SATELLITE", boolVar(func(c *Config) *bool { return &c.Satellite.Follow })},
	{"WIDTH", intVar(func(c *Config) *int { return &c.Window.Width })},
	{"HEIGHT", intVar(func(c *Config) *int { return &c.Window.Height })},
	{"DEBUG_GL", boolVar(func(c *Config) *bool { return &c.Window.Debug })},
	{"SCROLL_UNIT", func(c *Config, v string) error { c.Window.ScrollUnit = v; return nil }},
	{"MIN_RADIUS", floatVar(func(c *Config) *float32 { return &c.Navigation.MinRadius })},
	{"MAX_RADIUS", floatVar(func(c *Config) *float32 { return &c.Navigation.MaxRadius })},
	{"DRAG_SENSITIVITY", floatVar(func(c *Config) *float32 { return &c.Navigation.DragSensitivity })},
	{"FLYTO_SPEED", floatVar(func(c *Config) *float32 { return &c.Navigation.FlyToSpeed })},
	{"IGNORE_LINE_SCROLL", boolVar(func(c *Config) *bool { return &c.Navigation.IgnoreLineScroll })},
	{"YAW_AXIS", func(c *Config, v string) error { c.Navigation.YawAxis = libnav.YawAxis(v); return nil }},
	{"FLYTO_TERMINATION", func(c *Config, v string) error { c.Navigation.FlyToTermination = libnav.Termination(v); return nil }},
	{"CYCLE_DURATION", cycleDurationVar},
}

// cycleDurationVar takes a Go duration or a bare number of milliseconds, the unit
// of the cycle slider.
func cycleDurationVar(c *Config, v string) error {
	if ms, err := strconv.ParseInt(v, 10, 32); err == nil {
		c.World.CycleDurationMs = int32(ms)
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("expected milliseconds or a duration like 250ms: %w", err)
	}
	c.World.CycleDurationMs = int32(d.Milliseconds())
	return nil
}

func intVar(field func(c *Config) *int) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = i
		return nil
	}
}

func floatVar(field func(c *Config) *float32) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		*field(c) = float32(f)
		return nil
	}
}

func boolVar(field func(c *Config) *bool) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// ApplyEnv overrides fields from GLOBE_* variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, ev := range envVars {
		v, ok := lookup(EnvPrefix + ev.key)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if err := ev.apply(c, v); err != nil {
			return fmt.Errorf("could not apply %s%s=%q: %w", EnvPrefix, ev.key, v, err)
		}
	}
	return nil
}

// EnvKeys lists the recognised environment variables.
func EnvKeys() []string {
	keys := make([]string, len(envVars))
	for i, ev := range envVars {
		keys[i] = EnvPrefix + ev.key
	}
	return keys
}

// Validate checks every section and clamps the world settings into range.
func (c *Config) Validate() error {
	if err := c.Navigation.Validate(); err != nil {
		return fmt.Errorf("navigation: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := libnav.ParseScrollUnit(c.Window.ScrollUnit); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if c.Remote.QueueSize <= 0 {
		return fmt.Errorf("remote: queue_size must be positive, got %d", c.Remote.QueueSize)
	}
	for _, p := range c.Places {
		if !p.Coordinate.Valid() {
			return fmt.Errorf("places: %q has invalid coordinate %v", p.Name, p.Coordinate)
		}
	}
	c.World.Clamp()
	return nil
}

// PlaceSet returns the built in presets extended by the configured places.
func (c *Config) PlaceSet() (*libworld.Places, error) {
	places := libworld.DefaultPlaces()
	for _, p := range c.Places {
		if err := places.Add(p); err != nil {
			return nil, fmt.Errorf("could not add place: %w", err)
		}
	}
	return places, nil
}
