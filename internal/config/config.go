package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the whole runtime configuration: logging, stepping parameters,
// the static arena geometry, the bodies to spawn and the snapshot server.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Physics PhysicsConfig `yaml:"physics"`
	Arena   ArenaConfig   `yaml:"arena"`
	Bodies  []BodyConfig  `yaml:"bodies"`
	Server  ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type PhysicsConfig struct {
	FPS            int          `yaml:"fps"`
	SubSteps       int          `yaml:"substeps"`
	Gravity        physics.Vec2 `yaml:"gravity"`
	Damping        float64      `yaml:"damping"`
	CheckFinite    bool         `yaml:"check_finite"`
	BodyCollisions bool         `yaml:"body_collisions"`
	ReportForces   bool         `yaml:"report_forces"`
}

type ArenaConfig struct {
	Bounds  physics.Rect     `yaml:"bounds"`
	Circles []physics.Circle `yaml:"circles"`
	Rects   []physics.Rect   `yaml:"rects"`
}

// BodyConfig is a ring spec with its spoke mode spelled as a string.
type BodyConfig struct {
	physics.RingSpec `yaml:",inline"`
	Shape            string `yaml:"shape"`
}

// UnmarshalYAML fills the fields a body entry leaves out from the default ring.
func (b *BodyConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain BodyConfig
	def := physics.DefaultRingSpec("", physics.Vec2{}, 0)
	p := plain{RingSpec: def, Shape: def.Shape.String()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*b = BodyConfig(p)
	return nil
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	Mode         string        `yaml:"mode"`
	SendBuffer   int           `yaml:"send_buffer"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CommandQueue int           `yaml:"command_queue"`
}

func Default() *Config {
	left := physics.DefaultRingSpec("left", physics.V(300, 150), 40)
	right := physics.DefaultRingSpec("right", physics.V(500, 150), 40)
	right.Braced = true

	return &Config{
		Log: LogConfig{Level: "info", Encoding: "json"},
		Physics: PhysicsConfig{
			FPS:            60,
			SubSteps:       physics.DefaultSubSteps,
			Gravity:        physics.V(0, 500),
			CheckFinite:    true,
			BodyCollisions: true,
		},
		Arena: ArenaConfig{
			Bounds:  physics.Rect{W: 800, H: 600},
			Circles: []physics.Circle{{Center: physics.V(400, 420), Radius: 60}},
		},
		Bodies: []BodyConfig{
			{RingSpec: left, Shape: left.Shape.String()},
			{RingSpec: right, Shape: right.Shape.String()},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Mode:         "release",
			SendBuffer:   8,
			WriteTimeout: 5 * time.Second,
			CommandQueue: 64,
		},
	}
}

// Load reads an optional .env file, overlays the YAML file at path (if any)
// on the defaults, applies SOFTBODY_* environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Log.Level = getEnv("SOFTBODY_LOG_LEVEL", c.Log.Level)
	c.Log.Encoding = getEnv("SOFTBODY_LOG_ENCODING", c.Log.Encoding)
	c.Server.Addr = getEnv("SOFTBODY_ADDR", c.Server.Addr)
	c.Server.Mode = getEnv("SOFTBODY_GIN_MODE", c.Server.Mode)
	c.Physics.FPS = getEnvInt("SOFTBODY_FPS", c.Physics.FPS)
	c.Physics.SubSteps = getEnvInt("SOFTBODY_SUBSTEPS", c.Physics.SubSteps)
	c.Physics.CheckFinite = getEnvBool("SOFTBODY_CHECK_FINITE", c.Physics.CheckFinite)
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Physics.FPS < 1 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Physics.FPS)
	}
	if err := c.ArenaConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate body name %q", ErrInvalidConfig, b.Name)
		}
		seen[b.Name] = struct{}{}
		if _, err := b.Spec(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidConfig)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: unknown server mode %q", ErrInvalidConfig, c.Server.Mode)
	}
	if c.Server.SendBuffer < 1 || c.Server.CommandQueue < 1 {
		return fmt.Errorf("%w: server buffers must be positive", ErrInvalidConfig)
	}
	return nil
}

// FrameDt is the simulated time of one frame.
func (c *Config) FrameDt() float64 { return 1 / float64(c.Physics.FPS) }

// FrameInterval is the wall-clock period of one frame.
func (c *Config) FrameInterval() time.Duration { return time.Second / time.Duration(c.Physics.FPS) }

func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

func (c *Config) ArenaConfig() physics.ArenaConfig {
	return physics.ArenaConfig{
		Bounds:         c.Arena.Bounds,
		Circles:        c.Arena.Circles,
		Rects:          c.Arena.Rects,
		Gravity:        c.Physics.Gravity,
		Damping:        c.Physics.Damping,
		SubSteps:       c.Physics.SubSteps,
		CheckFinite:    c.Physics.CheckFinite,
		BodyCollisions: c.Physics.BodyCollisions,
		ReportForces:   c.Physics.ReportForces,
	}
}

// Spec resolves the shape name and validates the ring.
func (b BodyConfig) Spec() (physics.RingSpec, error) {
	spec := b.RingSpec
	if b.Shape != "" {
		mode, err := physics.ParseMode(b.Shape)
		if err != nil {
			return spec, fmt.Errorf("body %q: %w", b.Name, err)
		}
		spec.Shape = mode
	}
	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
