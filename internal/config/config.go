// Package config loads the afisd configuration file.
//
// Defaults are applied first, then the file (TOML or YAML, chosen by
// extension) overrides whatever it names, then the result is validated.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/logging"
	"github.com/jtejido/afislr/internal/lr"
	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Server configures the HTTP listener.
type Server struct {
	Addr string `toml:"addr" yaml:"addr" json:"addr" default:":9090"`
	// BodyLimit is the largest accepted request body in bytes.
	BodyLimit int `toml:"body_limit" yaml:"bodyLimit" json:"bodyLimit" default:"4194304"`
	// MaxJobs bounds the finished async identify jobs kept for polling.
	MaxJobs int `toml:"max_jobs" yaml:"maxJobs" json:"maxJobs" default:"1024"`
}

// Config is the whole file.
type Config struct {
	Server     Server              `toml:"server" yaml:"server" json:"server"`
	Log        logging.Config      `toml:"log" yaml:"log" json:"log"`
	AFIS       afis.Config         `toml:"afis" yaml:"afis" json:"afis"`
	Fragment   afis.FragmentConfig `toml:"fragment" yaml:"fragment" json:"fragment"`
	Likelihood lr.Config           `toml:"likelihood" yaml:"likelihood" json:"likelihood"`
	Empirical  lr.EmpiricalConfig  `toml:"empirical" yaml:"empirical" json:"empirical"`
}

// Default returns a configuration with every section at its defaults.
func Default() Config {
	var server Server
	defaults.SetDefaults(&server)
	return Config{
		Server:     server,
		Log:        logging.DefaultConfig(),
		AFIS:       afis.DefaultConfig(),
		Fragment:   afis.DefaultFragmentConfig(),
		Likelihood: lr.DefaultConfig(),
		Empirical:  lr.DefaultEmpiricalConfig(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config YAML: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension %q", ext)
	}

	return cfg, cfg.Validate()
}

func invalid(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

// Validate checks ranges the matchers rely on.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return invalid("server.addr", "is required")
	}
	if c.Server.BodyLimit <= 0 {
		return invalid("server.body_limit", "must be positive")
	}
	if c.Server.MaxJobs <= 0 {
		return invalid("server.max_jobs", "must be positive")
	}

	if err := validateGates("afis", c.AFIS.PositionTolerance, c.AFIS.AngleTolerance); err != nil {
		return err
	}
	if s := c.AFIS.MinSimilarityScore; s < 0 || s > 1 {
		return invalid("afis.min_similarity_score", "must be in [0, 1], got %g", s)
	}
	if c.AFIS.MinMatchedMinutiae < 0 {
		return invalid("afis.min_matched_minutiae", "must not be negative")
	}
	if c.AFIS.MaxResults < 0 {
		return invalid("afis.max_results", "must not be negative")
	}
	if c.AFIS.Workers < 0 {
		return invalid("afis.workers", "must not be negative")
	}
	if r := c.AFIS.Alignment.MinInlierRatio; r < 0 || r > 1 {
		return invalid("afis.alignment.min_inlier_ratio", "must be in [0, 1], got %g", r)
	}

	if err := validateMatch("fragment.match", c.Fragment.Match); err != nil {
		return err
	}
	if err := validateMatch("empirical.match", c.Empirical.Match); err != nil {
		return err
	}

	if c.Likelihood.DistortionStdDev <= 0 {
		return invalid("likelihood.distortion_std_dev", "must be positive")
	}
	if c.Likelihood.RarityFactor < 0 {
		return invalid("likelihood.rarity_factor", "must not be negative")
	}
	if r := c.Likelihood.Rarity; r < 0 || r > 1 {
		return invalid("likelihood.rarity", "must be in [0, 1], got %g", r)
	}
	return nil
}

func validateMatch(section string, m correspondence.Config) error {
	return validateGates(section, m.PositionTolerance, m.AngleTolerance)
}

func validateGates(section string, pos, angle float64) error {
	if pos <= 0 {
		return invalid(section+".position_tolerance", "must be positive")
	}
	if angle <= 0 || angle > math.Pi {
		return invalid(section+".angle_tolerance", "must be in (0, π], got %g", angle)
	}
	return nil
}
