package afis

import (
	"runtime"

	"github.com/jtejido/afislr/internal/alignment"
	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/mcuadros/go-defaults"
)

// Config holds the 1:1 and 1:N matching settings.
type Config struct {
	PositionTolerance  float64 `toml:"position_tolerance" yaml:"positionTolerance" json:"positionTolerance" default:"15"`
	AngleTolerance     float64 `toml:"angle_tolerance" yaml:"angleTolerance" json:"angleTolerance" default:"0.5235987755982988"`
	MinSimilarityScore float64 `toml:"min_similarity_score" yaml:"minSimilarityScore" json:"minSimilarityScore" default:"0.3"`
	MinMatchedMinutiae int     `toml:"min_matched_minutiae" yaml:"minMatchedMinutiae" json:"minMatchedMinutiae" default:"3"`

	UseTypeWeighting           bool `toml:"use_type_weighting" yaml:"useTypeWeighting" json:"useTypeWeighting" default:"true"`
	UseQualityWeighting        bool `toml:"use_quality_weighting" yaml:"useQualityWeighting" json:"useQualityWeighting" default:"true"`
	PerformGeometricValidation bool `toml:"perform_geometric_validation" yaml:"performGeometricValidation" json:"performGeometricValidation" default:"true"`

	// MaxResults caps identify output when the caller passes 0.
	MaxResults int `toml:"max_results" yaml:"maxResults" json:"maxResults" default:"10"`
	// Workers bounds concurrent verifications; 0 means runtime.NumCPU().
	Workers int `toml:"workers" yaml:"workers" json:"workers"`

	Alignment alignment.Config `toml:"alignment" yaml:"alignment" json:"alignment"`
}

// DefaultConfig returns the AFIS defaults.
func DefaultConfig() Config {
	var c Config
	defaults.SetDefaults(&c)
	c.Alignment = alignment.DefaultConfig()
	return c
}

func (c Config) matchConfig() correspondence.Config {
	return correspondence.Config{
		PositionTolerance: c.PositionTolerance,
		AngleTolerance:    c.AngleTolerance,
	}
}

func (c Config) scorer() similarity.ScoreFunc {
	return similarity.Options{UseTypeWeighting: c.UseTypeWeighting}.Func()
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
