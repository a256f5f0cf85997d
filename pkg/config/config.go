// Package config loads the file-based configuration for a ccgparse
// deployment: the per-parse astar.Config tunables plus the batch, logging,
// and metrics knobs layered around them. Follows the loadTOML convention
// used elsewhere in this codebase: decode into an unexported shape close
// to the file, validate fail-fast, then translate into the typed structs
// the rest of the module consumes.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nlpstack/ccgparse/pkg/astar"
)

// File is the top-level shape of a ccgparse TOML configuration file.
type File struct {
	Parse ParseSection `toml:"parse"`
	Batch BatchSection `toml:"batch"`
	Log   LogSection   `toml:"log"`
}

// ParseSection mirrors astar.Config, using the same field names and
// defaults.
type ParseSection struct {
	UnaryPenalty    float64 `toml:"unary_penalty"`
	NBest           int     `toml:"nbest"`
	PruningSize     int     `toml:"pruning_size"`
	Beta            float64 `toml:"beta"`
	UseBeta         bool    `toml:"use_beta"`
	UseSeenRules    bool    `toml:"use_seen_rules"`
	UseCategoryDict bool    `toml:"use_category_dict"`
	MaxLength       int     `toml:"max_length"`
	MaxSteps        int     `toml:"max_steps"`
	MaxUnaryChain   int     `toml:"max_unary_chain"`
}

// BatchSection configures pkg/batch.
type BatchSection struct {
	Workers    int  `toml:"workers"`      // 0 means runtime.GOMAXPROCS
	RatePerSec int  `toml:"rate_per_sec"` // decoded only; nothing in this module applies it to a scorer
	StopOnErr  bool `toml:"stop_on_error"`
}

// LogSection configures pkg/obslog.
type LogSection struct {
	Level       string `toml:"level"`       // "debug", "info", "warn", "error"
	Development bool   `toml:"development"` // zap.NewDevelopment-style console encoding
}

// ErrInvalidConfig wraps structural problems found in a decoded File.
var ErrInvalidConfig = fmt.Errorf("config: invalid configuration")

// Load reads and decodes path, applying astar.DefaultConfig's defaults to
// every key the file leaves out (see applyDefaults). A key the file sets
// keeps its value, zero or false included; Validate then rejects a
// non-positive nbest or max_length.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	applyDefaults(&f, meta)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyDefaults fills fields the file left undefined with
// astar.DefaultConfig's defaults. meta.IsDefined distinguishes
// an absent key from an explicit zero/false value, which a plain zero-value
// check on the decoded bools/numbers cannot (an explicit `use_beta = false`
// must stick, not get silently overridden back to true).
func applyDefaults(f *File, meta toml.MetaData) {
	d := astar.DefaultConfig()
	if !meta.IsDefined("parse", "unary_penalty") {
		f.Parse.UnaryPenalty = d.UnaryPenalty
	}
	if !meta.IsDefined("parse", "nbest") {
		f.Parse.NBest = d.NBest
	}
	if !meta.IsDefined("parse", "pruning_size") {
		f.Parse.PruningSize = d.PruningSize
	}
	if !meta.IsDefined("parse", "beta") {
		f.Parse.Beta = d.Beta
	}
	if !meta.IsDefined("parse", "use_beta") {
		f.Parse.UseBeta = d.UseBeta
	}
	if !meta.IsDefined("parse", "use_seen_rules") {
		f.Parse.UseSeenRules = d.UseSeenRules
	}
	if !meta.IsDefined("parse", "use_category_dict") {
		f.Parse.UseCategoryDict = d.UseCategoryDict
	}
	if !meta.IsDefined("parse", "max_length") {
		f.Parse.MaxLength = d.MaxLength
	}
	if !meta.IsDefined("parse", "max_steps") {
		f.Parse.MaxSteps = d.MaxSteps
	}
	if !meta.IsDefined("parse", "max_unary_chain") {
		f.Parse.MaxUnaryChain = d.MaxUnaryChain
	}
	if !meta.IsDefined("log", "level") {
		f.Log.Level = "info"
	}
}

// Validate checks cross-field consistency.
func (f *File) Validate() error {
	if f.Parse.NBest <= 0 {
		return fmt.Errorf("%w: parse.nbest must be positive", ErrInvalidConfig)
	}
	if f.Parse.MaxLength <= 0 {
		return fmt.Errorf("%w: parse.max_length must be positive", ErrInvalidConfig)
	}
	if f.Batch.Workers < 0 {
		return fmt.Errorf("%w: batch.workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Astar translates the decoded ParseSection into an astar.Config.
func (f *File) Astar() astar.Config {
	return astar.Config{
		UnaryPenalty:    f.Parse.UnaryPenalty,
		NBest:           f.Parse.NBest,
		PruningSize:     f.Parse.PruningSize,
		Beta:            f.Parse.Beta,
		UseBeta:         f.Parse.UseBeta,
		UseSeenRules:    f.Parse.UseSeenRules,
		UseCategoryDict: f.Parse.UseCategoryDict,
		MaxLength:       f.Parse.MaxLength,
		MaxSteps:        f.Parse.MaxSteps,
		MaxUnaryChain:   f.Parse.MaxUnaryChain,
	}
}
