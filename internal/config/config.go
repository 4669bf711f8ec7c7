// Package config holds the settings of a prosesift run.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PROSESIFT_* environment variables. Command-line flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chriscorrea/prosesift/internal/classify"
	"github.com/chriscorrea/prosesift/internal/training"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PROSESIFT_"

// ErrInvalid reports a configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings of a run.
type Config struct {
	URL         string `koanf:"url"`         // default page when no source is given
	TrainPath   string `koanf:"trainpath"`   // directory of the training corpora
	CodeFile    string `koanf:"codefile"`    // code examples, labelled Drop
	NLangFile   string `koanf:"nlangfile"`   // natural-language examples, labelled Take
	UnclearFile string `koanf:"unclearfile"` // ambiguous examples, labelled Open
	MinLength   int    `koanf:"min_length"`  // fragments shorter than this skip classification
	Sentinel    string `koanf:"sentinel"`    // placeholder for removed fragments
	Selector    string `koanf:"selector"`    // CSS selector whose text nodes are fragments
	Readability bool   `koanf:"readability"` // narrow the page to its main content first
	Boilerplate bool   `koanf:"boilerplate"` // drop boilerplate sentences (copyright, navigation)
	Debug       bool   `koanf:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		URL:         "https://en.wikipedia.org/wiki/Band-pass_filter",
		TrainPath:   "training",
		CodeFile:    "code_aa.txt",
		NLangFile:   "nlang-de_aa.txt",
		UnclearFile: "json_aa.txt",
		MinLength:   10,
		Sentinel:    "-X-",
		Selector:    "body *",
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when path
// is empty) and PROSESIFT_* environment variables.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}

	// PROSESIFT_MIN_LENGTH -> min_length
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can build a classifier.
func (c Config) Validate() error {
	if c.CodeFile == "" || c.NLangFile == "" || c.UnclearFile == "" {
		return fmt.Errorf("%w: codefile, nlangfile and unclearfile are required", ErrInvalid)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("%w: min_length must not be negative, got %d", ErrInvalid, c.MinLength)
	}
	if strings.TrimSpace(c.Sentinel) == "" {
		return fmt.Errorf("%w: sentinel must not be blank", ErrInvalid)
	}
	if strings.TrimSpace(c.Selector) == "" {
		return fmt.Errorf("%w: selector must not be blank", ErrInvalid)
	}
	return nil
}

// CorpusPaths resolves the three training files against TrainPath, labelled in
// load order: code, natural language, unclear.
func (c Config) CorpusPaths() []training.Corpus {
	return []training.Corpus{
		{Path: filepath.Join(c.TrainPath, c.CodeFile), Label: classify.Drop},
		{Path: filepath.Join(c.TrainPath, c.NLangFile), Label: classify.Take},
		{Path: filepath.Join(c.TrainPath, c.UnclearFile), Label: classify.Open},
	}
}
