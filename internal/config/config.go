// Package config loads pclest run configuration from an optional YAML file
// and command-line flags.
//
// Values are resolved in order: built-in defaults, then the YAML file, then
// flags that were set explicitly on the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-pcl/estimate"
)

// SmoothingDisabled is the FWHM value that leaves a mask unsmoothed.
const SmoothingDisabled = estimate.SmoothingDisabled

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Config models a run configuration file.
type Config struct {
	Mask1 string  `yaml:"mask1"`
	Map1  string  `yaml:"map1"`
	FWHM1 float64 `yaml:"fwhm1"`

	Mask2 string  `yaml:"mask2,omitempty"`
	Map2  string  `yaml:"map2,omitempty"`
	FWHM2 float64 `yaml:"fwhm2"`

	// Type is "auto" or "cross".
	Type  string `yaml:"type"`
	Nside int    `yaml:"nside"`
	Bins  string `yaml:"bins"`

	Workspace     string `yaml:"workspace,omitempty"`
	SaveWorkspace bool   `yaml:"save_workspace"`

	Output string `yaml:"output"`
	// Method is "full" or "step".
	Method string `yaml:"method"`
	// Bandpowers is the bandpower dump path. Empty disables the dump.
	Bandpowers string `yaml:"bandpowers"`

	SmoothedMask1 string `yaml:"smoothed_mask1,omitempty"`
	SmoothedMask2 string `yaml:"smoothed_mask2,omitempty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FWHM1:     SmoothingDisabled,
		FWHM2:     SmoothingDisabled,
		Type:      estimate.CorrAuto.String(),
		Method:    estimate.MethodFull.String(),
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// Load returns the defaults overlaid with the YAML file at path. Unknown
// keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data on the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Validate parses the enum fields and checks that every input required by
// the correlation type is present.
func (c Config) Validate() error {
	_, err := c.Params()
	return err
}

// Params converts the configuration into pipeline parameters.
func (c Config) Params() (estimate.Params, error) {
	method, err := estimate.ParseMethod(c.Method)
	if err != nil {
		return estimate.Params{}, err
	}
	corr, err := estimate.ParseCorrelation(c.Type)
	if err != nil {
		return estimate.Params{}, err
	}

	p := estimate.Params{
		Mask1:       c.Mask1,
		Map1:        c.Map1,
		FWHM1:       c.FWHM1,
		Correlation: corr,
		Nside:       c.Nside,
		BinsPath:    c.Bins,
		Workspace: estimate.WorkspaceCache{
			Path: c.Workspace,
			Save: c.SaveWorkspace,
		},
		Method:            method,
		OutputPath:        c.Output,
		SmoothedMask1Path: c.SmoothedMask1,
	}
	if corr == estimate.CorrCross {
		p.Mask2 = c.Mask2
		p.Map2 = c.Map2
		p.FWHM2 = c.FWHM2
		p.SmoothedMask2Path = c.SmoothedMask2
	}
	if err := p.Validate(); err != nil {
		return estimate.Params{}, err
	}
	if c.SaveWorkspace && c.Workspace == "" {
		return estimate.Params{}, fmt.Errorf("%w: workspace (required by save_workspace)", estimate.ErrMissingInput)
	}
	return p, nil
}

// String renders the configuration as YAML.
func (c Config) String() string {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	_ = enc.Close()
	return sb.String()
}
