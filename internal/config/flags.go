package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

// ErrInvalidValue reports a flag value that does not parse as its field type.
var ErrInvalidValue = errors.New("config: invalid flag value")

// Flags binds command-line flags to configuration fields. Only flags that
// were set explicitly override the file configuration.
type Flags struct {
	fs     *flag.FlagSet
	Config string
	values map[string]*string
}

// flagSpecs lists the overlay flags and their help text.
var flagSpecs = []struct {
	name  string
	usage string
}{
	{"mask1", "mask of the first field"},
	{"map1", "map of the first field"},
	{"fwhm1", "Gaussian smoothing FWHM of mask 1 in degrees (0 or -1 disables)"},
	{"mask2", "mask of the second field (cross only)"},
	{"map2", "map of the second field (cross only)"},
	{"fwhm2", "Gaussian smoothing FWHM of mask 2 in degrees (0 or -1 disables)"},
	{"type", "correlation type: auto or cross"},
	{"nside", "expected map resolution (0 accepts any)"},
	{"bins", "bin specification file (two integer columns: lmin lmax)"},
	{"workspace", "coupling matrix cache file"},
	{"save-workspace", "write a computed workspace to -workspace"},
	{"output", "output spectrum file"},
	{"method", "decoupling method: full or step"},
	{"bandpowers", "bandpower table dump path (empty disables)"},
	{"smoothed-mask1", "write the smoothed mask 1 to this path"},
	{"smoothed-mask2", "write the smoothed mask 2 to this path"},
	{"log-level", "log level: debug, info, warn, error"},
	{"log-format", "log format: console or json"},
}

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help text come from Default.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: make(map[string]*string, len(flagSpecs))}
	fs.StringVar(&f.Config, "config", "", "YAML run configuration file")

	def := Default()
	for _, s := range flagSpecs {
		if s.name == "save-workspace" {
			f.values[s.name] = new(string)
			fs.BoolFunc(s.name, s.usage, boolSetter(f.values[s.name]))
			continue
		}
		v := new(string)
		f.values[s.name] = v
		fs.StringVar(v, s.name, def.field(s.name), s.usage)
	}
	return f
}

func boolSetter(dst *string) func(string) error {
	return func(s string) error {
		if _, err := strconv.ParseBool(s); err != nil {
			return err
		}
		*dst = s
		return nil
	}
}

// Apply overlays explicitly set flags onto cfg.
func (f *Flags) Apply(cfg *Config) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		v, ok := f.values[fl.Name]
		if !ok {
			return
		}
		err = cfg.set(fl.Name, *v)
	})
	return err
}

func (c Config) field(name string) string {
	switch name {
	case "mask1":
		return c.Mask1
	case "map1":
		return c.Map1
	case "fwhm1":
		return strconv.FormatFloat(c.FWHM1, 'g', -1, 64)
	case "mask2":
		return c.Mask2
	case "map2":
		return c.Map2
	case "fwhm2":
		return strconv.FormatFloat(c.FWHM2, 'g', -1, 64)
	case "type":
		return c.Type
	case "nside":
		return strconv.Itoa(c.Nside)
	case "bins":
		return c.Bins
	case "workspace":
		return c.Workspace
	case "save-workspace":
		return strconv.FormatBool(c.SaveWorkspace)
	case "output":
		return c.Output
	case "method":
		return c.Method
	case "bandpowers":
		return c.Bandpowers
	case "smoothed-mask1":
		return c.SmoothedMask1
	case "smoothed-mask2":
		return c.SmoothedMask2
	case "log-level":
		return c.LogLevel
	case "log-format":
		return c.LogFormat
	}
	return ""
}

func (c *Config) set(name, v string) error {
	var err error
	switch name {
	case "mask1":
		c.Mask1 = v
	case "map1":
		c.Map1 = v
	case "fwhm1":
		c.FWHM1, err = strconv.ParseFloat(v, 64)
	case "mask2":
		c.Mask2 = v
	case "map2":
		c.Map2 = v
	case "fwhm2":
		c.FWHM2, err = strconv.ParseFloat(v, 64)
	case "type":
		c.Type = v
	case "nside":
		c.Nside, err = strconv.Atoi(v)
	case "bins":
		c.Bins = v
	case "workspace":
		c.Workspace = v
	case "save-workspace":
		c.SaveWorkspace, err = strconv.ParseBool(v)
	case "output":
		c.Output = v
	case "method":
		c.Method = v
	case "bandpowers":
		c.Bandpowers = v
	case "smoothed-mask1":
		c.SmoothedMask1 = v
	case "smoothed-mask2":
		c.SmoothedMask2 = v
	case "log-level":
		c.LogLevel = v
	case "log-format":
		c.LogFormat = v
	}
	if err != nil {
		return fmt.Errorf("%w: -%s: %v", ErrInvalidValue, name, err)
	}
	return nil
}
