package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// applyFile loads the TOML file at path and applies every known key whose
// flag was not given on the command line. Unknown keys are an error.
func applyFile(cfg *AppConfig, fs *pflag.FlagSet, path string) error {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}

	known := make(map[string]override, len(overrides))
	for _, o := range overrides {
		known[o.fileKey] = o
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		o, ok := known[k]
		if !ok {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, k)
		}
		if flagChanged(fs, o.flag) {
			continue
		}
		if err := o.apply(cfg, fmt.Sprint(raw[k])); err != nil {
			return apperrors.NewConfigError("config file %s: %s: %v", path, k, err)
		}
	}
	return nil
}
