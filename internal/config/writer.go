package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
	"github.com/stagegate/stagegate/internal/fileutil"
)

// DefaultConfigFile is the config file written by `stagegate init`.
const DefaultConfigFile = "stagegate.yaml"

// Save writes the configuration to the given path as YAML.
func Save(cfg *Config, path string) error {
	const op = "config.Save"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return sgerrors.ConfigWrap(err, op, "failed to marshal config")
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return sgerrors.IOWrap(err, op, "failed to write config file")
	}
	return nil
}

// Update mutates a single field addressed by a dotted path and rewrites the
// whole config file, preserving all other stored values. The value string is
// coerced to bool, integer, or list before falling back to a plain string.
func Update(path, dottedKey, value string) error {
	const op = "config.Update"

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return sgerrors.ConfigWrap(err, op, "failed to read config file")
	}

	v.Set(dottedKey, coerceValue(value))

	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return sgerrors.ConfigWrap(err, op, "failed to marshal updated config")
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return sgerrors.IOWrap(err, op, "failed to rewrite config file")
	}
	return nil
}

// coerceValue interprets a raw CLI value: booleans, integers, and
// comma-separated lists keep their natural types.
func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				list = append(list, trimmed)
			}
		}
		return list
	}
	return raw
}
