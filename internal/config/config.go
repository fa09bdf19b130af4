// Package config resolves the ambient configuration must-oc's CLI layer
// needs before it can build a core.Core: where the Type Registry lives on
// disk, and the byte ceilings for YAML parsing and log streaming.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	homeEnvVar         = "MUST_OC_HOME"
	maxYAMLBytesEnvVar = "MUST_OC_MAX_YAML_BYTES"
	maxLogBytesEnvVar  = "MUST_OC_MAX_LOG_BYTES"

	configDirName = "must-oc"
)

// Dir resolves the Type Registry's configuration directory: $MUST_OC_HOME
// if set, otherwise os.UserConfigDir()/must-oc.
func Dir() (string, error) {
	if home := os.Getenv(homeEnvVar); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

// MaxYAMLBytes returns the MUST_OC_MAX_YAML_BYTES override if set and
// valid, else fall, which the caller supplies as the flag-resolved value
// (0 when the flag is unset; the caller then substitutes
// yamlreader.DefaultMaxYAMLBytes for a zero result).
func MaxYAMLBytes(fall int64) int64 {
	return envOverride(maxYAMLBytesEnvVar, fall)
}

// MaxLogBytes returns the MUST_OC_MAX_LOG_BYTES override if set and valid,
// else fall.
func MaxLogBytes(fall int64) int64 {
	return envOverride(maxLogBytesEnvVar, fall)
}

func envOverride(envVar string, fall int64) int64 {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fall
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fall
	}
	return v
}
