// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

// LoadEnvFile loads a dotenv file and merges its contents into env.
// Relative paths are resolved against baseDir, or the working directory when
// baseDir is empty. Paths suffixed with '?' are optional: a missing optional
// file is not an error. Later files override earlier values for the same keys.
func LoadEnvFile(env map[string]string, path, baseDir string) error {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	fullPath := path
	if !filepath.IsAbs(path) {
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current working directory: %w", err)
			}
			baseDir = wd
		}
		fullPath = filepath.Join(baseDir, filepath.FromSlash(path))
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	return ParseEnvFile(env, content, path)
}

// ParseEnvFile parses dotenv content and merges it into env. Comments, blank
// lines, single and double quotes and the "export" prefix are accepted;
// ${VAR} references in unquoted or double-quoted values are expanded.
// The filename is used for error messages.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	parsed, err := gotenv.StrictParse(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	maps.Copy(env, parsed)
	return nil
}

// ParseEnvVar splits a KEY=VALUE pair as given on the command line.
func ParseEnvVar(kv string) (key, value string, err error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid env var %q (expected KEY=VALUE)", kv)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("invalid env var %q (empty name)", kv)
	}
	return key, value, nil
}
