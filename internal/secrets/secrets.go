// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text
// files and resolves the key a run should use. Each file holds one secret:
// the filename is the key name and the trimmed contents are the value.
//
// Recognised key files: gemini-api-key, anthropic-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// Store maps secret names to values.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty store. Unreadable files are logged and skipped.
func Load(dir string, log zerolog.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Source names where a resolved credential came from. Values never leave
// this package in logs; only the source does.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceConfig  Source = "config"
	SourceSecrets Source = "secrets"
	SourceNone    Source = "none"
)

// Resolve picks the first non-empty credential from the --api-key flag, the
// environment or config value, and the named secret file, in that order.
func (s Store) Resolve(flagValue, configValue, secretName string) (string, Source) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, SourceFlag
	}
	if v := strings.TrimSpace(configValue); v != "" {
		return v, SourceConfig
	}
	if v := s[secretName]; v != "" {
		return v, SourceSecrets
	}
	return "", SourceNone
}
