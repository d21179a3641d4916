// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads private settings from a directory of plain-text
// files, one value per file. The filename is the key and the trimmed
// contents are the value.
//
// The only key read today is edgar-user-agent: the "Name contact@example.com"
// identification EDGAR requires on every request. It is kept out of the
// config file so the contact address is not committed with it.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// UserAgentKey names the secret holding the EDGAR User-Agent.
const UserAgentKey = "edgar-user-agent"

// ErrNoContact means a User-Agent carries no contact e-mail address.
var ErrNoContact = errors.New("EDGAR User-Agent must include a contact e-mail address")

var contactAddress = regexp.MustCompile(`[^\s@<>]+@[^\s@<>]+\.[^\s@<>]+`)

// Secrets maps key names to values read from the secrets directory.
type Secrets map[string]string

// Keys returns the loaded key names without their values.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// UserAgent returns the edgar-user-agent secret. It returns "" and no
// error when the secret is absent, and ErrNoContact when the value has
// no contact address.
func (s Secrets) UserAgent() (string, error) {
	ua, ok := s[UserAgentKey]
	if !ok {
		return "", nil
	}
	if err := ValidateUserAgent(ua); err != nil {
		return "", fmt.Errorf("secret %s: %w", UserAgentKey, err)
	}
	return ua, nil
}

// ValidateUserAgent checks that ua names a contact e-mail address, as
// EDGAR's access policy requires of automated clients.
func ValidateUserAgent(ua string) error {
	if !contactAddress.MatchString(ua) {
		return fmt.Errorf("%q: %w", ua, ErrNoContact)
	}
	return nil
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files are logged as warnings and
// skipped. A nil logger discards the warnings.
func Load(dir string, logger *zap.Logger) (Secrets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}
