// Package creds resolves and stores the notifier tokens (Telegram bot
// token, GitHub token). Environment variables win; otherwise tokens live
// in the OS keyring, with a file fallback for environments where no
// keyring is available (CI, containers).
package creds

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage.
	KeyringService = "leadgen-cli"
	// FallbackDir holds file-based tokens when the keyring is unusable.
	FallbackDir = ".leadgen/credentials"
)

// Known credential keys and their environment overrides.
const (
	TelegramToken = "telegram_token"
	GitHubToken   = "github_token"
)

var envOverrides = map[string]string{
	TelegramToken: "TELEGRAM_BOT_TOKEN",
	GitHubToken:   "GITHUB_TOKEN",
}

// Store reads and writes named credentials.
type Store struct {
	log zerolog.Logger

	mu        sync.Mutex
	fileBased *bool
}

func NewStore(logger zerolog.Logger) *Store {
	return &Store{log: logger.With().Str("component", "creds").Logger()}
}

// useFileStorage reports whether to bypass the keyring. Cached after the
// first probe.
func (s *Store) useFileStorage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fileBased != nil {
		return *s.fileBased
	}

	result := false
	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result = true
	} else {
		testKey := "_test_keyring_access_"
		if err := keyring.Set(KeyringService, testKey, "test"); err != nil {
			result = true
		} else {
			_ = keyring.Delete(KeyringService, testKey)
		}
	}
	s.fileBased = &result
	if result {
		s.log.Debug().Msg("Keyring unavailable, using file-based credential storage")
	}
	return result
}

func credPath(key string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, key), nil
}

// Get resolves a credential: environment override first, then the
// keyring or file store. A missing credential returns "" and no error;
// callers treat absence as "feature disabled".
func (s *Store) Get(key string) (string, error) {
	if env, ok := envOverrides[key]; ok {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}

	if s.useFileStorage() {
		path, err := credPath(key)
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("read credential %s: %w", key, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	value, err := keyring.Get(KeyringService, key)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load credential %s from keyring: %w", key, err)
	}
	return value, nil
}

// Set persists a credential.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}

	if s.useFileStorage() {
		path, err := credPath(key)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(value), 0o600)
	}
	if err := keyring.Set(KeyringService, key, value); err != nil {
		return fmt.Errorf("save credential %s to keyring: %w", key, err)
	}
	return nil
}

// Delete removes a stored credential. Removing an absent credential is
// not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}

	if s.useFileStorage() {
		path, err := credPath(key)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := keyring.Delete(KeyringService, key); err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("delete credential %s from keyring: %w", key, err)
	}
	return nil
}
