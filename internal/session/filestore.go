package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides any stored token when set
	EnvToken = "BILLFOLD_TOKEN"
)

// tokenFile is the on-disk shape of the stored credential
type tokenFile struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// fileStore keeps the bearer token in a 0600 JSON file under ~/.billfold,
// with an environment-variable override for scripted use.
type fileStore struct {
	dir string // empty means ~/.billfold
}

func newFileStore() *fileStore {
	return &fileStore{}
}

func (s *fileStore) credsDir() (string, error) {
	if s.dir != "" {
		return s.dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".billfold"), nil
}

func (s *fileStore) credFilePath() (string, error) {
	dir, err := s.credsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// Token returns the env override if set, otherwise the file-stored token
func (s *fileStore) Token() (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return stripBearer(env), nil
	}

	p, err := s.credFilePath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	if tf.Token == "" {
		return "", ErrNoToken
	}
	return stripBearer(tf.Token), nil
}

// SetToken writes the token file with owner-only permissions
func (s *fileStore) SetToken(token string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return errors.New("token cannot be empty")
	}

	dir, err := s.credsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tf := tokenFile{Token: token, CreatedAt: time.Now()}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	p, _ := s.credFilePath()
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the token file; a missing file is not an error
func (s *fileStore) Clear() error {
	p, err := s.credFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present
func (s *fileStore) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// stripBearer drops a leading "Bearer " so pasted header values work
func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
