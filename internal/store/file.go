package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/wfetch/internal/weather"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrParse is returned when the configuration file is not a valid record.
	ErrParse = errors.New("config file is malformed")
	// ErrUnknownField is returned by SetField for names outside the record.
	ErrUnknownField = errors.New("unknown config field")
)

const (
	appName = "wfetch"

	fieldAPIKey        = "API_KEY"
	fieldQueryLocation = "QUERY_LOCATION"
)

var validate = validator.New()

// DefaultPath returns {home}/.config/wfetch.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName+".json"), nil
}

// FileStore owns the JSON configuration record at a single path. It is the
// only writer of that file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the configuration file.
func (s *FileStore) Path() string {
	return s.path
}

// readRaw returns every top-level field of the file so that unknown fields
// survive partial updates.
func (s *FileStore) readRaw() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read config %s: %w", s.path, err)
	}

	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, s.path, err)
	}
	return raw, nil
}

// Load reads and parses the configuration file.
func (s *FileStore) Load() (weather.ConfigRecord, error) {
	raw, err := s.readRaw()
	if err != nil {
		return weather.ConfigRecord{}, err
	}

	var rec weather.ConfigRecord
	if err := decodeField(raw, fieldAPIKey, &rec.APIKey); err != nil {
		return weather.ConfigRecord{}, fmt.Errorf("%w: %s: %w", ErrParse, s.path, err)
	}
	if err := decodeField(raw, fieldQueryLocation, &rec.QueryLocation); err != nil {
		return weather.ConfigRecord{}, fmt.Errorf("%w: %s: %w", ErrParse, s.path, err)
	}
	return rec, nil
}

func decodeField(raw map[string]json.RawMessage, name string, dst *string) error {
	v, ok := raw[name]
	if !ok || string(v) == "null" {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}

// Save writes every field of rec, keeping unknown fields already on disk.
func (s *FileStore) Save(rec weather.ConfigRecord) error {
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid config record: %w", err)
	}

	raw, err := s.readRaw()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}

	if err := setRaw(raw, fieldAPIKey, rec.APIKey); err != nil {
		return err
	}
	if rec.QueryLocation == "" {
		delete(raw, fieldQueryLocation)
	} else if err := setRaw(raw, fieldQueryLocation, rec.QueryLocation); err != nil {
		return err
	}
	return s.write(raw)
}

// SetField updates a single field in place. If the file does not exist it is
// created holding only that field.
func (s *FileStore) SetField(name, value string) error {
	key, err := canonicalField(name)
	if err != nil {
		return err
	}
	if key == fieldAPIKey && value == "" {
		return weather.ErrMissingCredential
	}

	raw, err := s.readRaw()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}

	if err := setRaw(raw, key, value); err != nil {
		return err
	}
	return s.write(raw)
}

// Clear deletes the configuration file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return fmt.Errorf("remove config %s: %w", s.path, err)
	}
	return nil
}

func canonicalField(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "api_key":
		return fieldAPIKey, nil
	case "query_location":
		return fieldQueryLocation, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func setRaw(raw map[string]json.RawMessage, key, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	raw[key] = encoded
	return nil
}

// write replaces the file contents; it truncates rather than appends.
func (s *FileStore) write(raw map[string]json.RawMessage) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	return nil
}
