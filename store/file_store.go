package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/josephgoksu/daytrack/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatTOML     = "toml"
	checksumSuffix = ".checksum"
	lockSuffix     = ".lock"
	tempSuffix     = ".tmp"
)

// FileOptions configures a FileStore.
type FileOptions struct {
	// Format is json (default), yaml or toml.
	Format string
	// VerifyChecksum makes Load fail when the checksum sidecar does not match.
	VerifyChecksum bool
}

// FileStore keeps the task map in a single file with a SHA-256 checksum sidecar.
// On the OS filesystem, reads and writes hold an advisory lock on <file>.lock.
type FileStore struct {
	fs       afero.Fs
	filePath string
	format   string
	verify   bool
	flk      *flock.Flock
}

// NewFileStore creates the data directory if needed and returns a store for filePath.
func NewFileStore(fsys afero.Fs, filePath string, opts FileOptions) (*FileStore, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = formatJSON
	}
	switch format {
	case formatJSON, formatYAML, formatTOML:
	default:
		return nil, fmt.Errorf("%w: %s (supported: json, yaml, toml)", ErrUnsupportedFormat, opts.Format)
	}

	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s := &FileStore{
		fs:       fsys,
		filePath: filePath,
		format:   format,
		verify:   opts.VerifyChecksum,
	}
	if _, ok := fsys.(*afero.OsFs); ok {
		s.flk = flock.New(filePath + lockSuffix)
	}
	return s, nil
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.filePath
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads and decodes the data file. A missing or empty file is an empty map.
func (s *FileStore) Load(ctx context.Context) (models.TasksByDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.flk != nil {
		if err := s.flk.RLock(); err != nil {
			return nil, fmt.Errorf("failed to acquire read lock for %s: %w", s.filePath, err)
		}
		defer func() { _ = s.flk.Unlock() }()
	}

	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.TasksByDate{}, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if s.verify {
		if err := s.verifyChecksum(data); err != nil {
			return nil, err
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return models.TasksByDate{}, nil
	}

	m, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from %s: %w", strings.ToUpper(s.format), s.filePath, err)
	}
	if m == nil {
		m = models.TasksByDate{}
	}
	return m, nil
}

// verifyChecksum compares data against the sidecar. A missing sidecar is
// accepted; the next save creates it.
func (s *FileStore) verifyChecksum(data []byte) error {
	checksumFilePath := s.filePath + checksumSuffix
	expected, err := afero.ReadFile(s.fs, checksumFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, err)
	}
	actual := calculateChecksum(data)
	if strings.TrimSpace(string(expected)) != actual {
		return fmt.Errorf("%w for %s: expected %s, got %s", ErrChecksumMismatch, s.filePath, strings.TrimSpace(string(expected)), actual)
	}
	return nil
}

func (s *FileStore) decode(data []byte) (models.TasksByDate, error) {
	var m models.TasksByDate
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}
	return m, nil
}

func (s *FileStore) encode(m models.TasksByDate) ([]byte, error) {
	switch s.format {
	case formatJSON:
		return json.MarshalIndent(m, "", "  ")
	case formatYAML:
		return yaml.Marshal(m)
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}
}

// Save writes m to a temporary file and its checksum to a temporary sidecar,
// then renames both into place.
func (s *FileStore) Save(ctx context.Context, m models.TasksByDate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		m = models.TasksByDate{}
	}
	data, err := s.encode(m)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	if s.flk != nil {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire write lock for %s: %w", s.filePath, err)
		}
		defer func() { _ = s.flk.Unlock() }()
	}

	tempFilePath := s.filePath + tempSuffix
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + tempSuffix

	defer func() { _ = s.fs.Remove(tempFilePath) }()
	defer func() { _ = s.fs.Remove(tempChecksumFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempFilePath, err)
	}
	if err := afero.WriteFile(s.fs, tempChecksumFilePath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumFilePath, err)
	}
	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := s.fs.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated but checksum %s was not: %w", s.filePath, checksumFilePath, err)
	}
	return nil
}

// Close releases the file lock handle.
func (s *FileStore) Close() error {
	if s.flk != nil {
		return s.flk.Close()
	}
	return nil
}
