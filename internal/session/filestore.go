package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

// ErrCredentialsCorrupted indicates the credential file exists but cannot be decoded.
var ErrCredentialsCorrupted = errors.New("credential file corrupted")

// credentialFileVersion is the current schema version of the credential file.
const credentialFileVersion = 1

// Lock retry settings.
const (
	lockMaxRetries = 10
	lockRetryDelay = 100 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

type credentialFile struct {
	Version  int       `json:"version"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	SavedAt  time.Time `json:"saved_at"`
}

// FileStore persists credentials to a 0600 JSON file.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	now      func() time.Time
}

// NewFileStore creates a store backed by filePath. The file is not touched until
// Load or Save is called.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		return nil, errors.New("credential file path cannot be empty")
	}
	return &FileStore{filePath: filePath, now: time.Now}, nil
}

// FilePath returns the backing file path.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// Load reads stored credentials. A missing file yields empty credentials.
func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("reading credential file: %w", err)
	}

	var stored credentialFile
	if unmarshalErr := json.Unmarshal(data, &stored); unmarshalErr != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrCredentialsCorrupted, unmarshalErr)
	}
	if stored.Version != credentialFileVersion {
		return Credentials{}, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrCredentialsCorrupted, stored.Version, credentialFileVersion)
	}

	return Credentials{Username: stored.Username, Password: stored.Password}, nil
}

// Save writes creds atomically via a temp file and rename.
func (s *FileStore) Save(creds Credentials) error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(credentialFile{
		Version:  credentialFileVersion,
		Username: creds.Username,
		Password: creds.Password,
		SavedAt:  s.now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o700); mkdirErr != nil {
		return fmt.Errorf("creating credential directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing credential temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming credential temp file: %w", renameErr)
	}
	return nil
}

// Clear removes the credential file. Clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}

// acquireFileLock takes a cross-process advisory lockfile next to the store.
// The returned func releases it.
func (s *FileStore) acquireFileLock() (func(), error) {
	lockPath := s.filePath + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for i := 0; i < lockMaxRetries; i++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath) {
			continue
		}
		time.Sleep(lockRetryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
func removeStaleLock(lockPath string) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if lockOwnerAlive(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func lockOwnerAlive(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
