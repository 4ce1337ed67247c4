package kv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	appDir      = ".powertodo"
	slotExt     = ".slot"
	defaultName = "default"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// Dir is a Store that keeps one file per key inside a profile directory.
type Dir struct {
	basePath string
}

// NewDir creates a Dir rooted at path. The directory is created on first write.
func NewDir(path string) *Dir {
	return &Dir{basePath: path}
}

// ProfilePath returns the directory for a named profile (~/.powertodo/<profile>/)
// under dataDir, or under the user's home directory when dataDir is empty.
func ProfilePath(dataDir, profile string) (string, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, appDir)
	}
	name := SanitizeName(profile)
	if name == "" {
		name = defaultName
	}
	return filepath.Join(dataDir, name), nil
}

// SanitizeName converts an arbitrary string to a safe file name component.
// "Work / Team A" -> "Work-Team-A"
func SanitizeName(s string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(s, "-"), "-")
}

// BasePath returns the directory the store writes to.
func (d *Dir) BasePath() string {
	return d.basePath
}

func (d *Dir) slotPath(key string) string {
	return filepath.Join(d.basePath, SanitizeName(key)+slotExt)
}

// Get reads the value stored under key.
func (d *Dir) Get(key string) (string, error) {
	data, err := os.ReadFile(d.slotPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Set writes value under key, replacing any previous slot file.
func (d *Dir) Set(key, value string) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	if err := os.MkdirAll(d.basePath, 0o755); err != nil {
		return err
	}
	//nolint:gosec // G306: slot files hold user data readable by the user
	return os.WriteFile(d.slotPath(key), []byte(value), 0o644)
}

// Delete removes the slot for key. Deleting a missing key is not an error.
func (d *Dir) Delete(key string) error {
	err := os.Remove(d.slotPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every slot file in the directory, leaving other files alone.
func (d *Dir) Clear() error {
	entries, err := os.ReadDir(d.basePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), slotExt) {
			continue
		}
		if err := os.Remove(filepath.Join(d.basePath, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
