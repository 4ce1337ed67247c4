package preferences

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"strings"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/kv"
)

// Slot keys shared with the task slot in the same namespace.
const (
	ThemeKey    = "powerTodoTheme"
	UsernameKey = "powerTodoUsername"
	AvatarKey   = "powerTodoProfileImage"
)

// MaxAvatarBytes is the largest image accepted as an avatar (2 MiB).
const MaxAvatarBytes = 2 * 1024 * 1024

// Theme is the color scheme the renderer uses.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme converts user input to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", todoerrors.InvalidThemeError{Value: s}
	}
}

// Preferences is the profile-level state owned by the presentation layer.
type Preferences struct {
	Theme    Theme
	Username string
	Avatar   string // data: URL, empty when unset
}

// HasAvatar reports whether an avatar image is stored.
func (p Preferences) HasAvatar() bool {
	return p.Avatar != ""
}

// Manager reads and writes preference slots.
type Manager struct {
	slots kv.Store
}

// NewManager creates a Manager over slots.
func NewManager(slots kv.Store) *Manager {
	return &Manager{slots: slots}
}

// Load reads every preference. Absent slots take defaults; the first read
// failure is returned alongside whatever could be loaded.
func (m *Manager) Load() (Preferences, error) {
	p := Preferences{Theme: ThemeDark}
	var firstErr error
	read := func(key string) string {
		v, err := m.slots.Get(key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) && firstErr == nil {
			firstErr = err
		}
		return v
	}

	// Anything but "light" renders dark.
	if read(ThemeKey) == string(ThemeLight) {
		p.Theme = ThemeLight
	}
	p.Username = read(UsernameKey)
	p.Avatar = read(AvatarKey)
	return p, firstErr
}

// SetTheme stores the theme.
func (m *Manager) SetTheme(t Theme) error {
	return m.set(ThemeKey, string(t))
}

// ToggleTheme switches between light and dark and returns the new theme.
func (m *Manager) ToggleTheme() (Theme, error) {
	p, err := m.Load()
	if err != nil {
		return p.Theme, err
	}
	next := ThemeLight
	if p.Theme == ThemeLight {
		next = ThemeDark
	}
	return next, m.SetTheme(next)
}

// SetUsername stores the trimmed display name.
func (m *Manager) SetUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", todoerrors.EmptyNameError{}
	}
	return name, m.set(UsernameKey, name)
}

// SetAvatarFromFile stores the image at path as a data: URL.
func (m *Manager) SetAvatarFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > MaxAvatarBytes {
		return todoerrors.ImageTooLargeError{Size: info.Size(), Limit: MaxAvatarBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	url, err := DataURL(data)
	if err != nil {
		return err
	}
	return m.set(AvatarKey, url)
}

// RemoveAvatar deletes the stored avatar.
func (m *Manager) RemoveAvatar() error {
	return m.slots.Delete(AvatarKey)
}

// Reset removes every preference slot and leaves other slots alone.
func (m *Manager) Reset() error {
	for _, key := range []string{ThemeKey, UsernameKey, AvatarKey} {
		if err := m.slots.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) set(key, value string) error {
	if err := m.slots.Set(key, value); err != nil {
		return todoerrors.PersistError{Key: key, Err: err}
	}
	return nil
}

// DataURL encodes image bytes as a base64 data: URL, rejecting non-images.
func DataURL(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", todoerrors.UnsupportedImageError{ContentType: contentType}
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
