package app

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when the host has no clipboard provider.
var ErrClipboardUnavailable = errors.New("no clipboard provider")

// Clipboard reads and writes host clipboard text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard utilities (xclip, xsel, wl-clipboard,
// pbcopy or the Windows API).
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// fallbackClipboard tries primary and switches to secondary when primary
// reports ErrClipboardUnavailable.
type fallbackClipboard struct {
	primary, secondary Clipboard
}

func (f fallbackClipboard) ReadAll() (string, error) {
	text, err := f.primary.ReadAll()
	if errors.Is(err, ErrClipboardUnavailable) && f.secondary != nil {
		return f.secondary.ReadAll()
	}
	return text, err
}

func (f fallbackClipboard) WriteAll(text string) error {
	err := f.primary.WriteAll(text)
	if errors.Is(err, ErrClipboardUnavailable) && f.secondary != nil {
		return f.secondary.WriteAll(text)
	}
	return err
}

// WithFallback returns a clipboard that uses secondary whenever primary has
// no provider.
func WithFallback(primary, secondary Clipboard) Clipboard {
	return fallbackClipboard{primary: primary, secondary: secondary}
}
