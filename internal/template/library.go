// Package template loads vector templates and embeds rendered QR rasters
// into them.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTemplateNotFound is returned when a template reference does not resolve
// to a file in the library.
var ErrTemplateNotFound = errors.New("template not found")

// Library serves vector template text by name from a directory of .svg files.
type Library struct {
	dir string
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Load returns the template text for name. The reference may omit the .svg
// extension. Path separators in the reference are rejected so a design cannot
// reach outside the library directory.
func (l *Library) Load(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	if !strings.HasSuffix(name, ".svg") {
		name += ".svg"
	}
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("read template %q: %w", name, err)
	}
	return string(data), nil
}
