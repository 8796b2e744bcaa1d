// Package assets finds optional static images (logo, signature) on disk and
// exposes them as inline data URLs for the invoice layout.
package assets

import (
	"encoding/base64"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// Asset is a located static file.
type Asset struct {
	Name     string
	Path     string
	MIMEType string
	Data     []byte
}

// DataURL returns the asset encoded as a base64 data URL.
func (a Asset) DataURL() string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Locator searches a list of directories for candidate file names.
type Locator struct {
	dirs []string
	log  *slog.Logger
}

// NewLocator returns a Locator over dirs. With no dirs the working
// directory is searched.
func NewLocator(log *slog.Logger, dirs ...string) *Locator {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return &Locator{dirs: dirs, log: log.With("adapter", "assets")}
}

// Find returns the first candidate that exists in any search directory.
// Candidates are tried in order, each across all directories. Absence is
// reported through ok, never as an error.
func (l *Locator) Find(candidates ...string) (Asset, bool) {
	for _, name := range candidates {
		for _, dir := range l.dirs {
			path := filepath.Join(dir, filepath.FromSlash(name))
			data, err := os.ReadFile(path)
			if err != nil {
				if !os.IsNotExist(err) {
					l.log.Warn("asset unreadable", slog.String("path", path), slog.String("error", err.Error()))
				}
				continue
			}
			return Asset{Name: name, Path: path, MIMEType: detectType(path, data), Data: data}, true
		}
	}
	return Asset{}, false
}

func detectType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// DataURL returns the first found candidate as an inline data URL.
func (l *Locator) DataURL(candidates ...string) (string, bool) {
	a, ok := l.Find(candidates...)
	if !ok {
		return "", false
	}
	return a.DataURL(), true
}
