// Package manifest records what a render run produced.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/heartviz/internal/chart"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

// FileName is the manifest's name inside an output directory.
const FileName = "manifest.json"

// Manifest describes one render run persisted next to its charts.
type Manifest struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	AgeScheme string    `json:"age_scheme"`
	Dashboard string    `json:"dashboard,omitempty"`
	Charts    []Entry   `json:"charts"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// Entry is one rendered chart.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	File     string `json:"file"`
	Rows     int    `json:"rows"`
	Included int    `json:"included"`
	Excluded int    `json:"excluded"`
}

// New starts a manifest for a run over source.
func New(source string, rows int, ageScheme string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Source:    source,
		Rows:      rows,
		AgeScheme: ageScheme,
		Charts:    []Entry{},
	}
}

// Add records a chart written to file (relative to the output directory).
func (m *Manifest) Add(d *chart.Data, file string) {
	m.Charts = append(m.Charts, Entry{
		ID:       d.ID,
		Title:    d.Title,
		Kind:     d.Kind.String(),
		File:     file,
		Rows:     len(d.Keys),
		Included: d.Included,
		Excluded: d.Excluded,
	})
}

// Save writes manifest.json into dir using atomic write.
func (m *Manifest) Save(dir string) error {
	if dir == "" {
		return errors.New("manifest directory not set")
	}
	return utils.WriteJSON(filepath.Join(dir, FileName), m)
}

// Load reads manifest.json from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Find loads the manifest of the nearest output directory at or above start.
func Find(start string) (*Manifest, string, error) {
	dir, err := utils.FindUp(start, FileName)
	if err != nil {
		return nil, "", err
	}
	m, err := Load(dir)
	if err != nil {
		return nil, "", err
	}
	return m, dir, nil
}
