package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/testguard/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct{}

// New creates a new file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads a project baseline from disk. Returns (nil, nil) if none exists.
func (s *Store) Load(projectPath string) (*domain.Baseline, error) {
	data, err := os.ReadFile(baselinePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no baseline is not an error
		}
		return nil, err
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.Files == nil {
		b.Files = map[string]string{}
	}
	return &b, nil
}

// Save writes a baseline to disk, creating directories as needed.
func (s *Store) Save(b *domain.Baseline) error {
	if err := os.MkdirAll(baselineDir(b.ProjectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(baselinePath(b.ProjectPath), data, 0644)
}

// Invalidate removes the baseline file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(baselinePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func baselineDir(projectPath string) string {
	return filepath.Join(projectPath, ".testguard", "cache")
}

func baselinePath(projectPath string) string {
	return filepath.Join(baselineDir(projectPath), "baseline.json")
}
