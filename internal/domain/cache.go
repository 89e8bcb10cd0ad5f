package domain

import "time"

// Baseline is a snapshot of a project's test files used as the "old" side
// of a check when there is no git history to compare against.
type Baseline struct {
	ProjectPath string            `json:"project_path"`
	CreatedAt   time.Time         `json:"created_at"`
	Files       map[string]string `json:"files"`
}

// Changed returns the snapshot content of file when the snapshot holds it and
// it differs from current.
func (b *Baseline) Changed(file, current string) (string, bool) {
	old, ok := b.Files[file]
	if !ok || old == current {
		return "", false
	}
	return old, true
}
