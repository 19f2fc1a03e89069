package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/orgdir/orgdir/pkg/errors"
)

// Example is one documented request payload, stored as
// resources/examples/<name>.json.
type Example struct {
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Value       json.RawMessage `json:"value"`
}

// Examples loads and serves the documented request payloads.
type Examples struct {
	dir string
}

// NewExamples verifies the examples directory exists.
func NewExamples(dir string) (*Examples, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("examples directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("examples path %s is not a directory", dir)
	}
	return &Examples{dir: dir}, nil
}

// Get loads one example by name (without the .json extension).
func (e *Examples) Get(name string) (*Example, error) {
	// names come from the URL; keep path traversal out
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid example name: %s", name))
	}

	data, err := os.ReadFile(filepath.Join(e.dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("example not found: %s", name))
		}
		return nil, fmt.Errorf("failed to read example %s: %w", name, err)
	}

	var ex Example
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("failed to parse example %s: %w", name, err)
	}
	return &ex, nil
}

// Names lists the available example names, sorted.
func (e *Examples) Names() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
