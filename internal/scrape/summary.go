// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// RunSummary is the on-disk record of one scrape run, written alongside
// the raw record file. It documents when the crawl ran, how much it
// fetched, and any per-page errors it tolerated.
type RunSummary struct {
	RunID       string    `yaml:"run_id"`
	Institution string    `yaml:"institution"`
	IPEDS       int       `yaml:"inst_ipeds"`
	StartedAt   time.Time `yaml:"started_at"`
	FinishedAt  time.Time `yaml:"finished_at"`
	Pages       int       `yaml:"pages"`
	Records     int       `yaml:"records"`
	Errors      []string  `yaml:"errors,omitempty"`
}

func newSummary(inst types.Institution, started time.Time, res Result) RunSummary {
	return RunSummary{
		RunID:       uuid.NewString(),
		Institution: inst.Key,
		IPEDS:       inst.IPEDS,
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
		Pages:       res.Pages,
		Records:     len(res.Courses),
		Errors:      res.Errors,
	}
}

func summaryPath(dataDir string, inst types.Institution) string {
	return filepath.Join(dataDir, dataset.RawDir, inst.Key+"_scrape.yaml")
}

// WriteSummary saves a run summary as YAML.
func WriteSummary(path string, s RunSummary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSummary loads a previously written run summary.
func ReadSummary(path string) (*RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run summary: %w", err)
	}
	var s RunSummary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing run summary: %w", err)
	}
	return &s, nil
}
