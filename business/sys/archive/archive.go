// Package archive writes the raw snapshot a survey run worked from next to
// the processed output, so a distribution can be re-derived later.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the archived form of one raw fetch.
type Snapshot struct {
	RunID            string    `json:"run_id"`
	Network          string    `json:"network"`
	CollectionMethod string    `json:"collection_method"`
	Timestamp        time.Time `json:"timestamp"`
	Nodes            any       `json:"nodes"`
}

// Write stores the raw payload for a network, overwriting any previous
// snapshot. Each write gets a fresh run id.
func Write(path string, network string, method string, payload any) (Snapshot, error) {
	snap := Snapshot{
		RunID:            uuid.NewString(),
		Network:          network,
		CollectionMethod: method,
		Timestamp:        time.Now().UTC(),
		Nodes:            payload,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Snapshot{}, fmt.Errorf("creating archive directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return Snapshot{}, fmt.Errorf("writing snapshot: %w", err)
	}

	return snap, nil
}
