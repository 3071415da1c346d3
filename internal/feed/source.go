package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Source supplies one already-deserialized odds snapshot per call.
// Network fetching, retries and API keys live behind implementations of
// this interface, outside the core pipeline.
type Source interface {
	Snapshot(ctx context.Context) ([]Event, error)
}

// FileSource reads a snapshot from a JSON file on disk. Useful for local
// runs and as the seam for whatever process drops fetched payloads there.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Snapshot reads and decodes the snapshot file.
func (s *FileSource) Snapshot(ctx context.Context) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", s.Path, err)
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.Path, err)
	}

	return events, nil
}

// StaticSource serves a fixed slice of events. Used in tests and for
// callers that already hold a deserialized snapshot.
type StaticSource struct {
	Events []Event
}

// Snapshot returns the stored events.
func (s *StaticSource) Snapshot(ctx context.Context) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Events, nil
}
