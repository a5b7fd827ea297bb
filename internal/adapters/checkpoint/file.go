package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/openrec/skillrank/internal/domain/model"
)

// document is the on-disk checkpoint layout.
type document struct {
	Rounds      map[string]model.RoundRecord `json:"rounds"`
	Snapshot    []model.PlayerRanking        `json:"snapshot,omitempty"`
	HasSnapshot bool                         `json:"has_snapshot"`
	State       *model.CalculationState      `json:"state,omitempty"`
}

// FileStore implements Store on a single JSON file. Every mutation
// rewrites the file through a temp-and-rename so a crash mid-write
// never leaves a torn checkpoint. Safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  document
}

// NewFileStore opens or creates a checkpoint file at path.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		doc:  document{Rounds: make(map[string]model.RoundRecord)},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCheckpointLoad, path, err)
	}
	if err := json.Unmarshal(raw, &fs.doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCheckpointLoad, path, err)
	}
	if fs.doc.Rounds == nil {
		fs.doc.Rounds = make(map[string]model.RoundRecord)
	}
	return fs, nil
}

// persist writes the document to disk atomically. Caller holds the lock.
func (f *FileStore) persist() error {
	raw, err := json.MarshalIndent(&f.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	return nil
}

// CalculatedRounds returns every round already marked calculated.
func (f *FileStore) CalculatedRounds(ctx context.Context) (map[string]model.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]model.RoundRecord, len(f.doc.Rounds))
	for id, rec := range f.doc.Rounds {
		out[id] = rec
	}
	return out, nil
}

// LatestSnapshot returns the most recently published ranking list.
func (f *FileStore) LatestSnapshot(ctx context.Context) ([]model.PlayerRanking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.doc.HasSnapshot {
		return nil, ErrSnapshotNotFound
	}
	out := make([]model.PlayerRanking, len(f.doc.Snapshot))
	copy(out, f.doc.Snapshot)
	return out, nil
}

// SaveState persists a calculation state record.
func (f *FileStore) SaveState(ctx context.Context, state *model.CalculationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *state
	f.doc.State = &copied
	return f.persist()
}

// SaveRound marks one round calculated.
func (f *FileStore) SaveRound(ctx context.Context, rec model.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.doc.Rounds[rec.RoundID] = rec
	return f.persist()
}

// Publish atomically stores the ranking snapshot and terminal state.
func (f *FileStore) Publish(ctx context.Context, rankings []model.PlayerRanking, state *model.CalculationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.doc
	f.doc.Snapshot = make([]model.PlayerRanking, len(rankings))
	copy(f.doc.Snapshot, rankings)
	f.doc.HasSnapshot = true
	copied := *state
	f.doc.State = &copied

	if err := f.persist(); err != nil {
		f.doc = prev
		return err
	}
	return nil
}
