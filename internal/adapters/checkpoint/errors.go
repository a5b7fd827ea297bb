package checkpoint

import "errors"

var (
	// ErrSnapshotNotFound indicates no ranking snapshot was ever published.
	ErrSnapshotNotFound = errors.New("ranking snapshot not found")

	// ErrClosed indicates an operation on a closed journal.
	ErrClosed = errors.New("journal is closed")

	// ErrCheckpointLoad indicates the checkpoint file could not be read or parsed.
	ErrCheckpointLoad = errors.New("failed to load checkpoint file")

	// ErrCheckpointSave indicates the checkpoint file could not be written.
	ErrCheckpointSave = errors.New("failed to save checkpoint file")
)
