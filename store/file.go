package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/typedkv/compress"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/options"
)

// FileStoreOption configures a FileStore.
type FileStoreOption = options.Option[*FileStore]

// FileStore is a MemoryStore that persists to a snapshot file on Save.
//
// Reads and writes only touch memory; Save writes the whole store to a
// temporary file next to the target and renames it into place.
//
// FileStore is safe for concurrent use; concurrent Save calls are serialized.
type FileStore struct {
	*MemoryStore

	path        string
	compression format.CompressionType
	codec       *snapshotCodec
	logger      *slog.Logger
}

var _ Adapter = (*FileStore)(nil)

// WithCompression selects the compression applied to snapshots written by Save.
// Snapshots record their compression, so a store can be reopened with any setting.
func WithCompression(c format.CompressionType) FileStoreOption {
	return options.New(func(s *FileStore) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		s.compression = c

		return nil
	})
}

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *slog.Logger) FileStoreOption {
	return options.NoError(func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// Open opens the snapshot at path, or starts an empty store if the file does
// not exist yet.
//
// Parameters:
//   - path: Snapshot file path
//   - opts: Optional configuration (compression, logger)
//
// Returns:
//   - *FileStore: The opened store
//   - error: Option, I/O or snapshot validation error
func Open(path string, opts ...FileStoreOption) (*FileStore, error) {
	codec, err := newSnapshotCodec()
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
		compression: format.CompressionZstd,
		codec:       codec,
		logger:      slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("snapshot not found, starting empty", slog.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	entries, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	s.replace(entries)

	s.logger.Debug("snapshot loaded", slog.String("path", path), slog.Int("entries", len(entries)))

	return s, nil
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the current contents to the snapshot file.
func (s *FileStore) Save() error {
	s.codec.mu.Lock()
	defer s.codec.mu.Unlock()

	entries := s.snapshot()

	buf, err := s.codec.encode(entries, s.compression)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	defer s.codec.release(buf)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved",
		slog.String("path", s.path),
		slog.Int("entries", len(entries)),
		slog.Int("bytes", buf.Len()),
		slog.String("compression", s.compression.String()),
	)

	return nil
}

// validateEntries collects every entry with an unknown kind.
func validateEntries(entries map[string]Entry) error {
	var invalid []error
	for key, e := range entries {
		switch e.Kind {
		case KindInt, KindFloat, KindString:
		default:
			invalid = append(invalid, fmt.Errorf("key %q: unknown kind %d: %w", key, e.Kind, errs.ErrInvalidSnapshot))
		}
	}

	return joinErrors(invalid)
}
