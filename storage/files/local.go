package files

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/intake"
)

// LocalStore writes artifacts as files of a single directory.
type LocalStore struct {
	dir string
}

var _ intake.Store = (*LocalStore)(nil) // interface compliance check

// NewLocalStore creates dir if it does not exist yet.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	if name != filepath.Base(name) {
		return errors.Errorf("invalid artifact name %q", name)
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}
