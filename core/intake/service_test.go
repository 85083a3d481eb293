package intake

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	files map[string]string
	err   error
}

func (s *memStore) Put(_ context.Context, name string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	if s.files == nil {
		s.files = make(map[string]string)
	}
	s.files[name] = string(data)
	return nil
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 999, time.Local)
	assert.Equal(t, "submission_2024-03-09_07-05-01.txt", FileName(ts))
}

func TestService_Save(t *testing.T) {
	defer func() { nowFunc = time.Now }()
	nowFunc = func() time.Time { return time.Date(2024, 12, 31, 23, 59, 58, 0, time.Local) }

	store := new(memStore)
	svc := NewService(store)
	ctx := context.Background()

	name, err := svc.Save(ctx, Submission{FullName: "Ada", Email: "a@b.co", Age: "36", City: "London"})
	require.NoError(t, err)
	assert.Equal(t, "submission_2024-12-31_23-59-58.txt", name)
	assert.Equal(t, "full_name: Ada\nemail: a@b.co\nage: 36\ncity: London\n", store.files[name])

	// same second: last write wins
	_, err = svc.Save(ctx, Submission{FullName: "Bob", Email: "b@b.co", Age: "1", City: "Kyiv"})
	require.NoError(t, err)
	assert.Len(t, store.files, 1)
	assert.Equal(t, "full_name: Bob\nemail: b@b.co\nage: 1\ncity: Kyiv\n", store.files[name])
}

func TestService_Save_storageFault(t *testing.T) {
	diskErr := errors.New("disk full")
	svc := NewService(&memStore{err: diskErr})

	name, err := svc.Save(context.Background(), Submission{})
	assert.Empty(t, name)
	assert.Equal(t, diskErr, errors.Cause(err))
}
