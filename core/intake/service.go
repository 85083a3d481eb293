package intake

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const fileTimeLayout = "2006-01-02_15-04-05"

var nowFunc = time.Now // mockable

type (
	// Store persists submission artifacts. Put overwrites an existing artifact of the same name.
	Store interface {
		Put(ctx context.Context, name string, data []byte) error
	}

	Service struct {
		store Store
	}
)

func NewService(store Store) *Service {
	return &Service{store: store}
}

// FileName returns the artifact name of a submission made at t (local time, second resolution).
func FileName(t time.Time) string {
	return "submission_" + t.Local().Format(fileTimeLayout) + ".txt"
}

// Encode serializes a submission as `key: value` lines.
func Encode(sub Submission) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "full_name: %s\n", sub.FullName)
	fmt.Fprintf(&buf, "email: %s\n", sub.Email)
	fmt.Fprintf(&buf, "age: %s\n", sub.Age)
	fmt.Fprintf(&buf, "city: %s\n", sub.City)
	return buf.Bytes()
}

// Save persists a validated submission and returns the generated artifact name.
// Two submissions within the same second share a name; the last one wins.
func (svc *Service) Save(ctx context.Context, sub Submission) (string, error) {
	name := FileName(nowFunc())
	if err := svc.store.Put(ctx, name, Encode(sub)); err != nil {
		return "", errors.Wrapf(err, "storing %s", name)
	}
	return name, nil
}
