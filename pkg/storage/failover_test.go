package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
)

var errBackendDown = errors.New("connection refused")

// faultStore fails every exercised operation with a configurable error.
// Methods the tests never reach stay on the embedded nil interface.
type faultStore struct {
	api.Store
	err   error
	calls int
}

func (f *faultStore) ListScholarships(ctx context.Context) ([]*api.Scholarship, error) {
	f.calls++
	return nil, f.err
}

func (f *faultStore) GetScholarshipBySlug(ctx context.Context, slug string) (*api.Scholarship, error) {
	f.calls++
	return nil, f.err
}

func (f *faultStore) CreateScholarship(ctx context.Context, s *api.Scholarship) (*api.Scholarship, error) {
	f.calls++
	return nil, f.err
}

func (f *faultStore) DeleteScholarship(ctx context.Context, id int64) error {
	f.calls++
	return f.err
}

func TestFailoverReroutesOnBackendFailure(t *testing.T) {
	primary := &faultStore{err: errBackendDown}
	fallback := NewMemory()
	ctx := context.Background()

	_, err := fallback.CreateScholarship(ctx, newScholarship("Fallback Grant"))
	require.NoError(t, err)

	f := NewFailover(primary, fallback, nil)
	var fallbacks int
	f.OnFallback = func(kind, op, reason string) {
		fallbacks++
		assert.Equal(t, "scholarship", kind)
		assert.Equal(t, "list", op)
	}

	all, err := f.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, fallbacks)
}

func TestFailoverPropagatesDataShapedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", api.ErrNotFound},
		{"invalid", api.ErrInvalid},
		{"conflict", api.ErrConflict},
		{"canceled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &faultStore{err: tt.err}
			fallback := NewMemory()
			f := NewFailover(primary, fallback, nil)
			f.OnFallback = func(kind, op, reason string) {
				t.Fatalf("unexpected fallback for %v", tt.err)
			}

			_, err := f.GetScholarshipBySlug(context.Background(), "anything")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFailoverPropagatesWrappedNotFound(t *testing.T) {
	primary := &faultStore{err: errors.Join(errors.New("scholarship missing"), api.ErrNotFound)}
	f := NewFailover(primary, NewMemory(), nil)

	_, err := f.GetScholarshipBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 1, primary.calls, "fallback must not be consulted")
}

func TestFailoverValidationNeverReachesBackends(t *testing.T) {
	primary := &faultStore{err: errBackendDown}
	f := NewFailover(primary, NewMemory(), nil)

	_, err := f.CreateScholarship(context.Background(), &api.Scholarship{})
	assert.ErrorIs(t, err, api.ErrInvalid)
	assert.Zero(t, primary.calls, "invalid input fails before any backend I/O")
}

func TestFailoverWriteReroutesToEphemeral(t *testing.T) {
	primary := &faultStore{err: errBackendDown}
	fallback := NewMemory()
	f := NewFailover(primary, fallback, nil)
	ctx := context.Background()

	created, err := f.CreateScholarship(ctx, newScholarship("Rescued Grant"))
	require.NoError(t, err)

	got, err := fallback.GetScholarshipByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rescued Grant", got.Title)
}

func TestFailoverDeleteNotFoundFromHealthyPrimary(t *testing.T) {
	f := NewFailover(NewMemory(), NewMemory(), nil)
	err := f.DeleteScholarship(context.Background(), 123)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestFailoverResetReachesPrimary(t *testing.T) {
	primary := NewMemory()
	fallback := NewMemory()
	ctx := context.Background()

	_, err := primary.CreateScholarship(ctx, newScholarship("Stale"))
	require.NoError(t, err)

	f := NewFailover(primary, fallback, nil)
	require.NoError(t, f.Reset(ctx))

	all, err := primary.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFailoverHealthyPrimaryServesDirectly(t *testing.T) {
	primary := NewMemory()
	fallback := NewMemory()
	ctx := context.Background()

	_, err := primary.CreateScholarship(ctx, newScholarship("Primary Grant"))
	require.NoError(t, err)

	f := NewFailover(primary, fallback, nil)
	f.OnFallback = func(kind, op, reason string) { t.Fatal("unexpected fallback") }

	all, err := f.ListScholarships(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Primary Grant", all[0].Title)
}
