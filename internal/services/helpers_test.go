package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
	"github.com/kbaid4/testwecicada/internal/repository/memory"
	"github.com/kbaid4/testwecicada/internal/storage"
)

type testEnv struct {
	repos *memory.Manager
	blobs *storage.DiskStore
	guard *auth.Guard
	svc   *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewManager()
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	guard, err := auth.NewGuard([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return &testEnv{
		repos: repos,
		blobs: blobs,
		guard: guard,
		svc:   New(repos, blobs, guard, logging.Discard()),
	}
}

func (e *testEnv) signup(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := e.svc.Identity.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "pw1"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) event(t *testing.T, owner uint, name string) *models.Event {
	t.Helper()
	ev, err := e.svc.Events.Create(context.Background(), owner, EventInput{Name: ptr(name)})
	require.NoError(t, err)
	return ev
}

func ptr[T any](v T) *T { return &v }

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, handle string, r io.Reader) (string, error) {
	args := m.Called(ctx, handle, r)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	args := m.Called(ctx, handle)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockBlobStore) Delete(ctx context.Context, handle string) error {
	return m.Called(ctx, handle).Error(0)
}

func (m *mockBlobStore) List(ctx context.Context) ([]storage.BlobInfo, error) {
	args := m.Called(ctx)
	infos, _ := args.Get(0).([]storage.BlobInfo)
	return infos, args.Error(1)
}

// failingUpdates wraps the memory manager so that event updates fail.
type failingUpdates struct {
	*memory.Manager
}

func (f failingUpdates) Events() repository.EventRepository {
	return failingEventRepo{f.Manager.Events()}
}

type failingEventRepo struct {
	repository.EventRepository
}

func (failingEventRepo) Update(context.Context, *models.Event) error {
	return errors.New("disk full")
}

// vanishingEvents deletes each event right after it has been looked up.
type vanishingEvents struct {
	*memory.Manager
}

func (v vanishingEvents) Events() repository.EventRepository {
	return vanishingEventRepo{v.Manager.Events()}
}

type vanishingEventRepo struct {
	repository.EventRepository
}

func (r vanishingEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	ev, err := r.EventRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.EventRepository.DeleteCascade(ctx, id); err != nil {
		return nil, err
	}
	return ev, nil
}
