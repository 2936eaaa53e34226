package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository/memory"
)

func TestEventCreate_OwnerIsCaller(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "Alice", "alice@x.com")

	ev, err := env.svc.Events.Create(context.Background(), alice.ID, EventInput{
		Name:      ptr(" Launch "),
		Budget:    ptr(5000.0),
		StartDate: ptr("2025-03-01"),
		EndDate:   ptr("2025-03-02T18:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Launch", ev.Name)
	assert.Equal(t, alice.ID, ev.CreatedBy)
	assert.Equal(t, 5000.0, ev.Budget)
	require.NotNil(t, ev.StartDate)
	assert.Equal(t, 2025, ev.StartDate.Year())
	assert.NotNil(t, ev.Documents)
}

func TestEventCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   EventInput
	}{
		{"missing name", EventInput{Budget: ptr(1.0)}},
		{"blank name", EventInput{Name: ptr("  ")}},
		{"negative budget", EventInput{Name: ptr("x"), Budget: ptr(-1.0)}},
		{"bad date", EventInput{Name: ptr("x"), StartDate: ptr("03/01/2025")}},
		{"end before start", EventInput{Name: ptr("x"), StartDate: ptr("2025-03-02"), EndDate: ptr("2025-03-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Events.Create(ctx, 1, tt.in)
			assert.True(t, errors.Is(err, common.ErrBadRequest), "got %v", err)
		})
	}
}

func TestEventList_MineOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, 1, "a")
	env.event(t, 2, "b")
	env.event(t, 1, "c")

	all, err := env.svc.Events.List(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := env.svc.Events.List(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].Name)
	assert.Equal(t, "c", mine[1].Name)
}

func TestEventUpdate_MergesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev, err := env.svc.Events.Create(ctx, 1, EventInput{Name: ptr("Launch"), Location: ptr("Hall A"), Budget: ptr(100.0)})
	require.NoError(t, err)

	updated, err := env.svc.Events.Update(ctx, ev.ID, EventInput{Budget: ptr(250.0)})
	require.NoError(t, err)
	assert.Equal(t, "Launch", updated.Name)
	assert.Equal(t, "Hall A", updated.Location)
	assert.Equal(t, 250.0, updated.Budget)
	assert.Equal(t, uint(1), updated.CreatedBy)

	_, err = env.svc.Events.Update(ctx, 999, EventInput{Budget: ptr(1.0)})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestEventDelete_CascadesTasksAndBlobs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.event(t, 1, "Launch")
	other := env.event(t, 1, "Other")

	for i := 0; i < 3; i++ {
		_, err := env.svc.Tasks.Create(ctx, TaskInput{Name: ptr("t"), EventID: &ev.ID})
		require.NoError(t, err)
	}
	_, err := env.svc.Tasks.Create(ctx, TaskInput{Name: ptr("keep"), EventID: &other.ID})
	require.NoError(t, err)
	doc, err := env.svc.Events.AttachDocument(ctx, ev.ID, strings.NewReader("plan"), "plan.pdf")
	require.NoError(t, err)

	require.NoError(t, env.svc.Events.Delete(ctx, ev.ID))

	tasks, err := env.svc.Tasks.List(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	remaining, err := env.svc.Tasks.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = env.blobs.Open(ctx, doc.Filename)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = env.svc.Events.Get(ctx, ev.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.True(t, errors.Is(env.svc.Events.Delete(ctx, ev.ID), common.ErrNotFound))
}

func TestEventDelete_BlobReleaseFailureIsNotFatal(t *testing.T) {
	repos := memory.NewManager()
	blobs := new(mockBlobStore)
	svc := NewEventService(repos, blobs, logging.Discard())
	ctx := context.Background()

	ev := &models.Event{Name: "Launch", CreatedBy: 1, Documents: []models.Document{{ID: "d1", Filename: "a.pdf"}}}
	require.NoError(t, repos.Events().Create(ctx, ev))
	blobs.On("Delete", mock.Anything, "a.pdf").Return(errors.New("bucket unavailable")).Once()

	require.NoError(t, svc.Delete(ctx, ev.ID))

	blobs.AssertExpectations(t)
	_, err := repos.Events().FindByID(ctx, ev.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestAttachDocument_ListsInUploadOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.event(t, 1, "Launch")

	docs, err := env.svc.Events.ListDocuments(ctx, ev.ID)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	first, err := env.svc.Events.AttachDocument(ctx, ev.ID, strings.NewReader("one"), `C:\Users\me\budget.xlsx`)
	require.NoError(t, err)
	second, err := env.svc.Events.AttachDocument(ctx, ev.ID, strings.NewReader("two"), "floor.png")
	require.NoError(t, err)

	assert.Equal(t, "budget.xlsx", first.OriginalName)
	assert.True(t, strings.HasSuffix(first.Filename, ".xlsx"))
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.UploadedAt.IsZero())

	docs, err = env.svc.Events.ListDocuments(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)

	rc, err := env.svc.Events.OpenDocument(ctx, second.Filename)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "two", string(body))
}

func TestAttachDocument_MissingEventStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Events.AttachDocument(ctx, 404, strings.NewReader("x"), "a.pdf")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = env.svc.Events.AttachDocument(ctx, 404, nil, "a.pdf")
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	blobs, err := env.blobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)

	_, err = env.svc.Events.ListDocuments(ctx, 404)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestAttachDocument_MetadataFailureRemovesBlob(t *testing.T) {
	repos := memory.NewManager()
	blobs := new(mockBlobStore)
	svc := NewEventService(failingUpdates{repos}, blobs, logging.Discard())
	ctx := context.Background()

	ev := &models.Event{Name: "Launch", CreatedBy: 1}
	require.NoError(t, repos.Events().Create(ctx, ev))

	var stored string
	blobs.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) { stored = args.String(1) }).
		Return("/uploads/x.pdf", nil).Once()
	blobs.On("Delete", mock.Anything, mock.MatchedBy(func(h string) bool { return h == stored })).
		Return(nil).Once()

	doc, err := svc.AttachDocument(ctx, ev.ID, strings.NewReader("x"), "x.pdf")

	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "disk full")
	blobs.AssertExpectations(t)

	got, err := repos.Events().FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Documents)
}

func TestOpenDocument_RejectsTraversalBeforeStorage(t *testing.T) {
	blobs := new(mockBlobStore)
	svc := NewEventService(memory.NewManager(), blobs, logging.Discard())

	for _, name := range []string{"", "..", "../../etc/passwd", "a/b", `a\b`, "/etc/passwd"} {
		_, err := svc.OpenDocument(context.Background(), name)
		assert.True(t, errors.Is(err, common.ErrBadRequest), "name %q", name)
	}
	blobs.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestOpenDocument_Missing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Events.OpenDocument(context.Background(), "nope.pdf")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestReferencedHandles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.event(t, 1, "a")
	b := env.event(t, 2, "b")
	d1, err := env.svc.Events.AttachDocument(ctx, a.ID, strings.NewReader("1"), "1.pdf")
	require.NoError(t, err)
	d2, err := env.svc.Events.AttachDocument(ctx, b.ID, strings.NewReader("2"), "2.pdf")
	require.NoError(t, err)

	refs, err := env.svc.Events.ReferencedHandles(ctx)

	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Contains(t, refs, d1.Filename)
	assert.Contains(t, refs, d2.Filename)
}

// Scenario: alice creates an event, tracks two tasks to completion and then
// deletes the event.
func TestScenario_EventLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.signup(t, "Alice", "alice@x.com")
	token, _, err := env.svc.Identity.SignIn(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	claims, err := env.guard.Verify(token)
	require.NoError(t, err)

	ev, err := env.svc.Events.Create(ctx, claims.UserID, EventInput{Name: ptr("Launch"), Budget: ptr(5000.0)})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ev.CreatedBy)

	first, err := env.svc.Tasks.Create(ctx, TaskInput{Name: ptr("Venue"), EventID: &ev.ID, Status: ptr("Pending")})
	require.NoError(t, err)
	_, err = env.svc.Tasks.Create(ctx, TaskInput{Name: ptr("Catering"), EventID: &ev.ID, Status: ptr("Completed")})
	require.NoError(t, err)

	p, err := env.svc.Events.Progress(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.00, p.Completion)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 1, p.Completed)

	_, err = env.svc.Tasks.SetStatus(ctx, first.ID, "Completed")
	require.NoError(t, err)
	p, err = env.svc.Events.Progress(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.00, p.Completion)

	require.NoError(t, env.svc.Events.Delete(ctx, ev.ID))
	tasks, err := env.svc.Tasks.List(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = env.svc.Events.Progress(ctx, ev.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
