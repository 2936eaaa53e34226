package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/repository/memory"
)

func TestSend_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "alice@x.com")
	bob := env.signup(t, "Bob", "bob@x.com")

	_, err := env.svc.Messages.Send(ctx, bob.ID, alice.ID, "   ")
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Messages.Send(ctx, bob.ID, bob.ID, "hi me")
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Messages.Send(ctx, bob.ID, 0, "hi")
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Messages.Send(ctx, bob.ID, 999, "hi")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	msg, err := env.svc.Messages.Send(ctx, bob.ID, alice.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.False(t, msg.CreatedAt.IsZero())
}

// newClockedEnv returns services whose store stamps each write one minute
// after the previous one.
func newClockedEnv(t *testing.T, step time.Duration) *Services {
	t.Helper()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	repos := memory.NewManager().WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	})
	guard, err := auth.NewGuard([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return New(repos, nil, guard, logging.Discard())
}

// Scenario: bob sends alice three messages in turn.
func TestScenario_Messaging(t *testing.T) {
	svc := newClockedEnv(t, time.Minute)
	ctx := context.Background()
	alice, err := svc.Identity.Signup(ctx, SignupInput{Name: "Alice", Email: "alice@x.com", Password: "pw1"})
	require.NoError(t, err)
	bob, err := svc.Identity.Signup(ctx, SignupInput{Name: "Bob", Email: "bob@x.com", Password: "pw2"})
	require.NoError(t, err)

	for _, body := range []string{"one", "two", "three"} {
		_, err := svc.Messages.Send(ctx, bob.ID, alice.ID, body)
		require.NoError(t, err)
	}

	thread, err := svc.Messages.Thread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "one", thread[0].Content)
	assert.Equal(t, "three", thread[2].Content)
	assert.True(t, thread[0].CreatedAt.Before(thread[1].CreatedAt))

	reverse, err := svc.Messages.Thread(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, thread, reverse)

	inbox, err := svc.Messages.Inbox(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 3)
	assert.Equal(t, "three", inbox[0].Content)
	assert.Equal(t, "two", inbox[1].Content)
	assert.Equal(t, "one", inbox[2].Content)

	convs, err := svc.Messages.Conversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, bob.ID, convs[0].CounterpartID)
	assert.Equal(t, "Bob", convs[0].CounterpartName)
	assert.Equal(t, "three", convs[0].LastMessage.Content)
}

func TestConversations_GroupsPerCounterpart(t *testing.T) {
	svc := newClockedEnv(t, time.Minute)
	ctx := context.Background()
	var ids []uint
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		u, err := svc.Identity.Signup(ctx, SignupInput{Name: name, Email: name + "@x.com", Password: "pw"})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}
	alice, bob, carol := ids[0], ids[1], ids[2]

	_, err := svc.Messages.Send(ctx, bob, alice, "b1")
	require.NoError(t, err)
	_, err = svc.Messages.Send(ctx, alice, carol, "c1")
	require.NoError(t, err)
	_, err = svc.Messages.Send(ctx, alice, bob, "b2")
	require.NoError(t, err)

	convs, err := svc.Messages.Conversations(ctx, alice)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, bob, convs[0].CounterpartID)
	assert.Equal(t, "b2", convs[0].LastMessage.Content)
	assert.Equal(t, carol, convs[1].CounterpartID)
	assert.Equal(t, "Carol", convs[1].CounterpartName)

	empty, err := svc.Messages.Conversations(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestConversations_TieBreakByCounterpartID(t *testing.T) {
	svc := newClockedEnv(t, 0)
	ctx := context.Background()
	var ids []uint
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		u, err := svc.Identity.Signup(ctx, SignupInput{Name: name, Email: name + "@x.com", Password: "pw"})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	_, err := svc.Messages.Send(ctx, ids[2], ids[0], "from carol")
	require.NoError(t, err)
	_, err = svc.Messages.Send(ctx, ids[1], ids[0], "from bob")
	require.NoError(t, err)

	convs, err := svc.Messages.Conversations(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, ids[1], convs[0].CounterpartID)
	assert.Equal(t, ids[2], convs[1].CounterpartID)
}
