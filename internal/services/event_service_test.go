package services

import (
	"sync"
	"testing"
	"time"

	"github.com/isdelr/blogit-be/internal/models"
	"github.com/stretchr/testify/require"
)

type captureBroadcaster struct {
	mu     sync.Mutex
	events []models.Event
}

func (c *captureBroadcaster) BroadcastEvent(event models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func TestCreateEvent_StoresAndBroadcasts(t *testing.T) {
	t.Parallel()
	capture := &captureBroadcaster{}
	svc := NewEventService(newTestDB(t), capture)

	postID := "post-1"
	require.NoError(t, svc.CreateEvent("blog.create", "info", "Blog published", "a@x.com", &postID))

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "blog.create", events[0].Type)
	require.Equal(t, "a@x.com", events[0].Actor)
	require.NotNil(t, events[0].PostID)
	require.Equal(t, postID, *events[0].PostID)

	require.Len(t, capture.events, 1)
	require.Equal(t, "blog.create", capture.events[0].Type)
}

func TestCreateEvent_NilBroadcaster(t *testing.T) {
	t.Parallel()
	svc := NewEventService(newTestDB(t), nil)

	require.NoError(t, svc.CreateEvent("user.login", "info", "Author logged in", "a@x.com", nil))
}

func TestGetRecentEvents_LimitAndOrder(t *testing.T) {
	t.Parallel()
	svc := NewEventService(newTestDB(t), nil)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, svc.CreateEvent("user.login", "info", msg, "a@x.com", nil))
		time.Sleep(5 * time.Millisecond)
	}

	events, err := svc.GetRecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "three", events[0].Message)
	require.Equal(t, "two", events[1].Message)
}

func TestPruneEventsBefore(t *testing.T) {
	t.Parallel()
	svc := NewEventService(newTestDB(t), nil)

	require.NoError(t, svc.CreateEvent("user.login", "info", "old enough", "a@x.com", nil))
	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now().UTC()
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.CreateEvent("user.login", "info", "too fresh", "a@x.com", nil))

	removed, err := svc.PruneEventsBefore(cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "too fresh", events[0].Message)
}
