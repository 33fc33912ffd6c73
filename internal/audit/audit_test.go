package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	require.NoError(t, publisher.Emit(context.Background(), Event{
		OrganizationID: "org-1",
		SurveyID:       "survey-1",
		Action:         EventSurveyCreated,
	}))

	events, err := store.ListByOrganization(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, EventSurveyCreated, events[0].Action)
}

func TestWorkerDrainsChannel(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	inbox <- Event{OrganizationID: "org-1", Action: EventSurveySubmitted, Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		events, err := store.ListByOrganization(context.Background(), "org-1")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestChannelStoreFallsBackWhenFull(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 1)
	cs := NewChannelStore(inbox, store)

	ctx := context.Background()
	require.NoError(t, cs.Append(ctx, Event{OrganizationID: "org-1", Action: EventSurveyCreated}))
	// Channel is full now; the second append must hit the backing store.
	require.NoError(t, cs.Append(ctx, Event{OrganizationID: "org-1", Action: EventSurveyUpdated}))

	events, err := store.ListByOrganization(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventSurveyUpdated, events[0].Action)
}
