package audit

import "context"

// ChannelStore decouples event emission from persistence: Append enqueues
// onto the worker channel and falls back to a synchronous write when the
// channel is full, so events are never dropped. Reads go straight to the
// backing store.
type ChannelStore struct {
	inbox   chan<- Event
	backing Store
}

func NewChannelStore(inbox chan<- Event, backing Store) *ChannelStore {
	return &ChannelStore{inbox: inbox, backing: backing}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return s.backing.Append(ctx, event)
	}
}

func (s *ChannelStore) ListByOrganization(ctx context.Context, organizationID string) ([]Event, error) {
	return s.backing.ListByOrganization(ctx, organizationID)
}
