// Package events provides the in-process publish/subscribe registry the
// social graph service announces successful mutations on. Delivery is
// best-effort to currently registered subscribers; there is no persistence
// or replay of missed events, and nothing crosses process boundaries.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChannelSocialGraph is the fixed channel name relationship events are
// published under.
const ChannelSocialGraph = "social-graph"

// Action identifies the mutation an event announces.
type Action string

const (
	ActionFollow   Action = "follow"
	ActionUnfollow Action = "unfollow"
)

// FollowEvent announces a settled follow-edge mutation.
type FollowEvent struct {
	Action      Action    `json:"action"`
	FollowerID  uuid.UUID `json:"followerId"`
	FollowingID uuid.UUID `json:"followingId"`
	Timestamp   time.Time `json:"timestamp"`
}

// Broadcaster fans FollowEvents out to registered subscribers. Subscribers
// are invoked synchronously on the publishing goroutine, so handlers should
// be cheap (typically flagging a view for re-fetch).
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]func(FollowEvent)
	next int
}

// NewBroadcaster creates an empty Broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(FollowEvent))}
}

// Subscribe registers fn and returns an unsubscribe func. Unsubscribing more
// than once is a no-op.
func (b *Broadcaster) Subscribe(fn func(FollowEvent)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every subscriber registered at the time of the
// call.
func (b *Broadcaster) Publish(ev FollowEvent) {
	b.mu.RLock()
	fns := make([]func(FollowEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// SubscriberCount reports how many subscribers are currently registered.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
