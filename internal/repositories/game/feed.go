package game

import (
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ChangeKind classifies a change notification
type ChangeKind string

const (
	// ChangeKindUpdate indicates the game document was created or mutated
	ChangeKindUpdate ChangeKind = "update"

	// ChangeKindDelete indicates the game document was removed
	ChangeKindDelete ChangeKind = "delete"

	// ChangeKindChat indicates new chat activity for the game
	ChangeKindChat ChangeKind = "chat"
)

// Change is one notification on the game collection's change feed
type Change struct {
	// GameID is the ID of the affected game
	GameID string `json:"gameId"`

	// Kind classifies what happened to the document
	Kind ChangeKind `json:"kind"`

	// SuccessorID is the replacement game ID on deletes, when one exists
	SuccessorID string `json:"successorId,omitempty"`
}

// ChangeFeed streams change notifications until closed
type ChangeFeed struct {
	pubsub    *redis.PubSub
	events    chan Change
	done      chan struct{}
	closeOnce sync.Once
}

func newChangeFeed(pubsub *redis.PubSub) *ChangeFeed {
	feed := &ChangeFeed{
		pubsub: pubsub,
		events: make(chan Change, 64),
		done:   make(chan struct{}),
	}
	go feed.run()
	return feed
}

// Events returns the notification stream. It is closed when the feed closes.
func (f *ChangeFeed) Events() <-chan Change {
	return f.events
}

// Close tears down the subscription and ends the event stream, even when
// the consumer stopped draining it.
func (f *ChangeFeed) Close() error {
	f.closeOnce.Do(func() {
		close(f.done)
	})
	return f.pubsub.Close()
}

func (f *ChangeFeed) run() {
	defer close(f.events)
	for msg := range f.pubsub.Channel() {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			// Garbage on the channel is not ours to crash over
			continue
		}
		select {
		case f.events <- change:
		case <-f.done:
			return
		}
	}
}
