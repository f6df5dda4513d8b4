package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Subscriber receives events for the games it is registered against.
// Implementations must not block inside Deliver; a subscriber that cannot
// accept an event immediately drops it.
type Subscriber interface {
	// Deliver offers an event and reports whether it was accepted
	Deliver(event Event) bool
}

// RegistryConfig holds configuration for the session registry
type RegistryConfig struct {
	// Logger receives registry logs; defaults to a no-op logger
	Logger *zap.Logger
}

// Registry maps game IDs to their live subscribers. It is constructed once
// at startup and injected wherever subscriptions or broadcasts happen.
type Registry struct {
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[Subscriber]struct{}
}

// NewRegistry creates an empty session registry
func NewRegistry(cfg *RegistryConfig) *Registry {
	logger := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &Registry{
		logger: logger,
		subs:   make(map[string]map[Subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for a game's events.
func (r *Registry) Subscribe(gameID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[gameID]
	if !ok {
		set = make(map[Subscriber]struct{})
		r.subs[gameID] = set
	}
	set[sub] = struct{}{}
}

// Unsubscribe removes a subscriber from one game.
func (r *Registry) Unsubscribe(gameID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[gameID]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(r.subs, gameID)
	}
}

// DropAll removes a subscriber from every game it is registered against.
// Called when a connection goes away.
func (r *Registry) DropAll(sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for gameID, set := range r.subs {
		delete(set, sub)
		if len(set) == 0 {
			delete(r.subs, gameID)
		}
	}
}

// Count returns the number of subscribers registered for a game.
func (r *Registry) Count(gameID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[gameID])
}

// Broadcast delivers an event to every subscriber of its game. Subscribers
// that refuse the event are skipped; one slow consumer never stalls the rest.
func (r *Registry) Broadcast(event Event) {
	r.mu.RLock()
	targets := make([]Subscriber, 0, len(r.subs[event.GameID]))
	for sub := range r.subs[event.GameID] {
		targets = append(targets, sub)
	}
	r.mu.RUnlock()

	dropped := 0
	for _, sub := range targets {
		if !sub.Deliver(event) {
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Debug("dropped event for slow subscribers",
			zap.String("game_id", event.GameID),
			zap.String("event_type", string(event.Type)),
			zap.Int("dropped", dropped))
	}
}
