package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/session"
)

const (
	sessionKeyPrefix     = "portfolio:session:"        // Identity for a session: portfolio:session:{session_id}
	sessionChannelPrefix = "portfolio:session:events:" // Pub/Sub channel for session changes: portfolio:session:events:{session_id}
)

// SessionRepository keeps signed-in identities in Redis and publishes every change.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl, now: time.Now}
}

func (r *SessionRepository) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *SessionRepository) sessionChannel(sessionID string) string {
	return sessionChannelPrefix + sessionID
}

// Get returns the identity bound to sessionID, or nil when signed out or unknown.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal([]byte(data), &id); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &id, nil
}

// Save binds id to sessionID until the session TTL or the token expiry, whichever is first.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, id *domain.Identity) error {
	ttl := r.ttl
	if !id.ExpiresAt.IsZero() {
		if untilExpiry := id.ExpiresAt.Sub(r.now()); untilExpiry < ttl {
			ttl = untilExpiry
		}
	}
	if ttl <= 0 {
		return fmt.Errorf("identity for session already expired")
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return r.publish(ctx, sessionID, id)
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.publish(ctx, sessionID, nil)
}

func (r *SessionRepository) publish(ctx context.Context, sessionID string, id *domain.Identity) error {
	event, err := json.Marshal(domain.SessionEvent{SessionID: sessionID, Identity: id})
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}
	if err := r.client.Publish(ctx, r.sessionChannel(sessionID), event).Err(); err != nil {
		return fmt.Errorf("failed to publish session event: %w", err)
	}
	return nil
}

// Subscribe listens on the session channel, then emits the stored state followed by every
// published change. Listening starts before the read so no change is lost in between.
func (r *SessionRepository) Subscribe(ctx context.Context, sessionID string) (session.Subscription, error) {
	pubsub := r.client.Subscribe(ctx, r.sessionChannel(sessionID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to session: %w", err)
	}

	current, err := r.Get(ctx, sessionID)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &subscription{
		pubsub:  pubsub,
		updates: make(chan *domain.Identity),
		stop:    make(chan struct{}),
	}
	go sub.forward(current)
	return sub, nil
}

type subscription struct {
	pubsub    *redis.PubSub
	updates   chan *domain.Identity
	stop      chan struct{}
	closeOnce sync.Once
}

func (s *subscription) Updates() <-chan *domain.Identity { return s.updates }

func (s *subscription) forward(current *domain.Identity) {
	defer close(s.updates)

	if !s.send(current) {
		return
	}

	messages := s.pubsub.Channel()
	for {
		select {
		case <-s.stop:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.SessionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if !s.send(event.Identity) {
				return
			}
		}
	}
}

func (s *subscription) send(id *domain.Identity) bool {
	select {
	case s.updates <- id:
		return true
	case <-s.stop:
		return false
	}
}

func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.pubsub.Close()
	})
	return err
}
