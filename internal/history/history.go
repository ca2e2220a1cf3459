// internal/history/history.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActionRecord holds the minimal info a downstream consumer needs to replay
// what happened at a table: which session, which seat, what they did.
type ActionRecord struct {
	SessionID   uuid.UUID              `json:"session_id"`
	RoomName    string                 `json:"room_name"`
	ActionIndex int                    `json:"action_index"`
	Seat        int                    `json:"seat"`
	ActionType  string                 `json:"action_type"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Timestamp   int64                  `json:"timestamp"`
}

// Recorder pushes action records onto a Redis list for out-of-process
// consumers. A nil Recorder is valid and drops everything, so callers never
// branch on whether history is configured.
type Recorder struct {
	rdb   *redis.Client
	queue string
}

// Connect initializes a recorder against the given Redis address and verifies
// the connection with a ping.
func Connect(addr string, db int, queue string) (*Recorder, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Recorder{rdb: rdb, queue: queue}, nil
}

// Record serializes the record to JSON and pushes it onto the queue. This does
// not block the calling logic beyond a quick network send.
func (r *Recorder) Record(ctx context.Context, record ActionRecord) error {
	if r == nil {
		return nil
	}
	record.Timestamp = time.Now().Unix()
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	if err := r.rdb.RPush(ctx, r.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list %q: %w", r.queue, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.rdb.Close()
}
