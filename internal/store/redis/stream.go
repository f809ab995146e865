package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// MessageStream is the fan-out surface for dispatched-message facts: a sync
// session publishes each stored chunk, and downstream consumers (relayers,
// checkpoint observers) read at their own pace using a checkpointed offset.
type MessageStream interface {
	PublishJSON(ctx context.Context, stream string, v any) (string, error)
	ReadJSON(ctx context.Context, stream, lastID string, dst any) (string, error)
	LoadStreamCheckpoint(ctx context.Context, key string) (string, error)
	PersistStreamCheckpoint(ctx context.Context, key, value string) error
	Close() error
}

const payloadField = "payload"

// readBlockInterval bounds each blocking XREAD so context cancellation is
// observed promptly even on an idle stream.
const readBlockInterval = 2 * time.Second

// streamMaxLen caps stream length so an absent consumer cannot grow the
// backing store without bound. A reader further behind than the cap loses
// the trimmed entries.
const streamMaxLen = 100_000

// Stream is the Redis-backed MessageStream.
type Stream struct {
	client *redis.Client
}

var _ MessageStream = (*Stream)(nil)

func NewStream(url string) (*Stream, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Stream{client: client}, nil
}

func (s *Stream) Close() error {
	return s.client.Close()
}

func (s *Stream) Client() *redis.Client {
	return s.client
}

// PublishJSON appends v to the stream as a single JSON payload field and
// returns the assigned stream entry id.
func (s *Stream) PublishJSON(ctx context.Context, stream string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal stream payload: %w", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{payloadField: data},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", stream, err)
	}
	return id, nil
}

// ReadJSON blocks until an entry after lastID arrives, unmarshals its payload
// into dst, and returns the entry id to resume from.
func (s *Stream) ReadJSON(ctx context.Context, stream, lastID string, dst any) (string, error) {
	if lastID == "" {
		lastID = "0"
	}

	for {
		res, err := s.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{stream, lastID},
			Count:   1,
			Block:   readBlockInterval,
		}).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("xread %s: %w", stream, err)
		}
		if len(res) == 0 || len(res[0].Messages) == 0 {
			continue
		}

		msg := res[0].Messages[0]
		payload, err := streamPayload(msg.Values[payloadField])
		if err != nil {
			return "", fmt.Errorf("entry %s: %w", msg.ID, err)
		}
		if err := json.Unmarshal(payload, dst); err != nil {
			return "", fmt.Errorf("unmarshal entry %s: %w", msg.ID, err)
		}
		return msg.ID, nil
	}
}

// LoadStreamCheckpoint returns the persisted resume offset for key, or the
// empty string when none exists.
func (s *Stream) LoadStreamCheckpoint(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load checkpoint %s: %w", key, err)
	}
	return value, nil
}

// PersistStreamCheckpoint stores the resume offset for key. An empty key is
// a no-op so callers without checkpointing configured need no branch.
func (s *Stream) PersistStreamCheckpoint(ctx context.Context, key, value string) error {
	if key == "" {
		return nil
	}
	if err := validateStreamOffset(value); err != nil {
		return fmt.Errorf("persist checkpoint %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("persist checkpoint %s: %w", key, err)
	}
	return nil
}

// parseStreamOffset extracts the numeric position from a stream offset.
// Compound entry ids ("<ms>-<seq>") reduce to their leading part, and
// negative values clamp to zero so a stale checkpoint restarts from the top.
func parseStreamOffset(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, nil
		}
		return v, nil
	}

	head, _, found := strings.Cut(s, "-")
	if found {
		v, err := strconv.ParseInt(head, 10, 64)
		if err == nil {
			if v < 0 {
				return 0, nil
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid stream offset %q", s)
}

// validateStreamOffset rejects offsets that Redis would refuse: anything
// other than an empty string, a non-negative integer, or "<ms>-<seq>".
func validateStreamOffset(s string) error {
	if s == "" {
		return nil
	}
	head, tail, compound := strings.Cut(s, "-")
	if _, err := strconv.ParseUint(head, 10, 64); err != nil {
		return fmt.Errorf("invalid stream offset %q", s)
	}
	if compound {
		if _, err := strconv.ParseUint(tail, 10, 64); err != nil {
			return fmt.Errorf("invalid stream offset %q", s)
		}
	}
	return nil
}

// streamPayload normalizes the payload field value returned by a stream
// backend. Redis hands values back as strings; the in-memory backend keeps
// raw bytes.
func streamPayload(v any) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return p, nil
	case string:
		return []byte(p), nil
	case fmt.Stringer:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("payload type %T not supported", v)
	}
}
