package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// InMemoryStream is a process-local MessageStream. It backs single-process
// deployments that want stream fan-out without a Redis instance, and tests.
type InMemoryStream struct {
	mu          sync.Mutex
	streams     map[string][]inMemoryEntry
	checkpoints map[string]string
	seq         int64
	wakeup      chan struct{}
}

type inMemoryEntry struct {
	id      string
	seq     int64
	payload []byte
}

var _ MessageStream = (*InMemoryStream)(nil)

func NewInMemoryStream() *InMemoryStream {
	return &InMemoryStream{
		streams:     make(map[string][]inMemoryEntry),
		checkpoints: make(map[string]string),
		wakeup:      make(chan struct{}),
	}
}

func (s *InMemoryStream) PublishJSON(_ context.Context, stream string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal stream payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry := inMemoryEntry{
		id:      fmt.Sprintf("%d-0", s.seq),
		seq:     s.seq,
		payload: data,
	}
	s.streams[stream] = append(s.streams[stream], entry)
	if over := len(s.streams[stream]) - streamMaxLen; over > 0 {
		s.streams[stream] = append([]inMemoryEntry(nil), s.streams[stream][over:]...)
	}

	// Wake every blocked reader; each re-checks its stream.
	close(s.wakeup)
	s.wakeup = make(chan struct{})

	return entry.id, nil
}

func (s *InMemoryStream) ReadJSON(ctx context.Context, stream, lastID string, dst any) (string, error) {
	after, err := parseStreamOffset(lastID)
	if err != nil {
		return "", err
	}

	for {
		s.mu.Lock()
		for _, entry := range s.streams[stream] {
			if entry.seq > after {
				payload := entry.payload
				id := entry.id
				s.mu.Unlock()
				if err := json.Unmarshal(payload, dst); err != nil {
					return "", fmt.Errorf("unmarshal entry %s: %w", id, err)
				}
				return id, nil
			}
		}
		wake := s.wakeup
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-wake:
		}
	}
}

func (s *InMemoryStream) LoadStreamCheckpoint(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkpoints[key], nil
}

func (s *InMemoryStream) PersistStreamCheckpoint(_ context.Context, key, value string) error {
	if key == "" {
		return nil
	}
	if err := validateStreamOffset(value); err != nil {
		return fmt.Errorf("persist checkpoint %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[key] = value
	return nil
}

func (s *InMemoryStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams = make(map[string][]inMemoryEntry)
	s.checkpoints = make(map[string]string)
	return nil
}
