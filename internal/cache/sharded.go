package cache

import (
	"hash/fnv"
	"time"
)

const defaultShardCount = 16

// Sharded spreads a string-keyed LRU across shards so concurrent readers
// do not serialize on one lock. Message-id lookup keys are already
// strings, so shard selection hashes the key directly.
type Sharded[V any] struct {
	shards []*LRU[string, V]
}

// NewSharded builds a Sharded cache with defaultShardCount shards.
// totalCapacity is split evenly; ttl applies per entry (zero disables
// expiry).
func NewSharded[V any](totalCapacity int, ttl time.Duration) *Sharded[V] {
	return NewShardedWithCount[V](totalCapacity, ttl, defaultShardCount)
}

func NewShardedWithCount[V any](totalCapacity int, ttl time.Duration, shardCount int) *Sharded[V] {
	if shardCount < 1 {
		shardCount = defaultShardCount
	}
	perShard := totalCapacity / shardCount
	if perShard < 1 {
		perShard = 1
	}
	shards := make([]*LRU[string, V], shardCount)
	for i := range shards {
		shards[i] = NewLRU[string, V](perShard, ttl)
	}
	return &Sharded[V]{shards: shards}
}

func (s *Sharded[V]) Get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

func (s *Sharded[V]) Put(key string, value V) {
	s.shard(key).Put(key, value)
}

func (s *Sharded[V]) Remove(key string) {
	s.shard(key).Remove(key)
}

func (s *Sharded[V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Stats sums hit and miss counts across shards.
func (s *Sharded[V]) Stats() (hits, misses int64) {
	for _, shard := range s.shards {
		h, m := shard.Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

func (s *Sharded[V]) shard(key string) *LRU[string, V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}
