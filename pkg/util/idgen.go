package util

import (
	"sync"
	"time"
)

// IDGenerator hands out unique int64 record ids. The legacy scheme used
// the raw wall clock, which could collide when two records were created
// in the same millisecond; this generator stays monotonic within the
// process. Ids remain millisecond-epoch shaped so existing records sort
// alongside new ones.
type IDGenerator interface {
	NextID() int64
}

type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewIDGenerator() IDGenerator {
	return &idGenerator{}
}

func (g *idGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
