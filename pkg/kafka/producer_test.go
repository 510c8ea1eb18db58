package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultProducerConfig(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"localhost:9092"})

	// Session events are small and low-volume; synchronous sends with
	// short batches keep publish latency off the checkout path.
	assert.False(t, cfg.Async)
	assert.Equal(t, 16, cfg.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.BatchTimeout)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}
