package queue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

func TestNew_SelectsMemoryQueue(t *testing.T) {
	q, err := New(config.QueueConfig{Provider: "none"}, zap.NewNop())
	require.NoError(t, err)
	defer q.Close()

	_, ok := q.(*MemoryQueue)
	assert.True(t, ok)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.QueueConfig{Provider: "kafka"}, zap.NewNop())
	assert.Error(t, err)
}

func TestMemoryQueue_FanOut(t *testing.T) {
	q := NewMemoryQueue(zap.NewNop())

	var first, second [][]byte
	require.NoError(t, q.Subscribe(domain.SubjectLeadCreated, func(data []byte) error {
		first = append(first, data)
		return errors.New("handler failures are logged, not propagated")
	}))
	require.NoError(t, q.Subscribe(domain.SubjectLeadCreated, func(data []byte) error {
		second = append(second, data)
		return nil
	}))

	require.NoError(t, q.Publish(domain.SubjectLeadCreated, []byte(`{"type":"lead"}`)))
	require.NoError(t, q.Publish(domain.SubjectRequestCreated, []byte(`{}`)))

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)

	require.NoError(t, q.Ping())
	require.NoError(t, q.Close())
	assert.Error(t, q.Ping())
	assert.Error(t, q.Publish(domain.SubjectLeadCreated, nil))
	assert.Error(t, q.Subscribe(domain.SubjectLeadCreated, func([]byte) error { return nil }))
}
