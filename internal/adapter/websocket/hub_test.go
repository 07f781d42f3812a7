package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHub_BroadcastToRegisteredClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan []byte, 1), userID: "admin-1"}
	hub.register <- client

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte(`{"type":"lead.created"}`))

	select {
	case msg := <-client.send:
		assert.JSONEq(t, `{"type":"lead.created"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("expected message to be delivered")
	}

	hub.unregister <- client
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()
	defer hub.Stop()

	slow := &Client{hub: hub, send: make(chan []byte), userID: "admin-2"}
	hub.register <- slow

	hub.Broadcast([]byte("x"))

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_BroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Stop()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast([]byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after stop")
	}
}
