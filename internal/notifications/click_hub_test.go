package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickHub_RegisterUnregister(t *testing.T) {
	hub := NewClickHub()

	client, err := hub.Register(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	second, err := hub.Register(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount(1))

	hub.Unregister(client)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	// Double unregister must not corrupt counts.
	hub.Unregister(client)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	hub.Unregister(second)
	assert.Equal(t, 0, hub.ConnectionCount(1))
}

func TestClickHub_PerUserLimit(t *testing.T) {
	hub := NewClickHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestClickHub_BroadcastTargetsOneUser(t *testing.T) {
	hub := NewClickHub()

	mine, err := hub.Register(1, nil)
	require.NoError(t, err)
	theirs, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.Broadcast(1, []byte(`{"type":"click_recorded"}`))

	select {
	case msg := <-mine.send:
		assert.JSONEq(t, `{"type":"click_recorded"}`, string(msg))
	default:
		t.Fatal("owner connection received nothing")
	}

	select {
	case <-theirs.send:
		t.Fatal("other user's connection must not receive the event")
	default:
	}
}

func TestClickHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewClickHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	// Nothing drains client.send; the hub must keep going regardless.
	for i := 0; i < cap(client.send)+10; i++ {
		hub.Broadcast(1, []byte("x"))
	}
	assert.Equal(t, cap(client.send), len(client.send))
}
