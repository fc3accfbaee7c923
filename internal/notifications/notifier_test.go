package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishClick_NilRedis(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishClick(context.Background(), 1, 2))
}

func TestNotifier_NilReceiver(t *testing.T) {
	// Server wiring leaves the notifier nil without Redis; both entry points
	// must tolerate that.
	var n *Notifier
	assert.NoError(t, n.PublishClick(context.Background(), 1, 2))
	assert.NoError(t, n.StartSubscriber(context.Background(), NewClickHub()))
}

func TestUserIDFromChannel(t *testing.T) {
	t.Parallel()

	id, err := userIDFromChannel("clicks:user:42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = userIDFromChannel("clicks:user:nope")
	assert.Error(t, err)

	_, err = userIDFromChannel("notifications:user:1")
	assert.Error(t, err)
}

func TestNotifier_PublishClick_Payload(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	sub := rdb.Subscribe(context.Background(), "clicks:user:7")
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(context.Background())
	require.NoError(t, err)

	n := NewNotifier(rdb)
	require.NoError(t, n.PublishClick(context.Background(), 7, 3))

	select {
	case msg := <-sub.Channel():
		var event ClickFeedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "click_recorded", event.Type)
		assert.Equal(t, uint(3), event.LinkID)
		assert.WithinDuration(t, time.Now().UTC(), event.ClickedAt, 5*time.Second)
	case <-time.After(time.Second):
		t.Fatal("no click event received")
	}
}
