package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const clickChannelPrefix = "clicks:user:"

// ClickFeedEvent is the wire payload sent over the feed. It names what
// happened, not what changed: the dashboard re-fetches its analytics on
// receipt rather than applying deltas.
type ClickFeedEvent struct {
	Type      string    `json:"type"`
	LinkID    uint      `json:"link_id"`
	ClickedAt time.Time `json:"clicked_at"`
}

// Notifier publishes click events into per-user Redis channels so every
// instance's hub sees clicks recorded anywhere.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client. A nil
// client turns every operation into a no-op (single-instance dev setups).
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishClick announces a recorded click to the owner's channel.
// Safe on a nil receiver: a Notifier built without Redis, or a nil *Notifier
// handed around as the publisher interface, publishes nothing.
func (n *Notifier) PublishClick(ctx context.Context, userID, linkID uint) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ClickFeedEvent{
		Type:      "click_recorded",
		LinkID:    linkID,
		ClickedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal click event: %w", err)
	}
	channel := clickChannelPrefix + strconv.FormatUint(uint64(userID), 10)
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// StartSubscriber subscribes to all per-user click channels and forwards
// each message to the hub until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, hub *ClickHub) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, clickChannelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("panic in click feed subscriber",
								"recover", r, "stack", string(debug.Stack()))
						}
					}()
					userID, err := userIDFromChannel(msg.Channel)
					if err != nil {
						slog.Warn("click feed message on unexpected channel", "channel", msg.Channel)
						return
					}
					hub.Broadcast(userID, []byte(msg.Payload))
				}()
			}
		}
	}()

	return nil
}

func userIDFromChannel(channel string) (uint, error) {
	raw, ok := strings.CutPrefix(channel, clickChannelPrefix)
	if !ok {
		return 0, fmt.Errorf("channel %q lacks prefix %q", channel, clickChannelPrefix)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse user id from channel %q: %w", channel, err)
	}
	return uint(id), nil
}
