package notify

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 64

// Hub fans announcements out to channel subscribers. It implements Notifier.
//
// Delivery is best-effort: a subscriber whose buffer is full misses the
// message rather than stalling the sender.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
	log  *logrus.Logger
}

// Subscription is one attached consumer of a channel's announcements.
type Subscription struct {
	C chan Message

	hub     *Hub
	channel string
	once    sync.Once
}

// NewHub creates an announcement hub.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
		log:  log,
	}
}

// Subscribe attaches a consumer to the named channel.
func (h *Hub) Subscribe(channelID string) *Subscription {
	sub := &Subscription{
		C:       make(chan Message, subscriberBuffer),
		hub:     h,
		channel: channelID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[channelID] == nil {
		h.subs[channelID] = make(map[*Subscription]struct{})
	}
	h.subs[channelID][sub] = struct{}{}
	return sub
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if set, ok := s.hub.subs[s.channel]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.subs, s.channel)
			}
		}
		close(s.C)
	})
}

// Send implements Notifier by broadcasting the message to every subscriber
// of its channel. It never blocks and never fails.
func (h *Hub) Send(_ context.Context, msg Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[msg.ChannelID] {
		select {
		case sub.C <- msg:
		default:
			if h.log != nil {
				h.log.WithField("channel", msg.ChannelID).Warn("dropping announcement for slow subscriber")
			}
		}
	}
	return nil
}

// SubscriberCount reports how many consumers are attached to a channel.
func (h *Hub) SubscriberCount(channelID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channelID])
}
