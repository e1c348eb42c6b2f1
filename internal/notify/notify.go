// Package notify delivers outbound game announcements to chat surfaces.
//
// Delivery is fire-and-forget from the game core's perspective: a failed or
// slow consumer never blocks the tick that produced the announcement.
package notify

import "context"

// Style hints how a chat surface should present a message.
type Style string

const (
	// StyleEvent is ambient realm narration.
	StyleEvent Style = "event"
	// StyleAction announces something a specific player did or suffered.
	StyleAction Style = "action"
	// StyleBroadcast is an operator-wide announcement.
	StyleBroadcast Style = "broadcast"
)

// Message is one outbound announcement.
type Message struct {
	ChannelID string `json:"channel_id"`
	Style     Style  `json:"style"`
	// TargetID is the player the message is about, when any.
	TargetID string `json:"target_id,omitempty"`
	// Mention asks the surface to ping the target.
	Mention bool   `json:"mention"`
	Text    string `json:"text"`
}

// Notifier sends announcements to a chat surface.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Discard is a Notifier that drops every message. Useful for tests and for
// running the core without a chat surface attached.
type Discard struct{}

// Send implements Notifier.
func (Discard) Send(context.Context, Message) error { return nil }
