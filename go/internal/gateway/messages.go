package gateway

import (
	"time"

	"github.com/jv-albuquerque/cooldown/go/internal/board"
)

type MessageType string

const (
	MessageSnapshot   MessageType = "snapshot"
	MessageTransition MessageType = "transition"
)

// Message is the JSON frame sent to websocket clients.
type Message struct {
	Type       MessageType       `json:"type"`
	Timestamp  time.Time         `json:"timestamp"`
	Cooldowns  []board.Entry     `json:"cooldowns,omitempty"`
	Transition *board.Transition `json:"transition,omitempty"`
}

func snapshotMessage(entries []board.Entry) *Message {
	return &Message{Type: MessageSnapshot, Timestamp: time.Now().UTC(), Cooldowns: entries}
}

func transitionMessage(t board.Transition) *Message {
	return &Message{Type: MessageTransition, Timestamp: time.Now().UTC(), Transition: &t}
}
