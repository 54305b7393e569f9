// Package chat hosts advisor conversations: the append-only message log per
// session and the HTTP/WebSocket surface of the chat widget.
package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// GreetingID is the id of the message every session opens with. It is never
// sent to the remote advisor as history.
const GreetingID = "1"

const GreetingText = "Bienvenue chez TimeTravel Agency. Je suis votre conseiller temporel personnel propulsé par l'IA. Comment puis-je vous assister dans la planification de votre voyage à travers le temps ?"

var (
	ErrSessionNotFound = errors.New("chat: session not found")
	ErrEmptyMessage    = errors.New("chat: message text is empty")
)

// Message is one immutable log entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(text string, sender Sender, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: now.UTC(),
	}
}

func greeting(now time.Time) Message {
	return Message{
		ID:        GreetingID,
		Text:      GreetingText,
		Sender:    SenderBot,
		Timestamp: now.UTC(),
	}
}
