// Package model defines data structures for the assistant platform.
package model

import (
	"time"
)

// Author identifies the sender of a transcript message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// State is the turn-taking state of a conversation session.
type State string

const (
	// StateIdle means the session can accept the next utterance.
	StateIdle State = "idle"
	// StateAwaitingAssistant means a turn is in flight; further
	// submissions are rejected until the reply lands.
	StateAwaitingAssistant State = "awaiting_assistant"
)

// Message is one transcript entry. The transcript is append-only and
// ordered by Seq; a typing placeholder is removed and replaced by the
// real reply, never edited in place.
type Message struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	Listings  []Summary `json:"listings,omitempty"`
	Typing    bool      `json:"typing,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRequest is the request to submit one utterance to a session.
// Dictated input arrives through the same field as typed input.
type SubmitRequest struct {
	Text string `json:"text"`
}

// SessionResponse is the rendering view of a session: the ordered
// transcript plus the current turn state.
type SessionResponse struct {
	ID       string    `json:"id"`
	State    State     `json:"state"`
	Messages []Message `json:"messages"`
}
