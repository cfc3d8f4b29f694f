// Package session implements the per-conversation transcript and its
// turn-taking state machine.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hearthline/estate-assistant/internal/composer"
	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/internal/nlu"
	"github.com/hearthline/estate-assistant/pkg/logger"
	"github.com/hearthline/estate-assistant/pkg/metrics"
)

// typingIndicatorText is the placeholder body shown while the reply is
// being composed.
const typingIndicatorText = "..."

// Typing delay bounds: 50ms per reply word, clamped to [500ms, 2s].
const (
	typingPerWord = 50 * time.Millisecond
	typingFloor   = 500 * time.Millisecond
	typingCeiling = 2 * time.Second
)

// Composer produces the assistant reply for one classified utterance.
type Composer interface {
	Compose(ctx context.Context, intent model.Intent, utterance string) composer.Reply
}

// Sink receives committed transcript messages, e.g. for an audit stream.
// Implementations must be safe for concurrent use; typing placeholders
// are not forwarded.
type Sink interface {
	Record(ctx context.Context, sessionID string, msg model.Message)
}

// Option configures a Session.
type Option func(*Session)

// WithSink attaches a message sink.
func WithSink(sink Sink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithTypingDelay overrides the typing-indicator delay function. Used by
// tests to avoid real waits.
func WithTypingDelay(fn func(text string) time.Duration) Option {
	return func(s *Session) { s.typingWait = fn }
}

// Session owns one conversation exclusively: its ordered transcript and
// turn state. The transcript and the state flag always change together
// under mu, and at most one turn is in flight at a time.
type Session struct {
	id      string
	compose Composer
	logger  *logger.Logger

	typingWait func(text string) time.Duration
	sink       Sink

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	state    model.State
	messages []model.Message
	timer    *time.Timer
	closed   bool
}

// New creates an idle session with an empty transcript.
func New(id string, compose Composer, log *logger.Logger, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:         id,
		compose:    compose,
		logger:     log,
		typingWait: TypingDelay,
		state:      model.StateIdle,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TypingDelay is the presentation delay shown before a reply of the
// given text.
func TypingDelay(text string) time.Duration {
	d := time.Duration(len(strings.Fields(text))) * typingPerWord
	if d < typingFloor {
		return typingFloor
	}
	if d > typingCeiling {
		return typingCeiling
	}
	return d
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current turn state.
func (s *Session) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the ordered transcript.
func (s *Session) Transcript() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Seed appends an assistant message outside the turn machine. Used for
// the opening greeting.
func (s *Session) Seed(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.append(model.AuthorAssistant, text, nil, false)
}

// Submit ingests one user utterance, fire-and-forget. Blank input is
// ignored, as is any input arriving while a turn is already in flight:
// rapid submissions are rejected, not queued. Effects are observed
// through the transcript.
func (s *Session) Submit(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.closed || s.state != model.StateIdle {
		s.mu.Unlock()
		return
	}
	s.state = model.StateAwaitingAssistant
	s.append(model.AuthorUser, text, nil, false)
	placeholder := s.append(model.AuthorAssistant, typingIndicatorText, nil, true)
	s.mu.Unlock()

	go s.respond(text, placeholder.ID)
}

func (s *Session) respond(text, placeholderID string) {
	intent := nlu.Classify(text)
	metrics.TurnsTotal.WithLabelValues(string(intent)).Inc()
	s.logger.Debug("turn classified", zap.String("intent", string(intent)))

	reply := s.compose.Compose(s.ctx, intent, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	delay := s.typingWait(reply.Text)
	metrics.TypingDelaySeconds.Observe(delay.Seconds())
	s.timer = time.AfterFunc(delay, func() {
		s.deliver(placeholderID, reply)
	})
}

// deliver replaces the typing placeholder with the real reply and
// returns the session to idle.
func (s *Session) deliver(placeholderID string, reply composer.Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for i, msg := range s.messages {
		if msg.ID == placeholderID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			break
		}
	}
	s.append(model.AuthorAssistant, reply.Text, reply.Listings, false)
	s.state = model.StateIdle
}

// append creates and stores the next message. Callers must hold mu.
func (s *Session) append(author model.Author, text string, listings []model.Summary, typing bool) model.Message {
	s.seq++
	msg := model.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Seq:       s.seq,
		Author:    author,
		Text:      text,
		Listings:  listings,
		Typing:    typing,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, msg)
	metrics.MessagesTotal.WithLabelValues(string(author)).Inc()

	if s.sink != nil && !typing {
		go s.sink.Record(s.ctx, s.id, msg)
	}
	return msg
}

// Close tears the session down: the in-flight compose is cancelled via
// the session context, any pending typing timer is stopped, and no
// further message can land on the transcript.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.cancel()
	s.logger.Debug("session closed")
}
