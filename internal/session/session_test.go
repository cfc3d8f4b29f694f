package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthline/estate-assistant/internal/composer"
	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/pkg/logger"
)

// blockingComposer holds every Compose call until released.
type blockingComposer struct {
	release chan struct{}
	reply   composer.Reply
}

func newBlockingComposer(reply composer.Reply) *blockingComposer {
	return &blockingComposer{release: make(chan struct{}), reply: reply}
}

func (c *blockingComposer) Compose(ctx context.Context, intent model.Intent, utterance string) composer.Reply {
	select {
	case <-c.release:
	case <-ctx.Done():
	}
	return c.reply
}

// instantComposer replies immediately.
type instantComposer struct {
	reply composer.Reply
}

func (c *instantComposer) Compose(ctx context.Context, intent model.Intent, utterance string) composer.Reply {
	return c.reply
}

func noDelay(string) time.Duration { return time.Millisecond }

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.State() == model.StateIdle
	}, 2*time.Second, 5*time.Millisecond)
}

func TestTypingDelay(t *testing.T) {
	words := func(n int) string {
		out := ""
		for i := 0; i < n; i++ {
			out += "word "
		}
		return out
	}

	tests := []struct {
		words int
		want  time.Duration
	}{
		{10, 500 * time.Millisecond},
		{30, 1500 * time.Millisecond},
		{50, 2 * time.Second},
		{0, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TypingDelay(words(tt.words)))
	}
}

func TestSubmit_CompletesTurn(t *testing.T) {
	comp := &instantComposer{reply: composer.Reply{Text: "Hi there!"}}
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(noDelay))
	defer s.Close()

	s.Submit("hello")
	waitIdle(t, s)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, model.AuthorUser, transcript[0].Author)
	assert.Equal(t, "hello", transcript[0].Text)
	assert.Equal(t, model.AuthorAssistant, transcript[1].Author)
	assert.Equal(t, "Hi there!", transcript[1].Text)
	assert.False(t, transcript[1].Typing)

	// Sequence numbers are monotonic.
	assert.Less(t, transcript[0].Seq, transcript[1].Seq)
}

func TestSubmit_BlankIsNoOp(t *testing.T) {
	s := New("sess-1", &instantComposer{}, logger.NewNop(), WithTypingDelay(noDelay))
	defer s.Close()

	s.Submit("")
	s.Submit("   \t ")

	assert.Empty(t, s.Transcript())
	assert.Equal(t, model.StateIdle, s.State())
}

func TestSubmit_TypingIndicatorShownWhileAwaiting(t *testing.T) {
	comp := newBlockingComposer(composer.Reply{Text: "done"})
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(noDelay))
	defer s.Close()

	s.Submit("hello")

	assert.Equal(t, model.StateAwaitingAssistant, s.State())
	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[1].Typing)

	close(comp.release)
	waitIdle(t, s)

	transcript = s.Transcript()
	require.Len(t, transcript, 2)
	assert.False(t, transcript[1].Typing)
	assert.Equal(t, "done", transcript[1].Text)
}

func TestSubmit_SingleFlight(t *testing.T) {
	comp := newBlockingComposer(composer.Reply{Text: "done"})
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(noDelay))
	defer s.Close()

	s.Submit("first")
	// Second submission while awaiting is rejected, not queued.
	s.Submit("second")

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "first", transcript[0].Text)

	close(comp.release)
	waitIdle(t, s)

	// Exactly one user and one assistant message for the accepted call.
	transcript = s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, model.AuthorUser, transcript[0].Author)
	assert.Equal(t, model.AuthorAssistant, transcript[1].Author)
}

func TestClose_PendingComposeDiscarded(t *testing.T) {
	comp := newBlockingComposer(composer.Reply{Text: "late"})
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(noDelay))

	s.Submit("hello")
	before := len(s.Transcript())

	s.Close()
	close(comp.release)

	// The late reply must not land after teardown.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, s.Transcript(), before)
}

func TestClose_PendingTimerCancelled(t *testing.T) {
	comp := &instantComposer{reply: composer.Reply{Text: "late"}}
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(func(string) time.Duration {
		return 30 * time.Millisecond
	}))

	s.Submit("hello")

	// Wait for the compose goroutine to arm the typing timer, then close
	// before it fires.
	require.Eventually(t, func() bool {
		ts := s.Transcript()
		return len(ts) == 2 && ts[1].Typing
	}, time.Second, time.Millisecond)
	s.Close()

	time.Sleep(60 * time.Millisecond)
	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[1].Typing)
}

func TestSubmit_AfterCloseIsNoOp(t *testing.T) {
	s := New("sess-1", &instantComposer{}, logger.NewNop(), WithTypingDelay(noDelay))
	s.Close()

	s.Submit("hello")

	assert.Empty(t, s.Transcript())
}

type recordingSink struct {
	mu   sync.Mutex
	msgs []model.Message
}

func (r *recordingSink) Record(ctx context.Context, sessionID string, msg model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestSink_ReceivesCommittedMessagesOnly(t *testing.T) {
	sink := &recordingSink{}
	comp := &instantComposer{reply: composer.Reply{Text: "done"}}
	s := New("sess-1", comp, logger.NewNop(), WithTypingDelay(noDelay), WithSink(sink))
	defer s.Close()

	s.Submit("hello")
	waitIdle(t, s)

	// User message and assistant reply, but never the typing placeholder.
	require.Eventually(t, func() bool {
		return sink.count() == 2
	}, time.Second, 5*time.Millisecond)
}
