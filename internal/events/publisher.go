package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/pkg/logger"
)

const (
	// StreamName is the name of the conversation turns stream.
	StreamName = "CHAT_TURNS"

	// SubjectPrefix is the prefix for all turn subjects.
	SubjectPrefix = "chat"
)

// TurnRecord is the published shape of one transcript message.
type TurnRecord struct {
	SessionID string        `json:"session_id"`
	Message   model.Message `json:"message"`
}

// MessageSubject returns the subject for one transcript message.
func MessageSubject(sessionID string, author model.Author) string {
	return fmt.Sprintf("%s.%s.msg.%s", SubjectPrefix, sessionID, author)
}

// Publisher writes committed transcript messages to JetStream. It
// satisfies the session sink interface; publishing is best-effort and
// never blocks a turn on the stream being available.
type Publisher struct {
	client *Client
	logger *logger.Logger
}

// NewPublisher creates a publisher over the given client.
func NewPublisher(client *Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, logger: log}
}

// EnsureStream ensures the turns stream exists.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Conversation transcript messages",
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}

	return nil
}

// Record publishes one transcript message.
func (p *Publisher) Record(ctx context.Context, sessionID string, msg model.Message) {
	data, err := json.Marshal(TurnRecord{SessionID: sessionID, Message: msg})
	if err != nil {
		p.logger.Warn("marshal turn record failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return
	}

	subject := MessageSubject(sessionID, msg.Author)
	if _, err := p.client.JetStream().Publish(ctx, subject, data); err != nil {
		p.logger.Warn("publish turn failed",
			zap.String("session_id", sessionID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
