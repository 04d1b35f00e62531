package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Senders
const (
	SenderBot  = "bot"
	SenderUser = "user"
)

var (
	// ErrEmptyMessage is returned for input that is blank after trimming.
	ErrEmptyMessage = errors.New("empty message")
	// ErrSessionNotFound is returned when reading an unknown session.
	ErrSessionNotFound = errors.New("session not found")
)

// Message is one line of a conversation.
type Message struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Exchange is the result of sending one message.
type Exchange struct {
	SessionID  string    `json:"session_id"`
	Reply      Message   `json:"reply"`
	Transcript []Message `json:"transcript"`
}

// Sessions holds conversations in memory, keyed by session id.
type Sessions struct {
	logger     *zap.Logger
	responder  *Responder
	replyDelay time.Duration

	mu       sync.Mutex
	sessions map[string][]Message
}

// NewSessions creates a session store. replyDelay simulates the assistant
// "typing" before its answer is appended.
func NewSessions(logger *zap.Logger, responder *Responder, replyDelay time.Duration) *Sessions {
	return &Sessions{
		logger:     logger,
		responder:  responder,
		replyDelay: replyDelay,
		sessions:   make(map[string][]Message),
	}
}

// Send trims text, appends it to the session (creating the session when id
// is empty or unknown), waits the reply delay and appends the bot's answer.
func (s *Sessions) Send(ctx context.Context, id, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, ErrEmptyMessage
	}
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.sessions[id] = []Message{{Sender: SenderBot, Text: Greeting, SentAt: time.Now()}}
	}
	s.sessions[id] = append(s.sessions[id], Message{Sender: SenderUser, Text: text, SentAt: time.Now()})
	s.mu.Unlock()

	answer := s.responder.Respond(text)

	if s.replyDelay > 0 {
		timer := time.NewTimer(s.replyDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Exchange{}, ctx.Err()
		case <-timer.C:
		}
	}

	reply := Message{Sender: SenderBot, Text: answer, SentAt: time.Now()}

	s.mu.Lock()
	s.sessions[id] = append(s.sessions[id], reply)
	transcript := append([]Message(nil), s.sessions[id]...)
	s.mu.Unlock()

	s.logger.Debug("Chat reply", zap.String("session", id), zap.String("input", text))

	return Exchange{SessionID: id, Reply: reply, Transcript: transcript}, nil
}

// Transcript returns a copy of a session's messages.
func (s *Sessions) Transcript(id string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return append([]Message(nil), msgs...), nil
}
