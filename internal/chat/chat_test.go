package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespond(t *testing.T) {
	r := NewResponder(DefaultRules, Fallback)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"StockDefinition", "what is a stock", DefaultRules[3].Response},
		{"StockDefinitionUpper", "WHAT ARE STOCKS?", DefaultRules[3].Response},
		{"Fallback", "xyz123", Fallback},
		{"StockTradingBeatsTrading", "What is stock trading and what is trading?", DefaultRules[0].Response},
		{"Trading", "so what is trading", DefaultRules[1].Response},
		{"HowToBuy", "How do I buy shares", DefaultRules[2].Response},
		{"BuyBeatsStockDefinition", "how to buy, and what is a stock", DefaultRules[2].Response},
		{"Portfolio", "show my portfolio", DefaultRules[4].Response},
		{"Tutorial", "any tutorials?", DefaultRules[5].Response},
		{"Greeting", "hello there", DefaultRules[6].Response},
		{"Empty", "", Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Respond(tt.input))
		})
	}
}

func TestRespond_CustomLadder(t *testing.T) {
	r := NewResponder([]Rule{{Keywords: []string{"ping"}, Response: "pong"}}, "?")
	assert.Equal(t, "pong", r.Respond("PING"))
	assert.Equal(t, "?", r.Respond("hello"))
}

func TestSessions_Send(t *testing.T) {
	s := NewSessions(zap.NewNop(), NewResponder(DefaultRules, Fallback), 0)

	ex, err := s.Send(context.Background(), "", "  what is a stock  ")
	require.NoError(t, err)
	assert.NotEmpty(t, ex.SessionID)
	assert.Equal(t, SenderBot, ex.Reply.Sender)
	assert.Equal(t, DefaultRules[3].Response, ex.Reply.Text)

	require.Len(t, ex.Transcript, 3)
	assert.Equal(t, Greeting, ex.Transcript[0].Text)
	assert.Equal(t, "what is a stock", ex.Transcript[1].Text)
	assert.Equal(t, SenderUser, ex.Transcript[1].Sender)

	ex2, err := s.Send(context.Background(), ex.SessionID, "xyz123")
	require.NoError(t, err)
	assert.Equal(t, Fallback, ex2.Reply.Text)
	assert.Len(t, ex2.Transcript, 5)

	msgs, err := s.Transcript(ex.SessionID)
	require.NoError(t, err)
	assert.Equal(t, ex2.Transcript, msgs)
}

func TestSessions_EmptyMessage(t *testing.T) {
	s := NewSessions(zap.NewNop(), NewResponder(DefaultRules, Fallback), 0)

	_, err := s.Send(context.Background(), "abc", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.Transcript("abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_ReplyDelay(t *testing.T) {
	s := NewSessions(zap.NewNop(), NewResponder(DefaultRules, Fallback), 20*time.Millisecond)

	start := time.Now()
	_, err := s.Send(context.Background(), "", "hi")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSessions_CancelledWhileWaiting(t *testing.T) {
	s := NewSessions(zap.NewNop(), NewResponder(DefaultRules, Fallback), time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Send(ctx, "sess", "hi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the user's message was recorded, the reply was not
	msgs, err := s.Transcript("sess")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}
