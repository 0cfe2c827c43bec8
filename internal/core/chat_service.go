package core

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/prompt"
)

const (
	ChatGreeting = "Hey there! How's it going? 👋"
	ChatApology  = "Sorry, I'm having trouble responding right now."
)

type Chat struct {
	ID         string              `json:"id"`
	Difficulty model.Difficulty    `json:"difficulty"`
	Messages   []model.ChatMessage `json:"messages"`
	CreatedAt  time.Time           `json:"created_at"`
}

// SendResult holds the message appended for the reply. Reply is nil when the chat was reset
// or deleted while the reply was being generated.
type SendResult struct {
	Reply *model.ChatMessage `json:"reply"`
	Chat  Chat               `json:"chat"`
}

type session struct {
	busy sync.Mutex

	mu         sync.Mutex
	chat       Chat
	generation int
	deleted    bool
}

func (s *session) snapshot() Chat {
	c := s.chat
	c.Messages = append([]model.ChatMessage(nil), s.chat.Messages...)
	return c
}

type ChatService struct {
	completer gemini.Completer
	logger    *logger.LogMiddleware
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewChatService(completer gemini.Completer, log *logger.LogMiddleware) *ChatService {
	return &ChatService{
		completer: completer,
		logger:    log,
		now:       time.Now,
		sessions:  make(map[string]*session),
		entropy:   ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (s *ChatService) newMessage(sender model.Sender, text string) model.ChatMessage {
	now := s.now()
	s.idMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
	s.idMu.Unlock()
	return model.ChatMessage{ID: id, Sender: sender, Text: text, Timestamp: now}
}

// CreateChat starts a practice conversation that opens with the match's greeting.
func (s *ChatService) CreateChat(ctx context.Context, difficulty model.Difficulty) Chat {
	sess := &session{chat: Chat{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		Messages:   []model.ChatMessage{s.newMessage(model.SenderMatch, ChatGreeting)},
		CreatedAt:  s.now(),
	}}

	s.mu.Lock()
	s.sessions[sess.chat.ID] = sess
	s.mu.Unlock()

	s.logger.Logger(ctx).Info("[Chat] Created chat", zap.String("chatID", sess.chat.ID), zap.String("difficulty", string(difficulty)))
	return sess.snapshot()
}

func (s *ChatService) lookup(chatID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	return sess, nil
}

func (s *ChatService) GetChat(chatID string) (Chat, error) {
	sess, err := s.lookup(chatID)
	if err != nil {
		return Chat{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Send appends the user's message and the match's reply. Only one send per chat may be in
// flight; a second one gets ErrBusy.
func (s *ChatService) Send(ctx context.Context, chatID, content string) (SendResult, error) {
	if strings.TrimSpace(content) == "" {
		return SendResult{}, ErrEmptyInput
	}
	sess, err := s.lookup(chatID)
	if err != nil {
		return SendResult{}, err
	}
	if !sess.busy.TryLock() {
		return SendResult{}, ErrBusy
	}
	defer sess.busy.Unlock()

	log := s.logger.Logger(ctx).With(zap.String("chatID", chatID))

	sess.mu.Lock()
	sess.chat.Messages = append(sess.chat.Messages, s.newMessage(model.SenderUser, content))
	history := append([]model.ChatMessage(nil), sess.chat.Messages...)
	difficulty := sess.chat.Difficulty
	generation := sess.generation
	sess.mu.Unlock()

	text, err := s.completer.Generate(ctx, gemini.Request{Prompt: prompt.ChatTurn(history, difficulty)})
	text = strings.TrimSpace(text)
	var reply model.ChatMessage
	switch {
	case err != nil:
		log.Error("[Chat] Failed to generate reply", zap.Error(err))
		reply = s.newMessage(model.SenderSystem, ChatApology)
	case text == "":
		log.Warn("[Chat] Empty reply from model")
		reply = s.newMessage(model.SenderSystem, ChatApology)
	default:
		reply = s.newMessage(model.SenderMatch, text)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.deleted || sess.generation != generation {
		log.Info("[Chat] Discarding reply for a chat that was reset")
		return SendResult{Chat: sess.snapshot()}, nil
	}
	sess.chat.Messages = append(sess.chat.Messages, reply)
	return SendResult{Reply: &reply, Chat: sess.snapshot()}, nil
}

// Reset clears the conversation back to the greeting. A reply still in flight is dropped.
func (s *ChatService) Reset(ctx context.Context, chatID string) (Chat, error) {
	sess, err := s.lookup(chatID)
	if err != nil {
		return Chat{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.generation++
	sess.chat.Messages = []model.ChatMessage{s.newMessage(model.SenderMatch, ChatGreeting)}
	s.logger.Logger(ctx).Info("[Chat] Reset chat", zap.String("chatID", chatID))
	return sess.snapshot(), nil
}

func (s *ChatService) Delete(ctx context.Context, chatID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[chatID]
	delete(s.sessions, chatID)
	s.mu.Unlock()
	if !ok {
		return ErrChatNotFound
	}

	sess.mu.Lock()
	sess.deleted = true
	sess.mu.Unlock()
	s.logger.Logger(ctx).Info("[Chat] Deleted chat", zap.String("chatID", chatID))
	return nil
}
