// Package chat keeps the client-side conversation state of one terminal
// session. Nothing here is persisted or sent back to the relay: each question
// is asked on its own.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Texts shown by the client.
const (
	Greeting             = "Hello! I'm your Virtual Legal Assistant. I can help you understand legal topics and connect you with qualified lawyers. What legal matter can I assist you with today?"
	NewGreeting          = "Hello! I'm ready to help with your new legal question. Please describe your situation or ask your question."
	FallbackReply        = "Sorry, I could not generate an answer right now. Please try again in a moment."
	ServiceErrorReply    = "There was an error contacting the legal assistant service. Please try again or contact a lawyer directly."
	firstTitle           = "General Legal Inquiry"
	newTitle             = "New Legal Inquiry"
	newConversationLabel = "New conversation started"
)

type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

type Conversation struct {
	ID          string
	Title       string
	LastMessage string
	UpdatedAt   time.Time
	Messages    []Message
}

// Asker is satisfied by *client.Client.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Reply asks one question and always returns displayable text: transport and
// relay errors become ServiceErrorReply, an empty answer becomes FallbackReply.
func Reply(ctx context.Context, asker Asker, question string, log *zap.Logger) string {
	answer, err := asker.Ask(ctx, question)
	if err != nil {
		if log != nil {
			log.Error("legal assistant request failed", zap.Error(err))
		}
		return ServiceErrorReply
	}
	if answer == "" {
		return FallbackReply
	}
	return answer
}

// Session holds the conversations of one client run. It is not safe for
// concurrent use; callers own it from a single goroutine.
type Session struct {
	conversations []*Conversation
	current       *Conversation
	now           func() time.Time
}

func NewSession() *Session {
	s := &Session{now: time.Now}
	c := s.newConversation(firstTitle, Greeting)
	c.LastMessage = Greeting
	return s
}

func (s *Session) Current() *Conversation { return s.current }

// Conversations returns the conversations newest first.
func (s *Session) Conversations() []*Conversation { return s.conversations }

// NewConversation starts an empty conversation and makes it current.
func (s *Session) NewConversation() *Conversation {
	c := s.newConversation(newTitle, NewGreeting)
	c.LastMessage = newConversationLabel
	return c
}

func (s *Session) newConversation(title, greeting string) *Conversation {
	now := s.now()
	c := &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		UpdatedAt: now,
		Messages: []Message{{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Content:   greeting,
			Timestamp: now,
		}},
	}
	s.conversations = append([]*Conversation{c}, s.conversations...)
	s.current = c
	return c
}

// Select makes the conversation with id current.
func (s *Session) Select(id string) bool {
	if c := s.find(id); c != nil {
		s.current = c
		return true
	}
	return false
}

// Submit appends the user's text to the current conversation. Blank input is
// ignored and reported with ok=false. The returned message carries the text
// as typed; only blankness is checked.
func (s *Session) Submit(text string) (msg Message, ok bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	msg = Message{ID: uuid.NewString(), Role: RoleUser, Content: text, Timestamp: s.now()}
	s.current.Messages = append(s.current.Messages, msg)
	return msg, true
}

// Deliver appends an assistant reply to the conversation it was asked in,
// even if another conversation has become current meanwhile.
func (s *Session) Deliver(conversationID, content string) (Message, bool) {
	c := s.find(conversationID)
	if c == nil {
		return Message{}, false
	}
	now := s.now()
	msg := Message{ID: uuid.NewString(), Role: RoleAssistant, Content: content, Timestamp: now}
	c.Messages = append(c.Messages, msg)
	c.LastMessage = content
	c.UpdatedAt = now
	return msg, true
}

func (s *Session) find(id string) *Conversation {
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}
