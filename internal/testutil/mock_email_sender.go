package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/paperstack/paperstack/internal/email"
	ierr "github.com/paperstack/paperstack/internal/errors"
)

var _ email.Sender = (*InMemoryEmailSender)(nil)

// InMemoryEmailSender records messages instead of delivering them
type InMemoryEmailSender struct {
	mu       sync.Mutex
	enabled  bool
	failWith error
	messages []*email.Message
}

func NewInMemoryEmailSender() *InMemoryEmailSender {
	return &InMemoryEmailSender{enabled: true}
}

// SetEnabled toggles the sender on or off
func (s *InMemoryEmailSender) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// FailWith makes every following send return err
func (s *InMemoryEmailSender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *InMemoryEmailSender) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *InMemoryEmailSender) GetFromAddress() string {
	return "noreply@paperstack.test"
}

func (s *InMemoryEmailSender) Send(_ context.Context, msg *email.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return "", ierr.NewError("email client is disabled").Mark(ierr.ErrEmailDelivery)
	}
	if s.failWith != nil {
		return "", ierr.WithError(s.failWith).Mark(ierr.ErrEmailDelivery)
	}
	s.messages = append(s.messages, msg)
	return fmt.Sprintf("msg_%d", len(s.messages)), nil
}

// Messages returns the recorded messages
func (s *InMemoryEmailSender) Messages() []*email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*email.Message(nil), s.messages...)
}

// Clear removes recorded messages and resets failures
func (s *InMemoryEmailSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.failWith = nil
	s.enabled = true
}
