package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog/log"
)

type contactStore interface {
	Add(message *models.ContactMessage) error
}

// ContactService stores contact form submissions and tells the owner.
type ContactService struct {
	store    contactStore
	notifier Notifier
}

// NewContactService accepts a nil notifier, in which case messages are
// only stored.
func NewContactService(store contactStore, notifier Notifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// Submit validates and persists the message. Notification failures are
// logged but do not fail the submission: the message is already saved.
func (s *ContactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := s.store.Add(msg); err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	n := Notification{
		Subject: fmt.Sprintf("New contact from %s", msg.Name),
		Body:    fmt.Sprintf("From: %s <%s>\nCategory: %s\n\n%s", msg.Name, msg.Email, msg.Category, msg.Message),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		log.Error().Err(err).Str("contactId", msg.ID.String()).Msg("Failed to notify about contact message")
	}
	return nil
}
