package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Notification is a short message for the site owner.
type Notification struct {
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Notifiers sends to every channel and joins their errors, so one broken
// channel does not silence the others.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notification) error {
	var errList []error
	for _, notifier := range ns {
		if err := notifier.Notify(ctx, n); err != nil {
			log.Warn().Err(err).Str("subject", n.Subject).Msg("Notification channel failed")
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
