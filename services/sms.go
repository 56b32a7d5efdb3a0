package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsMaxLength keeps a notification within a few SMS segments.
const smsMaxLength = 480

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSNotifier texts the site owner through Twilio.
type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

// NewSMSNotifier returns nil unless every TWILIO_* key is set.
func NewSMSNotifier(cfg map[string]string) *SMSNotifier {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM", "")
	to := config.GetString(cfg, "TWILIO_TO", "")
	if sid == "" || token == "" || from == "" || to == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &SMSNotifier{api: client.Api, from: from, to: to}
}

func (s *SMSNotifier) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := n.Subject
	if n.Body != "" {
		body += "\n" + n.Body
	}
	if r := []rune(body); len(r) > smsMaxLength {
		body = string(r[:smsMaxLength-1]) + "…"
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS via Twilio: %w", err)
	}
	if msg != nil && msg.Sid != nil {
		log.Info().Str("sid", *msg.Sid).Msg("Sent SMS notification")
	}
	return nil
}
