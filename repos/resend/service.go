package resend

import (
	"context"
	"errors"
	"fmt"
	"html"

	resend "github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/domain"
)

// EmailSender is the part of the Resend client we use.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Service sends league notifications through Resend.
type Service struct {
	sender  EmailSender
	from    string
	hostURL string
}

// NewService creates a Resend backed notifier.
func NewService(apiKey, from, hostURL string) *Service {
	return NewServiceWithSender(resend.NewClient(apiKey).Emails, from, hostURL)
}

func NewServiceWithSender(sender EmailSender, from, hostURL string) *Service {
	return &Service{
		sender:  sender,
		from:    from,
		hostURL: hostURL,
	}
}

func (s *Service) send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send mail to %s -> %w", to, err)
	}
	return nil
}

// SendInvite mails the invited user a link that accepts the invite.
func (s *Service) SendInvite(ctx context.Context, inv domain.Invite, accessCode string) error {
	url := fmt.Sprintf("%s/invites/access/%s", s.hostURL, accessCode)
	body := getEmailTemplate(
		"You are invited!",
		fmt.Sprintf("%s invited you to race in %s.", inv.Inviter, inv.LeagueName),
		"Join the league",
		url,
	)
	return s.send(ctx, inv.InvitedUser, fmt.Sprintf("Invitation to %s", inv.LeagueName), body)
}

// SendResultsPublished tells every participant that results for a race are
// in. All participants are attempted; the errors are joined.
func (s *Service) SendResultsPublished(ctx context.Context, league *domain.League, raceID string) error {
	track := raceID
	for _, r := range league.Calendar {
		if r.ID == raceID {
			track = r.Track
			break
		}
	}
	url := fmt.Sprintf("%s/leagues/%s/standings", s.hostURL, league.ID)
	body := getEmailTemplate(
		"Results are in",
		fmt.Sprintf("Results for %s in %s have been published.", track, league.Name),
		"See the standings",
		url,
	)
	subject := fmt.Sprintf("%s: results for %s", league.Name, track)

	var errs []error
	for _, p := range league.Participants {
		if err := s.send(ctx, p.Email, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop logs notifications instead of sending them.
type Noop struct{}

func (Noop) SendInvite(_ context.Context, inv domain.Invite, accessCode string) error {
	zap.L().Info("invite notification skipped",
		zap.String("invite_id", inv.ID),
		zap.String("to", inv.InvitedUser),
		zap.String("access_code", accessCode),
	)
	return nil
}

func (Noop) SendResultsPublished(_ context.Context, league *domain.League, raceID string) error {
	zap.L().Info("results notification skipped", zap.String("league_id", league.ID), zap.String("race_id", raceID))
	return nil
}

func getEmailTemplate(heading, message, button, url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #e10600;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>%s</h2>
        <p>%s</p>
        <a href="%s" class="button">%s</a>
        <p>See you on track,<br>Racing League</p>
    </div>
</body>
</html>`, html.EscapeString(heading), html.EscapeString(message), html.EscapeString(url), html.EscapeString(button))
}
