package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rs/zerolog"
)

// Service sends transactional email through Resend. With email disabled in
// config it logs what it would have sent and reports success.
type Service struct {
	config       config.EmailConfig
	resendClient *resend.Client
	templates    *template.Template
	logger       zerolog.Logger
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	templates, err := template.New("digest").Parse(digestTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	service := &Service{
		config:    cfg,
		templates: templates,
		logger:    logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		service.resendClient = resend.NewClient(cfg.ResendAPIKey)
	}
	return service, nil
}

// DigestData is the payload for the weekly risk digest template.
type DigestData struct {
	TeamName    string
	Risks       []schedule.Risk
	GeneratedAt string
	CurrentYear int
}

// SendRiskDigest emails a team's current schedule risks to a coach or
// manager. Called by the weekly digest job for teams with at least one risk.
func (s *Service) SendRiskDigest(ctx context.Context, to, teamName string, risks []schedule.Risk) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Info().
			Str("to", to).
			Str("team", teamName).
			Int("risks", len(risks)).
			Msg("email service disabled, skipping risk digest")
		return nil
	}

	now := time.Now()
	data := DigestData{
		TeamName:    teamName,
		Risks:       risks,
		GeneratedAt: now.Format("January 2, 2006"),
		CurrentYear: now.Year(),
	}
	htmlBody, err := s.renderTemplate("digest", data)
	if err != nil {
		return fmt.Errorf("render digest template: %w", err)
	}

	subject := fmt.Sprintf("Schedule alert: %d potential conflict(s) for %s", len(risks), teamName)
	if err := s.sendViaResend(ctx, to, subject, htmlBody, "risk-digest"); err != nil {
		return fmt.Errorf("send risk digest: %w", err)
	}

	s.logger.Info().
		Str("to", to).
		Str("team", teamName).
		Int("risks", len(risks)).
		Msg("risk digest sent")
	return nil
}

func (s *Service) renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validateEmailAddress checks format and rejects header injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}

const digestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>Schedule check for {{.TeamName}}</h2>
  <p>We looked over the upcoming schedule on {{.GeneratedAt}} and found the following:</p>
  <ul>
    {{range .Risks}}
    <li style="margin-bottom: 12px;">
      <strong>{{.Severity}}</strong>: {{.Explanation}}<br>
      <em>{{.Suggestion}}</em>
    </li>
    {{end}}
  </ul>
  <p style="color: #666; font-size: 12px;">Rinkline &copy; {{.CurrentYear}}</p>
</body>
</html>`
