package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/arthurarakelov/burlington-ballers/config"
	"github.com/arthurarakelov/burlington-ballers/models"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP. It implements
// EmailSender for the notification scheduler.
type EmailService struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	website  string

	rsvpReminderTmpl       *template.Template
	attendanceReminderTmpl *template.Template
	gameChangeTmpl         *template.Template
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		dialer:                 gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:                   cfg.SMTPFrom,
		fromName:               cfg.SMTPFromName,
		website:                cfg.WebsiteURL,
		rsvpReminderTmpl:       template.Must(template.New("rsvpReminder").Parse(rsvpReminderHTML)),
		attendanceReminderTmpl: template.Must(template.New("attendanceReminder").Parse(attendanceReminderHTML)),
		gameChangeTmpl:         template.Must(template.New("gameChange").Parse(gameChangeHTML)),
	}
}

type emailData struct {
	UserName     string
	GameTitle    string
	GameDate     string
	GameTime     string
	GameLocation string
	Changes      string
	WebsiteURL   string
	Year         int
}

func (s *EmailService) data(userName string, game models.Game, changes string) emailData {
	return emailData{
		UserName:     userName,
		GameTitle:    game.Title,
		GameDate:     game.Date,
		GameTime:     game.Time,
		GameLocation: game.Location,
		Changes:      changes,
		WebsiteURL:   s.website,
		Year:         time.Now().Year(),
	}
}

func (s *EmailService) SendRSVPReminder(ctx context.Context, toEmail, userName string, game models.Game) error {
	subject := fmt.Sprintf("Are you in? %s tomorrow", game.Title)
	return s.send(toEmail, subject, s.rsvpReminderTmpl, s.data(userName, game, ""))
}

func (s *EmailService) SendAttendanceReminder(ctx context.Context, toEmail, userName string, game models.Game) error {
	subject := fmt.Sprintf("See you tomorrow: %s", game.Title)
	return s.send(toEmail, subject, s.attendanceReminderTmpl, s.data(userName, game, ""))
}

func (s *EmailService) SendGameChangeNotification(ctx context.Context, toEmail, userName string, game models.Game, changes string) error {
	subject := fmt.Sprintf("Heads up: %s was updated", game.Title)
	return s.send(toEmail, subject, s.gameChangeTmpl, s.data(userName, game, changes))
}

func (s *EmailService) send(to, subject string, tmpl *template.Template, data emailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

const rsvpReminderHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 30px;">
    <h2 style="color: #e65100; margin-top: 0;">🏀 {{.GameTitle}}</h2>
    <p>Hey {{.UserName}},</p>
    <p>There's a game tomorrow and you haven't responded yet:</p>
    <p style="background: #fff3e0; padding: 15px; border-radius: 6px;">
      <strong>{{.GameLocation}}</strong><br>
      {{.GameDate}} at {{.GameTime}}
    </p>
    <p><a href="https://{{.WebsiteURL}}" style="background: #e65100; color: #ffffff; padding: 10px 20px; border-radius: 6px; text-decoration: none;">RSVP now</a></p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Burlington Ballers. Manage email preferences in your settings.</p>
  </div>
</body>
</html>`

const attendanceReminderHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 30px;">
    <h2 style="color: #2e7d32; margin-top: 0;">🏀 {{.GameTitle}}</h2>
    <p>Hey {{.UserName}},</p>
    <p>You're confirmed for tomorrow's game:</p>
    <p style="background: #e8f5e9; padding: 15px; border-radius: 6px;">
      <strong>{{.GameLocation}}</strong><br>
      {{.GameDate}} at {{.GameTime}}
    </p>
    <p>See you on the court!</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Burlington Ballers. Manage email preferences in your settings.</p>
  </div>
</body>
</html>`

const gameChangeHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 30px;">
    <h2 style="color: #1565c0; margin-top: 0;">🏀 {{.GameTitle}}</h2>
    <p>Hey {{.UserName}},</p>
    <p>A game you're attending was updated: <strong>{{.Changes}}</strong></p>
    <p style="background: #e3f2fd; padding: 15px; border-radius: 6px;">
      <strong>{{.GameLocation}}</strong><br>
      {{.GameDate}} at {{.GameTime}}
    </p>
    <p><a href="https://{{.WebsiteURL}}" style="background: #1565c0; color: #ffffff; padding: 10px 20px; border-radius: 6px; text-decoration: none;">View game</a></p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Burlington Ballers. Manage email preferences in your settings.</p>
  </div>
</body>
</html>`
