package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

type Sender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSender(host, port, username, password, from string) *Sender {
	return &Sender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
        .header { background-color: #0b7285; color: white; padding: 10px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { padding: 20px; }
        .footer { margin-top: 20px; font-size: 0.8em; color: #777; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Atmosphere!</h1>
        </div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            {{if .Business}}
            <p>Your business account is ready. Create promotions to reach people sharing photos near you, and start a circle for your regulars.</p>
            {{else}}
            <p>Find circles that match your interests, RSVP to events nearby and share what you see.</p>
            {{end}}
        </div>
        <div class="footer">
            <p>&copy; Atmosphere</p>
        </div>
    </div>
</body>
</html>
`))

// buildWelcome returns the subject and the full MIME message.
func (s *Sender) buildWelcome(to, name string, business bool) (string, []byte, error) {
	var body bytes.Buffer
	data := struct {
		Name     string
		Business bool
	}{name, business}
	if err := welcomeTemplate.Execute(&body, data); err != nil {
		return "", nil, fmt.Errorf("failed to execute template: %w", err)
	}

	subject := "Welcome to Atmosphere"
	if business {
		subject = "Your Atmosphere business account"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return subject, []byte(msg.String()), nil
}

// SendWelcomeEmail greets a new user. Without an SMTP host the message is
// only logged.
func (s *Sender) SendWelcomeEmail(to, name string, business bool) error {
	subject, message, err := s.buildWelcome(to, name, business)
	if err != nil {
		return err
	}

	if s.Host == "" {
		log.Printf("email: mock send to %s: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, []string{to}, message)
}
