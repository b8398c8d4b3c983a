package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/railsathi/railsathi/internal/config"
)

type Email struct {
	To      []string
	From    string
	CC      []string
	BCC     []string
	Subject string
	Body    string
}

// ComplaintCreatedPayload is the task body enqueued on complaint
// creation and consumed by the notification worker.
type ComplaintCreatedPayload struct {
	ComplainID  uint   `json:"complain_id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Description string `json:"description"`
}

var complaintCreatedTmpl = template.Must(template.New("complaint_created").Parse(`
<p>A new passenger complaint has been registered.</p>
<ul>
	<li>Complaint ID: {{.ComplainID}}</li>
	<li>Passenger: {{.Name}}</li>
	<li>Mobile: {{.Mobile}}</li>
</ul>
<p>{{.Description}}</p>
`))

// SendComplaintCreatedEmail notifies the configured recipients about a
// newly registered complaint. Called from the queue worker.
func (u Usecase) SendComplaintCreatedEmail(ctx context.Context, p ComplaintCreatedPayload) error {
	if u.mailProvider == nil {
		return fmt.Errorf("mail provider not configured")
	}

	recipients := strings.Split(os.Getenv(config.ENV_KEY_COMPLAINT_NOTIFY_EMAILS), ",")
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		u.logger.WarnContext(ctx, "no complaint notification recipients configured")
		return nil
	}

	var body bytes.Buffer
	if err := complaintCreatedTmpl.Execute(&body, p); err != nil {
		return fmt.Errorf("render notification email: %w", err)
	}

	return u.mailProvider.SendEmail(ctx, Email{
		To:      to,
		From:    os.Getenv(config.ENV_KEY_SMTP_FROM),
		Subject: fmt.Sprintf("New complaint #%d registered", p.ComplainID),
		Body:    body.String(),
	})
}
