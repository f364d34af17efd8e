// Package notify composes and sends the owner-facing emails. Sending is
// always best-effort: callers run it through async.Run and drop errors.
package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/pkg/email"
)

// LeadNotifier emails the project owner about a new signup.
type LeadNotifier struct {
	sender email.Sender
}

func NewLeadNotifier(sender email.Sender) *LeadNotifier {
	return &LeadNotifier{sender: sender}
}

var leadTmpl = template.Must(template.New("new-lead").Parse(`<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>Yeni bir kayıt var! 🎉</h2>
  <p><strong>{{.ProjectTitle}}</strong> bekleme listenize yeni bir kişi katıldı.</p>
  <table cellpadding="4">
    {{if .Name}}<tr><td><strong>İsim</strong></td><td>{{.Name}}</td></tr>{{end}}
    {{if .Email}}<tr><td><strong>E-posta</strong></td><td>{{.Email}}</td></tr>{{end}}
    {{if .Phone}}<tr><td><strong>Telefon</strong></td><td>{{.Phone}}</td></tr>{{end}}
  </table>
  <p>Tüm kayıtları panelinizden görüntüleyebilirsiniz.</p>
</body>
</html>`))

type leadTmplData struct {
	ProjectTitle string
	Name         string
	Email        string
	Phone        string
}

// NotifyNewLead sends the new-signup email to the project owner.
func (n *LeadNotifier) NotifyNewLead(ctx context.Context, ownerEmail, projectTitle string, l *lead.Lead) error {
	var body strings.Builder
	if err := leadTmpl.Execute(&body, leadTmplData{
		ProjectTitle: projectTitle,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
	}); err != nil {
		return fmt.Errorf("render lead notification: %w", err)
	}

	return n.sender.Send(ctx, email.Message{
		To:       ownerEmail,
		Subject:  fmt.Sprintf("Yeni kayıt: %s", projectTitle),
		BodyHTML: body.String(),
		Tag:      "new-lead",
	})
}
