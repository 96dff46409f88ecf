package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

var (
	verifiedTmpl = template.Must(template.New("verified").Parse(
		`<p>Hi {{.Name}},</p>` +
			`<p>Your placement profile has been verified by the Training &amp; Placement Office. ` +
			`You can now apply to opportunities you are eligible for.</p>`))

	appliedTmpl = template.Must(template.New("applied").Parse(
		`<p>Hi {{.Student}},</p>` +
			`<p>Your application for <strong>{{.Title}}</strong>{{if .Role}} ({{.Role}}){{end}} has been received ` +
			`and is pending review.</p>`))
)

func studentVerifiedEmail(s *domain.Student) (ports.Email, error) {
	var buf bytes.Buffer
	if err := verifiedTmpl.Execute(&buf, struct{ Name string }{s.Name}); err != nil {
		return ports.Email{}, fmt.Errorf("render verified email: %w", err)
	}
	return ports.Email{To: s.Email, Subject: "Your profile has been verified", HTML: buf.String()}, nil
}

func applicationReceivedEmail(s *domain.Student, o *domain.Opportunity) (ports.Email, error) {
	var buf bytes.Buffer
	data := struct{ Student, Title, Role string }{s.Name, o.Title, o.Role}
	if err := appliedTmpl.Execute(&buf, data); err != nil {
		return ports.Email{}, fmt.Errorf("render application email: %w", err)
	}
	return ports.Email{To: s.Email, Subject: "Application received: " + o.Title, HTML: buf.String()}, nil
}
