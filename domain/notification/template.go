package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
	"time"
)

// TemplateData contains all the fields available for email template rendering
type TemplateData struct {
	Greeting       string // Dynamic greeting based on recipient count
	DateFormatted  string // e.g., "12/28/2025"
	Format         string
	Folder         string
	CompletedCount int
	FailedCount    int
	Completed      []ItemLine
	Failed         []ItemLine
	Elapsed        string // e.g., "1m12s"
	SenderName     string
}

// EmailTemplate contains the templates for rendering emails
type EmailTemplate struct {
	SubjectFormat string
	PlainText     string
	HTML          string
}

// DefaultTemplate is the standard end-of-run summary
var DefaultTemplate = EmailTemplate{
	SubjectFormat: "Audio conversion {{.DateFormatted}}: {{.CompletedCount}} converted{{if .FailedCount}}, {{.FailedCount}} failed{{end}}",
	PlainText: `{{.Greeting}}

The {{.Format}} conversion finished in {{.Elapsed}}. Files were written to {{.Folder}}.
{{if .Completed}}
Converted:
{{range .Completed}}  - {{.Source}} -> {{.Output}}{{if .URL}} ({{.URL}}){{end}}
{{end}}{{end}}{{if .Failed}}
Failed:
{{range .Failed}}  - {{.Source}}: {{.Message}}
{{end}}{{end}}
Thanks!
~{{.SenderName}}`,
	HTML: `<div dir="ltr">{{.Greeting}}<br><br>
The {{.Format}} conversion finished in {{.Elapsed}}. Files were written to {{.Folder}}.<br>
{{if .Completed}}<p>Converted:</p><ul>
{{range .Completed}}<li>{{.Source}} &rarr; {{if .URL}}<a href="{{.URL}}">{{.Output}}</a>{{else}}{{.Output}}{{end}}</li>
{{end}}</ul>{{end}}{{if .Failed}}<p>Failed:</p><ul>
{{range .Failed}}<li>{{.Source}}: {{.Message}}</li>
{{end}}</ul>{{end}}
Thanks!<br>
~{{.SenderName}}</div>`,
}

// FormatGreeting creates an appropriate greeting based on number of recipients
// 1 recipient: "Dear John,"
// 2 recipients: "Dear John & Jane,"
// 3+ recipients: "Hey Everyone!"
func FormatGreeting(recipients []Recipient) string {
	switch len(recipients) {
	case 0:
		return "Hello,"
	case 1:
		return fmt.Sprintf("Dear %s,", getFirstName(recipients[0].Name))
	case 2:
		return fmt.Sprintf("Dear %s & %s,", getFirstName(recipients[0].Name), getFirstName(recipients[1].Name))
	default:
		return "Hey Everyone!"
	}
}

// getFirstName extracts the first name from a full name
func getFirstName(fullName string) string {
	if fullName == "" {
		return "Friend"
	}
	first, _, _ := strings.Cut(fullName, " ")
	return first
}

// FormatElapsed rounds a run duration for display
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

// NewTemplateData builds the template fields of a summary email
func NewTemplateData(req *SummaryEmail) TemplateData {
	return TemplateData{
		Greeting:       FormatGreeting(req.To),
		DateFormatted:  req.FinishedAt.Format("01/02/2006"),
		Format:         req.Format,
		Folder:         req.Folder,
		CompletedCount: len(req.Completed),
		FailedCount:    len(req.Failed),
		Completed:      req.Completed,
		Failed:         req.Failed,
		Elapsed:        FormatElapsed(req.Elapsed),
		SenderName:     req.SenderName,
	}
}

// RenderSubject renders the email subject using the template
func (t *EmailTemplate) RenderSubject(data TemplateData) (string, error) {
	return renderTemplate("subject", t.SubjectFormat, data)
}

// RenderPlainText renders the plain text email body
func (t *EmailTemplate) RenderPlainText(data TemplateData) (string, error) {
	return renderTemplate("plaintext", t.PlainText, data)
}

// RenderHTML renders the HTML email body, escaping file names and messages
func (t *EmailTemplate) RenderHTML(data TemplateData) (string, error) {
	tmpl, err := htmltemplate.New("html").Parse(t.HTML)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func renderTemplate(name, tmplStr string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
