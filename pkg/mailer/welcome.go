package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeSubject = "Welcome to ClearBalance"

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1f2933;">
    <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Your ClearBalance account is ready. Sign in to start tracking
    transactions, categories and savings goals.</p>
    <p style="color: #7b8794; font-size: 12px;">If you did not create this
    account, you can ignore this email.</p>
  </body>
</html>`))

// RenderWelcome renders the welcome template from job data.
func RenderWelcome(data map[string]any) (subject, html string, err error) {
	name := ""
	if v, ok := data["name"]; ok {
		name = fmt.Sprintf("%v", v)
	}
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return "", "", err
	}
	return welcomeSubject, buf.String(), nil
}

// NewWelcomeJob builds the queue payload published after registration.
func NewWelcomeJob(to, name string) EmailJob {
	return EmailJob{
		To:       to,
		Template: "welcome",
		Data:     map[string]any{"name": name},
	}
}
