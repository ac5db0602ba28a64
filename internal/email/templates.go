package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const subjectLeadAlert = "New course lead"

var leadAlertTemplate = template.Must(template.New("lead_alert").Parse(`
<h2>New lead from the landing page</h2>
<table cellpadding="4">
  <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
  <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
  <tr><td><strong>Occupation</strong></td><td>{{.Job}}</td></tr>
  {{if .Source}}<tr><td><strong>Source</strong></td><td>{{.Source}}</td></tr>{{end}}
</table>
{{if .Synced}}
<p>The lead was delivered to amoCRM.</p>
{{else}}
<p><strong>CRM delivery failed:</strong> {{.SyncError}}. The lead is stored locally and needs manual follow-up.</p>
{{end}}
`))

func renderLeadAlert(alert LeadAlert) (string, error) {
	var buf bytes.Buffer
	if err := leadAlertTemplate.Execute(&buf, alert); err != nil {
		return "", fmt.Errorf("render lead alert: %w", err)
	}
	return buf.String(), nil
}
