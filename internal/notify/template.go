package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// detail is one label/value row in an email body.
type detail struct {
	Label string
	Value string
}

// emailData feeds the shared quote email template.
type emailData struct {
	Title          string
	Intro          string
	Details        []detail
	TrackingNumber string
	TrackingURL    string
	Outro          string
}

// quoteEmailTemplate is the shared layout for every lifecycle email. The
// tracking block renders only when a tracking number is present.
var quoteEmailTemplate = template.Must(template.New("quote-email").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <div style="background-color:#1e3a5f;color:#ffffff;padding:20px 24px;border-radius:8px 8px 0 0;">
      <h1 style="margin:0;font-size:20px;">ModestCargo</h1>
    </div>
    <div style="background-color:#ffffff;padding:24px;border-radius:0 0 8px 8px;">
      <h2 style="margin-top:0;font-size:18px;color:#1e3a5f;">{{.Title}}</h2>
      <p style="color:#374151;">{{.Intro}}</p>
      {{if .Details}}
      <table style="width:100%;border-collapse:collapse;margin:16px 0;">
        {{range .Details}}
        <tr>
          <td style="padding:8px 12px;border-bottom:1px solid #e5e7eb;color:#6b7280;width:40%;">{{.Label}}</td>
          <td style="padding:8px 12px;border-bottom:1px solid #e5e7eb;color:#111827;">{{.Value}}</td>
        </tr>
        {{end}}
      </table>
      {{end}}
      {{if .TrackingNumber}}
      <div style="background-color:#eff6ff;border:1px dashed #1e3a5f;border-radius:8px;padding:16px;text-align:center;margin:16px 0;">
        <p style="margin:0 0 4px 0;color:#6b7280;font-size:13px;">Tracking number</p>
        <p style="margin:0;font-size:20px;font-weight:bold;letter-spacing:1px;color:#1e3a5f;">{{.TrackingNumber}}</p>
        {{if .TrackingURL}}<p style="margin:8px 0 0 0;"><a href="{{.TrackingURL}}" style="color:#1e3a5f;">Track your shipment</a></p>{{end}}
      </div>
      {{end}}
      {{if .Outro}}<p style="color:#374151;">{{.Outro}}</p>{{end}}
      <p style="color:#9ca3af;font-size:12px;margin-bottom:0;">This is an automated message from ModestCargo. Please do not reply directly to this email.</p>
    </div>
  </div>
</body>
</html>`))

// renderEmail executes the shared template against one event's data.
func renderEmail(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := quoteEmailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify.renderEmail: %w", err)
	}
	return buf.String(), nil
}
