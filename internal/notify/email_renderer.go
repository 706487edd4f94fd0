package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"form4watch/internal/ai"
	"form4watch/internal/types"
)

// NotificationData carries everything a notification needs to render.
type NotificationData struct {
	Match    types.Match
	Analysis *ai.Analysis
}

// RenderedMessage is a notification ready for delivery.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// HTMLEmailRenderer renders notifications as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("EDGAR Alert: %s - Form %s", data.Match.Company, data.Match.FormType)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(data NotificationData) string {
	m := data.Match
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s - Form %s\n", m.Company, m.FormType))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("CIK: %s\n", m.CIK))
	sb.WriteString(fmt.Sprintf("Filer: %s\n", m.FilerType))
	sb.WriteString(fmt.Sprintf("Accession No: %s\n", m.AccessionNo))
	sb.WriteString(fmt.Sprintf("Updated: %s\n", m.Updated))
	sb.WriteString(fmt.Sprintf("URL: %s\n", m.Link))

	if len(m.KeywordsFound) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(m.KeywordsFound, ", ")))
	}
	sb.WriteString("\n")

	if m.Context != "" {
		sb.WriteString("CONTEXT\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(m.Context + "\n\n")
	}

	if data.Analysis != nil {
		if len(data.Analysis.Summary) > 0 {
			sb.WriteString("AI SUMMARY\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, s := range data.Analysis.Summary {
				sb.WriteString(fmt.Sprintf("- %s\n", s))
			}
			sb.WriteString("\n")
		}

		if len(data.Analysis.NotableSignals) > 0 {
			sb.WriteString("NOTABLE SIGNALS\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, s := range data.Analysis.NotableSignals {
				sb.WriteString(fmt.Sprintf("- %s\n", s))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
