package notify

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"form4watch/internal/ai"
	"form4watch/internal/types"
)

func TestRenderTable(t *testing.T) {
	filings := []types.Filing{
		{
			Company:     "ACME INDUSTRIES INC",
			CIK:         "0000123456",
			FormType:    "4",
			FilerType:   "Issuer",
			AccessionNo: "0000123456-26-000042",
			Updated:     "2026-08-21T11:58:03-04:00",
		},
		{
			Company:     "A VERY LONG COMPANY NAME THAT EXCEEDS THE COLUMN WIDTH",
			CIK:         "0000987654",
			FormType:    "4/A",
			FilerType:   "Reporting",
			AccessionNo: "0000987654-26-000007",
			Updated:     "2026-08-21T10:12:44-04:00",
		},
	}

	var buf bytes.Buffer
	RenderTable(&buf, filings)
	out := buf.String()

	for _, header := range []string{"COMPANY", "CIK", "FORM", "FILER", "ACC-NO", "UPDATED"} {
		if !strings.Contains(out, header) {
			t.Errorf("output missing header %q", header)
		}
	}

	if !strings.Contains(out, "ACME INDUSTRIES INC") {
		t.Error("output missing company name")
	}
	if !strings.Contains(out, "A VERY LONG COMPANY NAME THAT...") {
		t.Errorf("overlong company name not truncated:\n%s", out)
	}
	if strings.Contains(out, "EXCEEDS THE COLUMN WIDTH") {
		t.Error("overlong company name rendered in full")
	}
	if !strings.Contains(out, "2 filing(s)") {
		t.Error("output missing filing count")
	}

	// Every data row starts its CIK column at the same offset.
	lines := strings.Split(out, "\n")
	var cikOffsets []int
	for _, line := range lines {
		if idx := strings.Index(line, "00001234"); idx >= 0 {
			cikOffsets = append(cikOffsets, idx)
		}
		if idx := strings.Index(line, "00009876"); idx >= 0 {
			cikOffsets = append(cikOffsets, idx)
		}
	}
	if len(cikOffsets) != 2 || cikOffsets[0] != cikOffsets[1] {
		t.Errorf("CIK columns not aligned: %v", cikOffsets)
	}
}

func TestFitCell(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exactlyten", 10, "exactlyten"},
		{"truncated", "this is far too long", 10, "this is..."},
		{"tiny width", "abcdef", 2, "ab"},
		{"empty", "", 5, ""},
		{"multi-byte fits", "MÜLLER AG", 10, "MÜLLER AG"},
		{"multi-byte truncated", "SOCIÉTÉ GÉNÉRALE DU CANADA", 10, "SOCIÉTÉ..."},
		{"multi-byte tiny width", "ÅÄÖÜÉ", 2, "ÅÄ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitCell(tt.in, tt.width); got != tt.want {
				t.Errorf("fitCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderTableMultiByteCompany(t *testing.T) {
	filings := []types.Filing{
		{
			Company:     "SOCIÉTÉ GÉNÉRALE DÉVELOPPEMENT INTERNATIONAL SA",
			CIK:         "0000111222",
			FormType:    "4",
			FilerType:   "Issuer",
			AccessionNo: "0000111222-26-000001",
			Updated:     "2026-08-21T09:30:00-04:00",
		},
	}

	var buf bytes.Buffer
	RenderTable(&buf, filings)

	if !utf8.ValidString(buf.String()) {
		t.Error("truncated table output is not valid UTF-8")
	}
	if !strings.Contains(buf.String(), "...") {
		t.Error("overlong multi-byte company name not truncated")
	}
}

func sampleMatch() types.Match {
	return types.Match{
		Filing: types.Filing{
			Company:     "ACME INDUSTRIES INC",
			CIK:         "0000123456",
			FormType:    "4",
			FilerType:   "Issuer",
			AccessionNo: "0000123456-26-000042",
			Updated:     "2026-08-21T11:58:03-04:00",
			Link:        "https://www.sec.gov/Archives/edgar/data/123456/0000123456-26-000042-index.htm",
		},
		KeywordsFound: []string{"acme"},
		Context:       "ACME INDUSTRIES INC (Match found in company name)",
	}
}

func TestRenderPlainText(t *testing.T) {
	data := NotificationData{
		Match: sampleMatch(),
		Analysis: &ai.Analysis{
			Summary:        []string{"Director purchased shares on the open market."},
			NotableSignals: []string{"Purchase follows two earlier buys this month."},
		},
	}

	text := renderPlainText(data)

	for _, want := range []string{
		"ACME INDUSTRIES INC - Form 4",
		"CIK: 0000123456",
		"Accession No: 0000123456-26-000042",
		"Keywords: acme",
		"AI SUMMARY",
		"NOTABLE SIGNALS",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plain text missing %q:\n%s", want, text)
		}
	}
}

func TestRenderPlainTextWithoutAnalysis(t *testing.T) {
	text := renderPlainText(NotificationData{Match: sampleMatch()})

	if strings.Contains(text, "AI SUMMARY") {
		t.Error("plain text should not contain AI section without analysis")
	}
}

func TestHTMLEmailRenderer(t *testing.T) {
	renderer := NewHTMLEmailRenderer()

	msg, err := renderer.Render(NotificationData{Match: sampleMatch()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Subject != "EDGAR Alert: ACME INDUSTRIES INC - Form 4" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "ACME INDUSTRIES INC") {
		t.Error("HTML body missing company name")
	}
	if !strings.Contains(msg.HTML, "0000123456-26-000042") {
		t.Error("HTML body missing accession number")
	}
	if msg.Text == "" {
		t.Error("plain text alternative is empty")
	}
}

func TestEmailSenderDisabled(t *testing.T) {
	sender := NewEmailSender(EmailConfig{Enabled: false})

	if err := sender.Send(&RenderedMessage{Subject: "x", Text: "y"}); err != nil {
		t.Errorf("disabled sender should be a no-op, got %v", err)
	}
}

func TestEmailSenderRejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  EmailConfig
	}{
		{"missing server", EmailConfig{Enabled: true, FromEmail: "a@b.c", ToEmail: "d@e.f"}},
		{"missing recipient", EmailConfig{Enabled: true, SMTPServer: "smtp.example.com", FromEmail: "a@b.c"}},
		{"missing sender", EmailConfig{Enabled: true, SMTPServer: "smtp.example.com", ToEmail: "d@e.f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewEmailSender(tt.cfg)
			err := sender.Send(&RenderedMessage{Subject: "x", Text: "y"})
			if err == nil {
				t.Fatal("expected an error for incomplete configuration")
			}
			if !strings.Contains(err.Error(), "invalid email configuration") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
