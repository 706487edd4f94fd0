/*
Package notify handles rendering of filings and matches to the console and
email notifications for new matches.
*/
package notify

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"form4watch/internal/types"
)

type column struct {
	header string
	width  int
	value  func(types.Filing) string
}

var tableColumns = []column{
	{"COMPANY", 32, func(f types.Filing) string { return f.Company }},
	{"CIK", 11, func(f types.Filing) string { return f.CIK }},
	{"FORM", 6, func(f types.Filing) string { return f.FormType }},
	{"FILER", 10, func(f types.Filing) string { return f.FilerType }},
	{"ACC-NO", 21, func(f types.Filing) string { return f.AccessionNo }},
	{"UPDATED", 25, func(f types.Filing) string { return f.Updated }},
}

// RenderTable writes the filings as a fixed-width text table. Overlong values
// are truncated with an ellipsis.
func RenderTable(w io.Writer, filings []types.Filing) {
	var widths int
	for _, col := range tableColumns {
		fmt.Fprintf(w, "%-*s  ", col.width, col.header)
		widths += col.width + 2
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", widths-2))

	for _, f := range filings {
		for _, col := range tableColumns {
			fmt.Fprintf(w, "%-*s  ", col.width, fitCell(col.value(f), col.width))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%d filing(s)\n", len(filings))
}

// fitCell truncates on rune boundaries so multi-byte company names never
// produce invalid UTF-8 mid-table.
func fitCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func ReportMatches(matches []types.AnnotatedMatch, historyFilePath string) {
	if len(matches) == 0 {
		fmt.Println("\n-------------------------------------------")
		fmt.Println("No new matching keywords found in any filing today.")
		fmt.Println("-------------------------------------------")
		return
	}

	fmt.Println("\n===========================================")
	fmt.Printf("%d MATCHES FOUND\n", len(matches))
	fmt.Println("===========================================")

	for i, am := range matches {
		match := am.Match

		aiSummaryOutput := ""
		signalOutput := ""

		if am.Analysis != nil {
			analysis := am.Analysis

			if len(analysis.Summary) > 0 {
				aiSummaryOutput = fmt.Sprintf("AI Summary:\n%s", formatBulletList(analysis.Summary))
			}

			if len(analysis.NotableSignals) > 0 {
				signalOutput = fmt.Sprintf("Notable Signals:\n%s", formatSignals(analysis.NotableSignals))
			}
		}

		consoleOutput := fmt.Sprintf("\n--- MATCH #%d ---\n", i+1) +
			fmt.Sprintf("Company: %s\n", match.Company) +
			fmt.Sprintf("CIK:     %s\n", match.CIK) +
			fmt.Sprintf("Form:    %s (%s)\n", match.FormType, match.FilerType) +
			fmt.Sprintf("Acc-No:  %s\n", match.AccessionNo) +
			fmt.Sprintf("Updated: %s\n", match.Updated) +
			fmt.Sprintf("URL:     %s\n", match.Link) +
			fmt.Sprintf("Keywords: %s\n", strings.Join(match.KeywordsFound, ", ")) +
			fmt.Sprintf("Context Snippet:\n\t%s\n", match.Context) +
			aiSummaryOutput +
			signalOutput

		fmt.Print(consoleOutput)
	}

	fmt.Println("\n===========================================")
	fmt.Printf("Search complete. History saved to %s.\n", historyFilePath)
	fmt.Println("===========================================")
}

func formatBulletList(points []string) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("\t- %s\n", p))
	}
	return sb.String()
}

func formatSignals(signals []string) string {
	if len(signals) == 0 {
		return "N/A"
	}
	var sb strings.Builder
	for _, s := range signals {
		sb.WriteString(fmt.Sprintf("\t- %s\n", s))
	}
	return sb.String()
}

func EmailMatches(matches []types.AnnotatedMatch, emailConfig EmailConfig) {
	if !emailConfig.Enabled {
		return
	}
	log.Printf("Emailing matches (SMTP: %s:%d).", emailConfig.SMTPServer, emailConfig.SMTPPort)

	renderer := NewHTMLEmailRenderer()
	sender := NewEmailSender(emailConfig)

	var wg sync.WaitGroup

	for _, am := range matches {
		wg.Add(1)

		go func(data NotificationData) {
			defer wg.Done()

			msg, err := renderer.Render(data)
			if err != nil {
				log.Printf("Email error: failed to render message for %s: %v", data.Match.Company, err)
				return
			}

			if err := sender.Send(msg); err != nil {
				log.Printf("Email error: failed to send message for %s: %v", data.Match.Company, err)
			}
		}(NotificationData{Match: am.Match, Analysis: am.Analysis})
	}
	wg.Wait()
}
