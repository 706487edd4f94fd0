package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"form4watch/internal/edgar"
	"form4watch/internal/history"
	"form4watch/internal/notify"
	"form4watch/internal/types"
)

const (
	toolName = "form4watch"
	timezone = "America/New_York"
)

var (
	tickerFilter = flag.String("ticker", "", "(-t) Only show filings whose company name contains this text (case-insensitive)")
	minValue     = flag.Float64("min-value", 0, "(-m) Only show filings with a transaction value of at least this many dollars")
	keywordStr   = flag.String("keywords", "", "(-k) Comma-separated list of keywords or exact phrases to alert on")
	formType     = flag.String("form", "4", "Form type to request from the feed")
	feedCount    = flag.Int("count", 40, "Number of feed entries to request")
	feedURL      = flag.String("feed-url", "", "Override the EDGAR feed base URL (mirrors, testing)")
	showHelp     = flag.Bool("help", false, "(-h) Show usage and exit")

	smtpServer = flag.String("smtp-server", "smtp.gmail.com", "SMTP server address (default: smtp.gmail.com)")
	smtpPort   = flag.Int("smtp-port", 587, "SMTP server port (default: 587)")
	smtpUser   = flag.String("smtp-user", "", "SMTP username (email address)")
	smtpPass   = flag.String("smtp-pass", "", "SMTP password or App Password")
	toEmail    = flag.String("to-email", "", "Recipient email address")
	fromEmail  = flag.String("from-email", "", "Sender email address (default: smtp-user)")

	geminiAPIKey = flag.String("gemini-api-key", "", "Gemini API key for AI analysis of matches (optional)")
	geminiModel  = flag.String("gemini-model", "gemini-2.0-flash", "Gemini model name")
)

func init() {
	flag.StringVar(tickerFilter, "t", "", "(-t) Only show filings whose company name contains this text (shorthand)")
	flag.Float64Var(minValue, "m", 0, "(-m) Only show filings with a transaction value of at least this many dollars (shorthand)")
	flag.StringVar(keywordStr, "k", "", "(-k) Comma-separated list of keywords or exact phrases to alert on (shorthand)")
	flag.BoolVar(showHelp, "h", false, "(-h) Show usage and exit (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText())
	}
}

func usageText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage of %s:\n", toolName)

	order := []string{
		"ticker",
		"min-value",
		"keywords",
		"form",
		"count",
		"feed-url",
		"help",
		"smtp-server",
		"smtp-port",
		"smtp-user",
		"smtp-pass",
		"to-email",
		"from-email",
		"gemini-api-key",
		"gemini-model",
	}

	for _, name := range order {
		f := flag.CommandLine.Lookup(name)
		if f != nil {
			fmt.Fprintf(&sb, "  -%s\n", f.Name)
			fmt.Fprintf(&sb, "    %s\n", f.Usage)
		}
	}

	return sb.String()
}

func parseKeywords(s string) []string {
	parts := strings.Split(s, ",")
	var keywords []string
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

func main() {
	flag.Parse()

	if *showHelp {
		fmt.Print(usageText())
		os.Exit(0)
	}

	if *feedURL != "" {
		edgar.FeedBaseURL = *feedURL
	}

	fmt.Printf("Fetching recent Form %s filings from EDGAR...\n", *formType)

	filings, err := edgar.FetchRecentFilings(*formType, *feedCount)
	if err != nil {
		fmt.Printf("Fatal error fetching filings: %v\n", err)
		os.Exit(1)
	}

	filings = edgar.FilterByCompany(filings, *tickerFilter)
	filings = edgar.FilterByMinValue(filings, *minValue)

	if len(filings) == 0 {
		fmt.Println("No filings matched the given filters.")
		return
	}

	notify.RenderTable(os.Stdout, filings)

	keywords := parseKeywords(*keywordStr)
	if len(keywords) == 0 {
		return
	}

	emailConfig := notify.EmailConfig{
		SMTPServer: *smtpServer,
		SMTPPort:   *smtpPort,
		SMTPUser:   *smtpUser,
		SMTPPass:   *smtpPass,
		ToEmail:    *toEmail,
		FromEmail:  *fromEmail,
		Enabled:    (*smtpServer != "" && *smtpUser != "" && *smtpPass != "" && *toEmail != ""),
	}

	if emailConfig.FromEmail == "" && emailConfig.SMTPUser != "" {
		emailConfig.FromEmail = emailConfig.SMTPUser
	}

	historyManager, err := history.NewManager(timezone)
	if err != nil {
		fmt.Printf("Fatal error setting up history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Searching %d filing(s) for keywords/phrases: %s\n", len(filings), strings.Join(keywords, ", "))

	newMatches := edgar.ProcessFilings(filings, keywords, historyManager.FilterNewMatches, *geminiAPIKey, *geminiModel)

	if len(newMatches) == 0 {
		fmt.Println("\n-------------------------------------------")
		fmt.Println("No new matching keywords found in any filing today.")
		fmt.Println("-------------------------------------------")
	} else {
		notify.ReportMatches(newMatches, historyManager.HistoryFilePath())
		if emailConfig.Enabled {
			notify.EmailMatches(newMatches, emailConfig)
		}
	}

	historyManager.RecordMatches(plainMatches(newMatches))
}

func plainMatches(annotated []types.AnnotatedMatch) []types.Match {
	matches := make([]types.Match, 0, len(annotated))
	for _, am := range annotated {
		matches = append(matches, am.Match)
	}
	return matches
}
