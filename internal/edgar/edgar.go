/*
Package edgar provides utilities for fetching, extracting and filtering Form 4
filings from the SEC EDGAR current-events Atom feed.
*/
package edgar

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"form4watch/internal/ai"
	"form4watch/internal/types"
)

const (
	// The SEC rejects requests without an identifying User-Agent.
	edgarUserAgent = "form4watch/1.0 (admin@form4watch.dev)"

	defaultCount = 40
)

// FeedBaseURL is the EDGAR browse endpoint the feed is requested from. It is
// a variable so tests and mirror setups can point it elsewhere.
var FeedBaseURL = "https://www.sec.gov/cgi-bin/browse-edgar"

var client = &http.Client{
	Timeout: 30 * time.Second,
}

var (
	entryRe     = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)
	titleRe     = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	summaryRe   = regexp.MustCompile(`(?s)<summary[^>]*>(.*?)</summary>`)
	updatedRe   = regexp.MustCompile(`<updated>(.*?)</updated>`)
	linkHrefRe  = regexp.MustCompile(`<link[^>]*href="([^"]*)"`)
	categoryRe  = regexp.MustCompile(`<category[^>]*term="([^"]*)"`)
	idAccNoRe   = regexp.MustCompile(`accession-number=([\d-]+)`)
	textAccNoRe = regexp.MustCompile(`(?i)acc-?no:?\s*([\d-]+)`)

	// e.g. "4 - DOE JANE (0001234567) (Reporting)"
	entryTitleRe = regexp.MustCompile(`^\s*(\S+)\s+-\s+(.*?)\s+\((\d{10})\)\s+\(([^)]+)\)\s*$`)
)

// FetchRecentFilings performs a single GET against the EDGAR current-events
// feed and extracts whatever filings the response contains.
func FetchRecentFilings(formType string, count int) ([]types.Filing, error) {
	if count <= 0 {
		count = defaultCount
	}
	url := fmt.Sprintf("%s?action=getcurrent&type=%s&company=&dateb=&owner=include&count=%d&output=atom",
		FeedBaseURL, formType, count)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", edgarUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			log.Printf("Warning: Failed to close response body for %s: %v", url, err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return ExtractFilings(string(body)), nil
}

// ExtractFilings locates <entry> blocks in the feed body and parses each one.
// There is no recovery path: if the feed layout drifts, fields come back
// empty rather than raising an error.
func ExtractFilings(feed string) []types.Filing {
	var filings []types.Filing

	for _, m := range entryRe.FindAllStringSubmatch(feed, -1) {
		filing := parseEntry(m[1])
		if filing.Company == "" && filing.AccessionNo == "" {
			continue
		}
		filings = append(filings, filing)
	}

	return filings
}

func parseEntry(block string) types.Filing {
	var filing types.Filing

	title := extractTag(block, titleRe)
	filing.FormType, filing.Company, filing.CIK, filing.FilerType = parseEntryTitle(title)

	filing.Summary = summaryText(extractTag(block, summaryRe))
	filing.Updated = extractTag(block, updatedRe)
	filing.Link = extractTag(block, linkHrefRe)

	if term := extractTag(block, categoryRe); term != "" {
		filing.FormType = term
	}

	filing.AccessionNo = extractTag(block, idAccNoRe)
	if filing.AccessionNo == "" {
		filing.AccessionNo = extractTag(filing.Summary, textAccNoRe)
	}

	return filing
}

func extractTag(block string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(block)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseEntryTitle splits an entry title such as
// "4 - DOE JANE (0001234567) (Reporting)" into its parts. A title that does
// not match the expected shape degrades to the raw text as the company name.
func parseEntryTitle(title string) (formType, company, cik, filerType string) {
	m := entryTitleRe.FindStringSubmatch(title)
	if len(m) < 5 {
		return "", strings.TrimSpace(title), "", ""
	}
	return m[1], m[2], m[3], m[4]
}

// FilterByCompany keeps filings whose company name contains the query,
// case-insensitively. An empty query keeps everything.
func FilterByCompany(filings []types.Filing, query string) []types.Filing {
	if query == "" {
		return filings
	}

	lowerQuery := strings.ToLower(query)
	var kept []types.Filing
	for _, f := range filings {
		if strings.Contains(strings.ToLower(f.Company), lowerQuery) {
			kept = append(kept, f)
		}
	}
	return kept
}

// FilterByMinValue keeps filings whose transaction value meets the threshold.
// Value is never populated from the feed, so any positive threshold filters
// out every filing.
func FilterByMinValue(filings []types.Filing, minValue float64) []types.Filing {
	if minValue <= 0 {
		return filings
	}

	var kept []types.Filing
	for _, f := range filings {
		if f.Value >= minValue {
			kept = append(kept, f)
		}
	}
	return kept
}

// ProcessFilings runs keyword matching over the filings with a bounded worker
// pool, applies the history filter, and optionally annotates new matches with
// an AI analysis.
func ProcessFilings(filings []types.Filing, keywords []string, filterFn func(types.Filing, []string) []string, geminiAPIKey string, modelName string) []types.AnnotatedMatch {
	var wg sync.WaitGroup
	// Buffered to capacity: workers must never block sending a match while
	// holding a semaphore slot, or the spawn loop deadlocks before the
	// consumer below starts draining.
	matchChan := make(chan types.AnnotatedMatch, len(filings))

	sem := make(chan struct{}, 10) // Concurrency limit
	total := len(filings)
	processedCount := 0
	var processedMutex sync.Mutex

	for _, filing := range filings {
		wg.Add(1)
		sem <- struct{}{}

		go func(f types.Filing) {
			defer wg.Done()
			defer func() { <-sem }()

			processedMutex.Lock()
			processedCount++
			log.Printf("Processing... %d/%d (%s) ", processedCount, total, f.Company)
			processedMutex.Unlock()

			match := matchFiling(f, keywords, filterFn)
			if match == nil {
				return
			}

			matchChan <- types.AnnotatedMatch{
				Match:    *match,
				Analysis: runAIAnalysis(*match, geminiAPIKey, modelName),
			}
		}(filing)
	}

	go func() {
		wg.Wait()
		close(matchChan)
	}()

	var annotatedMatches []types.AnnotatedMatch
	for match := range matchChan {
		annotatedMatches = append(annotatedMatches, match)
	}

	log.Printf("Done processing")

	return annotatedMatches
}

func matchFiling(filing types.Filing, keywords []string, filterFn func(types.Filing, []string) []string) *types.Match {
	foundKeywords := findKeywords(filing.Company, filing.Summary, keywords)
	if len(foundKeywords) == 0 {
		return nil
	}

	newKeywords := filterFn(filing, foundKeywords)
	if len(newKeywords) == 0 {
		return nil
	}

	return &types.Match{
		Filing:        filing,
		KeywordsFound: newKeywords,
		Context:       buildContextSnippet(filing, newKeywords),
	}
}

func findKeywords(company, summary string, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}

	var found []string
	lowerCompany := strings.ToLower(company)
	lowerSummary := strings.ToLower(summary)

	for _, kw := range keywords {
		if strings.Contains(lowerCompany, kw) {
			found = append(found, kw)
		} else if strings.Contains(lowerSummary, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func buildContextSnippet(filing types.Filing, keywords []string) string {
	keyword := keywords[0]
	if strings.Contains(strings.ToLower(filing.Company), keyword) {
		return filing.Company + " (Match found in company name)"
	}
	return getSnippet(filing.Summary, keyword)
}

func runAIAnalysis(match types.Match, geminiAPIKey, modelName string) *ai.Analysis {
	if geminiAPIKey == "" {
		return nil
	}

	analysis, err := ai.GenerateSummary(match.Company, match.CIK, filingText(match.Filing), geminiAPIKey, modelName)
	if err != nil {
		log.Printf("Warning: AI summary failed for %s (%s): %v", match.Company, match.AccessionNo, err)
		return nil
	}
	return analysis
}

func filingText(filing types.Filing) string {
	return fmt.Sprintf("Form %s filed by %s (%s), CIK %s, accession %s, updated %s.\n%s\nFiling index: %s",
		filing.FormType,
		filing.Company,
		filing.FilerType,
		filing.CIK,
		filing.AccessionNo,
		filing.Updated,
		filing.Summary,
		filing.Link,
	)
}
