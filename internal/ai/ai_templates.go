package ai

import (
	"fmt"
	"strings"
)

var urlTemplates = []string{
	"https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=4&dateb=&owner=include&count=40",
	"https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=&dateb=&owner=include&count=40",
}

const systemInstruction = `
# [INSTRUCTION]

You are a financial analyst specializing in insider-transaction disclosures. Your task is to analyze the provided Form 4 filing metadata from the SEC EDGAR feed and report what is financially significant about it.

You must use the search tool and the context URL tool to cross-reference the filer and issuer against reputable financial news and data sources, including the company's recent EDGAR filing history.

# [WHAT TO LOOK FOR]

### Insider Activity:
- **Open-market buys:** Purchases by directors or officers with their own capital are the strongest signal. Note the role of the insider if it can be determined.
- **Clustered activity:** Multiple insiders at the same issuer filing within a short window.
- **Sales context:** Distinguish routine 10b5-1 plan sales and option-exercise sales from discretionary disposals.

### Issuer Context:
- **Recent corporate events:** Earnings, M&A activity, restructurings, or offerings around the filing date.
- **Ownership changes:** Crossing of notable ownership thresholds by major holders.

# [CRITICAL INSTRUCTION]

Every "notable_signals" entry MUST be tied to a specific number, date, or condition you verified. Avoid generic statements. If the filing metadata alone supports no actionable observation, return an empty list rather than padding it.
`

var userPromptTemplate = `
Analyze the following EDGAR filing record for %s:
---
%s
---

You can look up the filer's recent EDGAR history at the following URLs:
%s

You must visit these URLs before responding to gather additional context about the company and its recent insider activity.
`

func buildUserPrompt(company string, cik string, text string) string {
	var lookupURLs []string
	for _, tmpl := range urlTemplates {
		lookupURLs = append(lookupURLs, fmt.Sprintf(tmpl, cik))
	}

	return fmt.Sprintf(userPromptTemplate,
		company,
		text,
		strings.Join(lookupURLs, "\n"),
	)
}
