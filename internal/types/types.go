package types

import "form4watch/internal/ai"

// Filing is one record extracted from the EDGAR Atom feed. The insider and
// transaction fields are placeholders: populating them requires fetching and
// parsing the full Form 4 XML document, which this tool does not do.
type Filing struct {
	Company     string
	CIK         string
	AccessionNo string
	FormType    string
	FilerType   string
	Summary     string
	Link        string
	Updated     string

	InsiderName     string
	InsiderTitle    string
	TransactionType string
	Shares          float64
	Price           float64
	Value           float64
}

type Match struct {
	Filing
	KeywordsFound []string
	Context       string
}

type AnnotatedMatch struct {
	Match
	Analysis *ai.Analysis
}
