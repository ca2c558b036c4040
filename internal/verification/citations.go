package verification

import "regexp"

const maxCitations = 6

// Pattern order is output order.
var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Section\s+\d+[A-Z]*\s+of\s+[^.]+`),
	regexp.MustCompile(`(?i)Article\s+\d+[A-Z]*\s+of\s+[^.]+`),
	regexp.MustCompile(`(?i)IPC\s+Section\s+\d+[A-Z]*`),
	regexp.MustCompile(`(?i)CrPC\s+Section\s+\d+[A-Z]*`),
	regexp.MustCompile(`(?i)CPC\s+Section\s+\d+[A-Z]*`),
	regexp.MustCompile(`\d+\s+U\.S\.C\.\s+§\s*\d+`),
	regexp.MustCompile(`\d+\s+CFR\s+\d+`),
	regexp.MustCompile(`\w+\s+v\.\s+\w+`),
	regexp.MustCompile(`(?i)AIR\s+\d+\s+SC\s+\d+`),
	regexp.MustCompile(`(?i)\(\d{4}\)\s+\d+\s+SCC\s+\d+`),
}

var defaultCitations = []string{
	"Constitution of India - Relevant Articles",
	"Indian Penal Code, 1860 - Applicable Sections",
	"Code of Criminal Procedure, 1973",
	"Indian Evidence Act, 1872",
}

// ExtractCitations returns up to six citation-shaped substrings of text, or
// the default framework citations when nothing matches.
func ExtractCitations(text string) []string {
	var out []string
	for _, re := range citationPatterns {
		out = append(out, re.FindAllString(text, -1)...)
	}
	if len(out) == 0 {
		return append([]string(nil), defaultCitations...)
	}
	if len(out) > maxCitations {
		out = out[:maxCitations]
	}
	return out
}
