package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/system.txt
	systemTemplate string
	//go:embed prompts/user.txt
	userTemplate string
)

// PromptInput carries the fields substituted into the verification prompts.
type PromptInput struct {
	Kind         string
	Content      string
	Jurisdiction string
	LawType      string
}

// BuildPrompts renders the system and user prompts for a verification.
func BuildPrompts(in PromptInput) (string, string) {
	jurisdictionContext := "under Indian legal system"
	if j := strings.TrimSpace(in.Jurisdiction); j != "" {
		jurisdictionContext = "under " + j
	}
	lawTypeContext := "across all applicable legal areas"
	if lt := strings.TrimSpace(in.LawType); lt != "" {
		lawTypeContext = "focusing on " + lt
	}
	subject := "legal query"
	if in.Kind == "document" {
		subject = "legal document"
	}

	system := strings.NewReplacer(
		"{{jurisdiction_context}}", jurisdictionContext,
		"{{law_type_context}}", lawTypeContext,
	).Replace(systemTemplate)
	user := strings.NewReplacer(
		"{{subject}}", subject,
		"{{content}}", in.Content,
	).Replace(userTemplate)
	return strings.TrimRight(system, "\n"), strings.TrimRight(user, "\n")
}
