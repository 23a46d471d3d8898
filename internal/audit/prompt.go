package audit

import (
	"strings"
	"unicode/utf8"
)

// BuildExtractionPrompt constructs the instruction text sent to the
// completion service. The contract it states is the one the parser is built
// around: an exact column order, a single delimiter, no header row, no prose,
// no code fences, and "0" for missing numeric fields.
//
// Pure string construction; excerpt is truncated to maxChars before
// embedding so oversized statements cannot blow the prompt budget.
func BuildExtractionPrompt(schema Schema, delim Delimiter, excerpt string, maxChars int) string {
	if maxChars > 0 && len(excerpt) > maxChars {
		// Back off to a rune boundary so the cut never leaves an invalid
		// UTF-8 tail in the prompt.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	names := make([]string, 0, schema.Len())
	for _, c := range schema.Columns {
		names = append(names, c.Name)
	}

	delimName := "PIPES (|)"
	if delim == DelimiterTab {
		delimName = "TABS"
	}

	var b strings.Builder
	b.WriteString("Extract every transaction from the document text below.\n\n")
	b.WriteString("Output contract:\n")
	b.WriteString("- Return ONLY raw data lines separated by " + delimName + ", one transaction per line.\n")
	b.WriteString("- Column order: " + strings.Join(names, " "+delim.String()+" ") + "\n")
	b.WriteString("- Do NOT return a header row.\n")
	b.WriteString("- Do NOT add explanations, commentary, or Markdown code fences.\n")
	b.WriteString("- If a numeric field is empty or missing, put 0.\n")
	b.WriteString("- Never use commas as separators.\n")
	b.WriteString("\nTEXT:\n")
	b.WriteString(excerpt)
	return b.String()
}
