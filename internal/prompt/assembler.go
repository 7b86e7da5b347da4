package prompt

import (
	"fmt"
	"strings"

	"docuwrite/internal/domain"
)

// Assembler splices retrieved reference excerpts into a generation prompt.
// Retrieved text is treated as opaque context, never parsed.
type Assembler struct{}

// NewAssembler creates a prompt assembler.
func NewAssembler() *Assembler { return &Assembler{} }

// Context renders the retrieved excerpts as a block the document generator
// prepends to its prompt. An empty result set renders an empty string so the
// generator can proceed without retrieved context.
func (a *Assembler) Context(results []domain.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Reference excerpts from prior documents. Match their structure and tone:\n\n")
	for _, res := range results {
		fmt.Fprintf(&b, "--- %s (%s, similarity %.2f) ---\n", res.Record.SourceDocument, res.Record.Type, res.Score)
		b.WriteString(strings.TrimSpace(res.Record.Text))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
