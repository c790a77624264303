// Package smart is the natural-language ingestion adapter. It turns free
// text ("beli kopi 20rb kemarin") into candidate transactions. The core
// treats it as an external collaborator: failures are surfaced untouched
// and nothing is applied until the call fully resolves.
package smart

import (
	"context"

	"dompet/internal/core"
)

// Draft is one candidate transaction produced by the parser. It has no id
// and no wallet; the caller assigns both before handing the batch to the
// ledger engine.
type Draft struct {
	Description string
	Amount      core.Money
	Kind        core.TransactionKind
	Category    string
	Date        core.Date
}

// Parser extracts transaction drafts from free text.
type Parser interface {
	Parse(ctx context.Context, text string) ([]Draft, error)
}
