package storage

import (
	"encoding/json"
	"fmt"

	"dompet/internal/core"
)

// encodeSnapshot splits a snapshot into one JSON document per collection.
func encodeSnapshot(snap core.Snapshot) (map[string][]byte, error) {
	docs := make(map[string][]byte, 6)
	for name, v := range map[string]any{
		ColWallets:      snap.Wallets,
		ColTransactions: snap.Transactions,
		ColCategories:   snap.Categories,
		ColBudgets:      snap.Budgets,
		ColDebts:        snap.Debts,
		ColAssets:       snap.Assets,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		docs[name] = b
	}
	return docs, nil
}

// decodeInto merges one collection document into a snapshot.
func decodeInto(snap *core.Snapshot, collection string, doc []byte) error {
	var err error
	switch collection {
	case ColWallets:
		err = json.Unmarshal(doc, &snap.Wallets)
	case ColTransactions:
		err = json.Unmarshal(doc, &snap.Transactions)
	case ColCategories:
		err = json.Unmarshal(doc, &snap.Categories)
	case ColBudgets:
		err = json.Unmarshal(doc, &snap.Budgets)
	case ColDebts:
		err = json.Unmarshal(doc, &snap.Debts)
	case ColAssets:
		err = json.Unmarshal(doc, &snap.Assets)
	default:
		// Unknown collections are skipped so old databases keep loading.
		return nil
	}
	if err != nil {
		return fmt.Errorf("unmarshal %s: %w", collection, err)
	}
	return nil
}
