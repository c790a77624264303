package events

import (
	"encoding/json"
	"time"
)

// LedgerEvent describes one successful ledger mutation. Consumers fetch
// the owner's current snapshot themselves; the event only says what moved.
type LedgerEvent struct {
	OwnerID        string    `json:"owner_id"`
	Op             string    `json:"op"`
	TransactionIDs []string  `json:"transaction_ids"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewLedgerEvent(ownerID, op string, txIDs []string) *LedgerEvent {
	return &LedgerEvent{
		OwnerID:        ownerID,
		Op:             op,
		TransactionIDs: txIDs,
		Timestamp:      time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
