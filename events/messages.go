package events

import (
	"encoding/json"
	"time"

	"financetracker/ledger"
)

// Routing keys on the ledger exchange.
const (
	TransactionRecordedKey = "transaction.recorded"
	SnapshotRecordedKey    = "snapshot.recorded"
)

// TransactionRecordedMessage is published after a transaction and its balance
// effect have been committed.
type TransactionRecordedMessage struct {
	TransactionID  string       `json:"transactionId"`
	AccountID      string       `json:"accountId"`
	Account        string       `json:"account"`
	Category       string       `json:"category,omitempty"`
	Amount         ledger.Money `json:"amount"`
	Positive       int          `json:"positive"`
	Date           ledger.Date  `json:"date"`
	AccountBalance ledger.Money `json:"accountBalance"`
	Timestamp      time.Time    `json:"timestamp"`
}

func NewTransactionRecordedMessage(t ledger.Transaction, a ledger.Account) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		TransactionID:  t.ID,
		AccountID:      a.ID,
		Account:        a.Name,
		Category:       t.Category,
		Amount:         t.Amount,
		Positive:       int(t.Direction),
		Date:           t.Date,
		AccountBalance: a.Balance,
		Timestamp:      time.Now().UTC(),
	}
}

// SnapshotRecordedMessage is published after the daily snapshot is written.
type SnapshotRecordedMessage struct {
	SnapshotDate ledger.Date  `json:"snapshotDate"`
	TotalBalance ledger.Money `json:"totalBalance"`
	Timestamp    time.Time    `json:"timestamp"`
}

func NewSnapshotRecordedMessage(s ledger.Snapshot) *SnapshotRecordedMessage {
	return &SnapshotRecordedMessage{
		SnapshotDate: s.Date,
		TotalBalance: s.TotalBalance,
		Timestamp:    time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SnapshotRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func SnapshotRecordedMessageFromJSON(data []byte) (*SnapshotRecordedMessage, error) {
	var msg SnapshotRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
