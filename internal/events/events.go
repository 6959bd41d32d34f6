// Package events announces ledger changes to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/messbook/internal/models"
)

// Kind names a ledger change. It doubles as the AMQP routing key.
type Kind string

const (
	ExpenseAdded   Kind = "expense.added"
	ExpenseUpdated Kind = "expense.updated"
	ExpenseDeleted Kind = "expense.deleted"
	MealLogged     Kind = "meal.logged"
	MealUpdated    Kind = "meal.updated"
	MealDeleted    Kind = "meal.deleted"
	MemberCreated  Kind = "member.created"
)

// Event is a lightweight change notice. Consumers fetch the record itself by ID.
type Event struct {
	Kind       Kind          `json:"kind"`
	RecordID   int64         `json:"record_id"`
	MemberID   int64         `json:"member_id"`
	Period     models.Period `json:"period"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// New stamps an event with the current time.
func New(kind Kind, recordID, memberID int64, period models.Period) Event {
	return Event{
		Kind:       kind,
		RecordID:   recordID,
		MemberID:   memberID,
		Period:     period,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON encodes the event body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event body.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events. Publish failures never undo the write that caused them.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
