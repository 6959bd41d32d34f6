package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mmynk/messbook/internal/models"
)

func TestEventRoundTrip(t *testing.T) {
	in := New(MealLogged, 7, 3, models.Period{Month: 3, Year: 2024})
	data, err := in.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	out, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if out.Kind != MealLogged || out.RecordID != 7 || out.MemberID != 3 || out.Period != in.Period {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if !out.OccurredAt.Equal(in.OccurredAt) {
		t.Errorf("OccurredAt = %v, want %v", out.OccurredAt, in.OccurredAt)
	}
}

func TestFromJSONRejectsGarbage(t *testing.T) {
	if _, err := FromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), New(ExpenseAdded, 1, 1, models.Period{Month: 1, Year: 2024})); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{12, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"refused", errors.New("dial tcp 127.0.0.1:5672: connect: connection refused"), true},
		{"EOF", errors.New("unexpected EOF"), true},
		{"auth", errors.New("Exception (403) Reason: \"username or password not allowed\""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
