package entities

import (
	"testing"
	"time"
)

func TestQuoteExpired(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name       string
		status     QuoteStatus
		validUntil time.Time
		want       bool
	}{
		{"pending before valid_until", QuoteStatusPending, now.Add(time.Hour), false},
		{"pending past valid_until", QuoteStatusPending, now.Add(-time.Hour), true},
		{"accepted past valid_until keeps its status", QuoteStatusAccepted, now.Add(-time.Hour), false},
		{"rejected past valid_until keeps its status", QuoteStatusRejected, now.Add(-time.Hour), false},
		{"already expired", QuoteStatusExpired, now.Add(-time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Quote{Status: tc.status, ValidUntil: tc.validUntil}
			if got := q.Expired(now); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuoteStatusTerminal(t *testing.T) {
	if QuoteStatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []QuoteStatus{QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	t.Run("materials plus labor", func(t *testing.T) {
		materials := []QuoteMaterial{
			{Name: "pipe", Quantity: 3, UnitPrice: 25},
			{Name: "sealant", Quantity: 2, UnitPrice: 12.5},
		}
		labor := QuoteLabor{Description: "install", Total: 150}
		if got := ComputeTotal(materials, labor); got != 250 {
			t.Fatalf("got %v, want 250", got)
		}
	})

	t.Run("labor only", func(t *testing.T) {
		if got := ComputeTotal(nil, QuoteLabor{Total: 99.9}); got != 99.9 {
			t.Fatalf("got %v, want 99.9", got)
		}
	})
}
