package request

import (
	"testing"
	"time"
)

func TestCreateQuoteRequest_ToInput(t *testing.T) {
	r := CreateQuoteRequest{
		Materials: []QuoteMaterialRequest{
			{Name: "tile", Quantity: 10, Unit: "box", UnitPrice: 30},
			{Name: "grout", Quantity: 2, UnitPrice: 15},
		},
		Labor:      QuoteLaborRequest{Description: "bathroom floor", Total: 450},
		ValidUntil: "2026-09-20T00:00:00Z",
	}

	in := r.ToInput()
	if len(in.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(in.Materials))
	}
	if in.Materials[0].Name != "tile" || in.Materials[0].UnitPrice != 30 {
		t.Fatalf("unexpected material: %+v", in.Materials[0])
	}
	if in.Labor.Total != 450 {
		t.Fatalf("unexpected labor: %+v", in.Labor)
	}
	want := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	if !in.ValidUntil.Equal(want) {
		t.Fatalf("expected %v, got %v", want, in.ValidUntil)
	}
}

func TestCreateQuoteRequest_ToInputNoMaterials(t *testing.T) {
	r := CreateQuoteRequest{
		Labor:      QuoteLaborRequest{Total: 100},
		ValidUntil: "not-a-date",
	}

	in := r.ToInput()
	if len(in.Materials) != 0 {
		t.Fatalf("expected no materials, got %d", len(in.Materials))
	}
	if !in.ValidUntil.IsZero() {
		t.Fatalf("malformed valid_until must yield zero time, got %v", in.ValidUntil)
	}
}
