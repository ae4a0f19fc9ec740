package request

import (
	"testing"
	"time"
)

func TestReportLocationRequest_ToLocation(t *testing.T) {
	r := ReportLocationRequest{Lat: -23.5505, Lng: -46.6333, Timestamp: "2026-09-01T15:04:05Z"}

	loc := r.ToLocation()
	if loc.Lat != -23.5505 || loc.Lng != -46.6333 {
		t.Fatalf("unexpected coordinates: %+v", loc)
	}
	want := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	if !loc.Timestamp.Equal(want) {
		t.Fatalf("expected %v, got %v", want, loc.Timestamp)
	}

	r2 := ReportLocationRequest{Lat: 1, Lng: 2, Timestamp: "garbage"}
	if loc2 := r2.ToLocation(); !loc2.Timestamp.IsZero() {
		t.Fatalf("malformed timestamp must yield zero time, got %v", loc2.Timestamp)
	}
}
