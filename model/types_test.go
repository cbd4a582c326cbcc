package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 15 {
		t.Errorf("unexpected date: %v", d)
	}

	if _, err := ParseDate("15.03.2026"); err == nil {
		t.Error("expected error for non-ISO format")
	}
	if _, err := ParseDate("2026-13-01"); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.January, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-01-05"` {
		t.Errorf("Marshal = %s, want \"2026-01-05\"", data)
	}

	var zero Date
	data, _ = json.Marshal(zero)
	if string(data) != "null" {
		t.Errorf("zero date should marshal as null, got %s", data)
	}

	var parsed Date
	if err := json.Unmarshal([]byte(`"2026-01-05"`), &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("roundtrip mismatch: %v != %v", parsed, d)
	}

	var fromNull Date
	if err := json.Unmarshal([]byte("null"), &fromNull); err != nil {
		t.Fatalf("Unmarshal null failed: %v", err)
	}
	if !fromNull.IsZero() {
		t.Error("null should decode to the zero date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	when := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	if err := d.Scan(when); err != nil {
		t.Fatalf("Scan(time.Time) failed: %v", err)
	}
	if !d.Equal(when) {
		t.Errorf("Scan mismatch: %v", d)
	}

	if err := d.Scan([]byte("2026-06-02")); err != nil {
		t.Fatalf("Scan([]byte) failed: %v", err)
	}
	if d.String() != "2026-06-02" {
		t.Errorf("Scan([]byte) = %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !d.IsZero() {
		t.Error("Scan(nil) should reset to zero")
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}
