package hrm

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONAndScan(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-10"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Equal(NewDate(2024, 1, 10).Time) {
		t.Fatalf("unexpected date: %v", d)
	}
	if err := json.Unmarshal([]byte(`"10/01/2024"`), &d); err == nil {
		t.Fatalf("expected parse error")
	}

	var scanned Date
	if err := scanned.Scan(time.Date(2024, 1, 10, 0, 0, 0, 0, time.FixedZone("x", 3600))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if scanned.String() != "2024-01-10" {
		t.Fatalf("unexpected scanned date: %s", scanned)
	}
	if err := scanned.Scan("2024-02-29"); err != nil || scanned.String() != "2024-02-29" {
		t.Fatalf("scan text: %v %s", err, scanned)
	}
}

func TestClockParseAndCompare(t *testing.T) {
	in, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	out, err := ParseClock("17:45:10")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if !in.Before(out) || in.String() != "09:30:00" {
		t.Fatalf("unexpected clocks: %s %s", in, out)
	}
	var c Clock
	if err := c.Scan("08:15:00"); err != nil || c.String() != "08:15:00" {
		t.Fatalf("Scan: %v %s", err, c)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for invalid time")
	}
}
