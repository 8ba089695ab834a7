package util

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 2nd is still the 1st in BRT
	instant := time.Date(2026, time.March, 2, 1, 30, 0, 0, time.UTC)

	if got := DateOf(instant, loc); !got.Equal(NewDate(2026, time.March, 1)) {
		t.Fatalf("DateOf = %s, want 2026-03-01", got)
	}
	if got := DateOf(instant, nil); !got.Equal(NewDate(2026, time.March, 2)) {
		t.Fatalf("DateOf(nil loc) = %s, want 2026-03-02", got)
	}
}

func TestDateAddDaysAcrossMonth(t *testing.T) {
	d := NewDate(2026, time.February, 28)
	if got := d.AddDays(1); got.String() != "2026-03-01" {
		t.Fatalf("AddDays(1) = %s", got)
	}
	if got := d.AddDays(-28); got.String() != "2026-01-31" {
		t.Fatalf("AddDays(-28) = %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(NewDate(2026, time.October, 16))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2026-10-16"` {
		t.Fatalf("marshal = %s", raw)
	}

	var d Date
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatal(err)
	}
	if !d.Equal(NewDate(2026, time.October, 16)) {
		t.Fatalf("unmarshal = %s", d)
	}

	zero, _ := json.Marshal(Date{})
	if string(zero) != "null" {
		t.Fatalf("zero marshal = %s", zero)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-05-04 00:00:00+00:00"); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-05-04" {
		t.Fatalf("scan string = %s", d)
	}

	if err := d.Scan(time.Date(2026, 5, 5, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-05-05" {
		t.Fatalf("scan time = %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}
