package dbtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTod(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00:00"},
		{in: " 18:30:15 ", want: "18:30:15"},
		{in: "24:00", wantErr: true},
		{in: "nine", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestTodScanVariants(t *testing.T) {
	var a, b, c Tod
	if err := a.Scan("07:15:00"); err != nil {
		t.Fatal(err)
	}
	if err := b.Scan([]byte("07:15")); err != nil {
		t.Fatal(err)
	}
	if err := c.Scan(time.Date(2026, 3, 2, 7, 15, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if a.Seconds() != b.Seconds() || b.Seconds() != c.Seconds() {
		t.Fatalf("scan variants disagree: %s %s %s", a, b, c)
	}
	if a.Seconds() != 7*3600+15*60 {
		t.Fatalf("Seconds = %d", a.Seconds())
	}
}

func TestTodJSONAndOnDate(t *testing.T) {
	var tod Tod
	if err := json.Unmarshal([]byte(`"06:45"`), &tod); err != nil {
		t.Fatal(err)
	}
	out, _ := json.Marshal(tod)
	if string(out) != `"06:45"` {
		t.Fatalf("marshal = %s", out)
	}

	loc := time.FixedZone("WIB", 7*3600)
	d := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	at := tod.OnDate(d)
	if at.Hour() != 6 || at.Minute() != 45 || at.Location() != loc || at.Day() != 19 {
		t.Fatalf("OnDate = %v", at)
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)
	c.Advance(90 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("Now = %v", got)
	}
	if sod := StartOfDay(c.Now()); sod.Hour() != 0 || sod.Day() != 18 {
		t.Fatalf("StartOfDay = %v", sod)
	}
}
