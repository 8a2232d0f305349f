package stamp

import (
	"testing"
	"time"
)

func TestNewDateValid(t *testing.T) {
	d, err := NewDate(2024, time.March, 15)
	if err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	if d.String() != "2024-03-15" {
		t.Fatalf("expected 2024-03-15, got %s", d)
	}
}

func TestNewDateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"month zero", 2024, 0, 1},
		{"month thirteen", 2024, 13, 1},
		{"day zero", 2024, time.March, 0},
		{"day overflow", 2024, time.April, 31},
		{"non leap february", 2023, time.February, 29},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDate(tc.year, tc.month, tc.day); err == nil {
				t.Fatalf("expected error for %04d-%02d-%02d", tc.year, int(tc.month), tc.day)
			}
		})
	}
}

func TestNewDateLeapDay(t *testing.T) {
	if _, err := NewDate(2024, time.February, 29); err != nil {
		t.Fatalf("2024-02-29 is a valid leap day: %v", err)
	}
}

func TestNewClockRanges(t *testing.T) {
	if _, err := NewClock(23, 59, 59); err != nil {
		t.Fatalf("expected valid clock, got %v", err)
	}
	for _, triple := range [][3]int{{24, 0, 0}, {-1, 0, 0}, {0, 60, 0}, {0, 0, 60}} {
		if _, err := NewClock(triple[0], triple[1], triple[2]); err == nil {
			t.Fatalf("expected error for %v", triple)
		}
	}
}

func TestClockStringPadding(t *testing.T) {
	c := MustClock(9, 7, 2)
	if c.String() != "09:07:02" {
		t.Fatalf("expected 09:07:02, got %s", c)
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	want := time.Date(2024, time.March, 15, 9, 7, 22, 0, time.UTC)
	got := MustDateTime(2024, time.March, 15, 9, 7, 22)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.Unix() != 1710493642 {
		t.Fatalf("unexpected unix timestamp %d", got.Unix())
	}
}

func TestSplitMatchesConstructors(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 9, 7, 22, 0, time.UTC)
	d, c := Split(instant)
	if d != MustDate(2024, time.March, 15) {
		t.Fatalf("unexpected date %v", d)
	}
	if c != MustClock(9, 7, 22) {
		t.Fatalf("unexpected clock %v", c)
	}
	if !DateTime(d, c).Equal(instant) {
		t.Fatalf("recomposition drifted: %v", DateTime(d, c))
	}
}

func TestSplitNormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("plus2", 2*60*60)
	local := time.Date(2024, time.March, 15, 1, 0, 0, 0, zone)
	d, c := Split(local)
	if d.Day != 14 || c.Hour != 23 {
		t.Fatalf("expected UTC 2024-03-14T23:00:00, got %sT%s", d, c)
	}
}

func TestMustDatePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid date")
		}
	}()
	MustDate(2024, 13, 1)
}
