package domain

import "testing"

func TestIdentityMapRoundTrip(t *testing.T) {
	targets := []Target{
		{ID: "T1"},
		{ID: "T2"},
		{ID: "T3"},
	}

	m := NewIdentityMap(targets)

	if m.NodeCount() != 4 {
		t.Fatalf("node count = %d, want 4", m.NodeCount())
	}

	if id, ok := m.IDAt(0); !ok || id != DepotID {
		t.Fatalf("IDAt(0) = %q, %v; want %q, true", id, ok, DepotID)
	}
	if idx, ok := m.IndexOf(DepotID); !ok || idx != 0 {
		t.Fatalf("IndexOf(depot) = %d, %v; want 0, true", idx, ok)
	}

	for i, target := range targets {
		idx, ok := m.IndexOf(target.ID)
		if !ok || idx != i+1 {
			t.Fatalf("IndexOf(%q) = %d, %v; want %d, true", target.ID, idx, ok, i+1)
		}
		id, ok := m.IDAt(i + 1)
		if !ok || id != target.ID {
			t.Fatalf("IDAt(%d) = %q, %v; want %q, true", i+1, id, ok, target.ID)
		}
	}
}

func TestIdentityMapUnknownLookups(t *testing.T) {
	m := NewIdentityMap([]Target{{ID: "T1"}})

	if _, ok := m.IndexOf("T99"); ok {
		t.Fatal("IndexOf unknown id should report not found")
	}
	if _, ok := m.IDAt(5); ok {
		t.Fatal("IDAt out-of-range index should report not found")
	}
	if _, ok := m.IDAt(-1); ok {
		t.Fatal("IDAt negative index should report not found")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "08:00", want: 480},
		{in: "10:30", want: 630},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "banana", wantErr: true},
		{in: "08:00:00", wantErr: true},
		{in: "10:30junk", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "10:", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(630); got != "10:30" {
		t.Fatalf("FormatClock(630) = %q, want \"10:30\"", got)
	}
	if got := FormatClock(480); got != "08:00" {
		t.Fatalf("FormatClock(480) = %q, want \"08:00\"", got)
	}
}

func TestDayAvailabilityVariants(t *testing.T) {
	open := OpenDay(480, 1080)
	window, ok := open.Window()
	if !ok {
		t.Fatal("open day reported closed")
	}
	if window.StartMinute != 480 || window.EndMinute != 1080 {
		t.Fatalf("window = %+v, want 480-1080", window)
	}

	if _, ok := ClosedDay().Window(); ok {
		t.Fatal("closed day reported open")
	}
}
