package ingest

import (
	"strings"
	"testing"
)

func TestLoadBranchCSV(t *testing.T) {
	src := "ID,Lat,Lon\nBranch,40.192300,29.064400\n"

	branch, err := LoadBranchCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branch.ID != "Branch" {
		t.Fatalf("branch id = %q", branch.ID)
	}
	if branch.Coord.Lat != 40.1923 || branch.Coord.Lon != 29.0644 {
		t.Fatalf("branch coord = %+v", branch.Coord)
	}
}

func TestLoadBranchCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{name: "empty source", src: ""},
		{name: "header only", src: "ID,Lat,Lon\n"},
		{name: "missing column", src: "ID,Lat\nBranch,40.1\n"},
		{name: "bad latitude", src: "ID,Lat,Lon\nBranch,north,29.0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := LoadBranchCSV(strings.NewReader(c.src)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadTargetsCSV(t *testing.T) {
	src := "ID,Lat,Lon,Stay\nclinic-a,40.100000,29.000000,30\nclinic-b,40.200000,29.100000,45\n"

	targets, err := LoadTargetsCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].ID != "clinic-a" || targets[0].StayMinutes != 30 {
		t.Fatalf("first target = %+v", targets[0])
	}
	if targets[1].Coord.Lat != 40.2 || targets[1].StayMinutes != 45 {
		t.Fatalf("second target = %+v", targets[1])
	}
	if targets[0].Mandatory || targets[0].HasExactTime() {
		t.Fatal("csv targets default to optional free-time visits")
	}
}

func TestLoadTargetsCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{name: "no rows", src: "ID,Lat,Lon,Stay\n"},
		{name: "missing stay column", src: "ID,Lat,Lon\nclinic-a,40.1,29.0\n"},
		{name: "fractional stay", src: "ID,Lat,Lon,Stay\nclinic-a,40.1,29.0,30.5\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := LoadTargetsCSV(strings.NewReader(c.src)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
