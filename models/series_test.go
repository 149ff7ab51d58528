package models

import (
	"testing"
	"time"
)

func TestParseSeries(t *testing.T) {
	for _, s := range AllSeries {
		got, err := ParseSeries(string(s))
		if err != nil || got != s {
			t.Errorf("ParseSeries(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseSeries("tercera"); err == nil {
		t.Error("ParseSeries accepted an unknown series")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "13:00", want: TimeOfDay{Hour: 13, Minute: 0}},
		{input: "09:45", want: TimeOfDay{Hour: 9, Minute: 45}},
		{input: "00:00", want: TimeOfDay{Hour: 0, Minute: 0}},
		{input: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "-1:30", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeOfDay(%q) accepted invalid input", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayOnKeepsDateAndLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	got := TimeOfDay{Hour: 13, Minute: 30}.On(date)

	want := time.Date(2025, 3, 1, 13, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("On() = %s, want %s", got, want)
	}
}

func TestClubFieldsSeries(t *testing.T) {
	club := &Club{Primera: true, SuperSenior: true}

	if !club.FieldsSeries(SeriesPrimera) || !club.FieldsSeries(SeriesSuperSenior) {
		t.Error("club should field primera and super_senior")
	}
	if club.FieldsSeries(SeriesSegunda) {
		t.Error("club should not field segunda")
	}
}
