package types

import (
	"testing"
	"time"
)

func TestExpandInterval(t *testing.T) {
	tests := []struct {
		name        string
		open, close TimeString
		granularity int
		want        []TimeString
	}{
		{
			name: "aligned interval",
			open: "09:00", close: "11:00", granularity: 30,
			want: []TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"},
		},
		{
			name: "close not on grid is still offered",
			open: "09:00", close: "10:15", granularity: 30,
			want: []TimeString{"09:00", "09:30", "10:00", "10:15"},
		},
		{
			name: "single step",
			open: "09:00", close: "09:30", granularity: 30,
			want: []TimeString{"09:00", "09:30"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandInterval(tt.open, tt.close, tt.granularity)
			if err != nil {
				t.Fatalf("ExpandInterval: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExpandInterval = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ExpandInterval[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpandInterval_Errors(t *testing.T) {
	if _, err := ExpandInterval("10:00", "09:00", 30); err == nil {
		t.Error("open after close: expected error")
	}
	if _, err := ExpandInterval("10:00", "10:00", 30); err == nil {
		t.Error("open equals close: expected error")
	}
	if _, err := ExpandInterval("09:00", "10:00", 0); err == nil {
		t.Error("zero granularity: expected error")
	}
	if _, err := ExpandInterval("bad", "10:00", 30); err == nil {
		t.Error("invalid open: expected error")
	}
}

func TestToCivilInstant(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	instant := ToCivilInstant(date, "09:30", loc)

	want := time.Date(2026, 3, 10, 9, 30, 0, 0, loc)
	if !instant.Equal(want) {
		t.Fatalf("ToCivilInstant = %s, want %s", instant, want)
	}
}

func TestFromCivilInstant_RoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yekaterinburg")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	date := time.Date(2026, 7, 1, 0, 0, 0, 0, loc)
	instant := ToCivilInstant(date, "21:00", loc)

	gotDate, gotTime := FromCivilInstant(instant, loc)
	if !gotDate.Equal(date) {
		t.Fatalf("FromCivilInstant date = %s, want %s", gotDate, date)
	}
	if gotTime != "21:00" {
		t.Fatalf("FromCivilInstant time = %q, want %q", gotTime, "21:00")
	}
}

func TestSameCivilDay_AcrossMidnightUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC 9 марта - это уже 02:30 10 марта по Москве
	late := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
	morning := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)

	if !SameCivilDay(late, morning, loc) {
		t.Error("both instants fall on 2026-03-10 in Moscow")
	}
	if SameCivilDay(late, morning, time.UTC) {
		t.Error("in UTC the instants are on different days")
	}
}

func TestUTCMinuteOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 12:00 по Москве (UTC+3) - это 09:00 UTC
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	if got := UTCMinuteOfDay(noon); got != 9*60 {
		t.Fatalf("UTCMinuteOfDay = %d, want %d", got, 9*60)
	}
}
