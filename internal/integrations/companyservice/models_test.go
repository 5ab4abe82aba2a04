package companyservice

import (
	"testing"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

func TestCompany_Granularity(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{name: "zero falls back to default", minutes: 0, want: domain.DefaultGranularityMinutes},
		{name: "negative falls back to default", minutes: -10, want: domain.DefaultGranularityMinutes},
		{name: "below minimum falls back to default", minutes: domain.MinGranularityMinutes - 1, want: domain.DefaultGranularityMinutes},
		{name: "above maximum falls back to default", minutes: domain.MaxGranularityMinutes + 1, want: domain.DefaultGranularityMinutes},
		{name: "minimum accepted", minutes: domain.MinGranularityMinutes, want: domain.MinGranularityMinutes},
		{name: "maximum accepted", minutes: domain.MaxGranularityMinutes, want: domain.MaxGranularityMinutes},
		{name: "regular value accepted", minutes: 15, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Company{SlotGranularityMinutes: tt.minutes}
			if got := c.Granularity(); got != tt.want {
				t.Errorf("Granularity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompany_Location(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{name: "empty timezone defaults", timezone: "", want: domain.DefaultTimezone},
		{name: "unknown timezone defaults", timezone: "Mars/Olympus", want: domain.DefaultTimezone},
		{name: "valid timezone kept", timezone: "Asia/Yekaterinburg", want: "Asia/Yekaterinburg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Company{Timezone: tt.timezone}
			if got := c.Location().String(); got != tt.want {
				t.Errorf("Location() = %s, want %s", got, tt.want)
			}
		})
	}
}
