package domain_test

import (
	"testing"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func todPtr(hour, minute int) *domain.TimeOfDay {
	return &domain.TimeOfDay{Hour: hour, Minute: minute}
}

func TestValidityWindow_Contains(t *testing.T) {
	// 2026-03-04 is a Wednesday.
	wednesdayNoon := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		window  domain.ValidityWindow
		instant time.Time
		want    bool
	}{
		{
			name:    "empty window matches everything",
			window:  domain.ValidityWindow{},
			instant: wednesdayNoon,
			want:    true,
		},
		{
			name: "inside date range",
			window: domain.ValidityWindow{
				ValidFrom:  timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
				ValidUntil: timePtr(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)),
			},
			instant: wednesdayNoon,
			want:    true,
		},
		{
			name: "validUntil day is inclusive",
			window: domain.ValidityWindow{
				ValidUntil: timePtr(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)),
			},
			instant: time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC),
			want:    true,
		},
		{
			name: "day after validUntil is outside",
			window: domain.ValidityWindow{
				ValidUntil: timePtr(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)),
			},
			instant: wednesdayNoon,
			want:    false,
		},
		{
			name: "before validFrom is outside",
			window: domain.ValidityWindow{
				ValidFrom: timePtr(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
			},
			instant: wednesdayNoon,
			want:    false,
		},
		{
			name: "time window bounds are inclusive",
			window: domain.ValidityWindow{
				TimeFrom:  todPtr(12, 0),
				TimeUntil: todPtr(14, 0),
			},
			instant: wednesdayNoon,
			want:    true,
		},
		{
			name: "exactly at upper time bound",
			window: domain.ValidityWindow{
				TimeUntil: todPtr(14, 0),
			},
			instant: time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC),
			want:    true,
		},
		{
			name: "a microsecond past the upper time bound",
			window: domain.ValidityWindow{
				TimeUntil: todPtr(14, 0),
			},
			instant: time.Date(2026, 3, 4, 14, 0, 0, 1000, time.UTC),
			want:    false,
		},
		{
			name: "only lower time bound leaves upper side open",
			window: domain.ValidityWindow{
				TimeFrom: todPtr(8, 30),
			},
			instant: time.Date(2026, 3, 4, 23, 45, 0, 0, time.UTC),
			want:    true,
		},
		{
			name: "weekday match",
			window: domain.ValidityWindow{
				DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
			},
			instant: wednesdayNoon,
			want:    true,
		},
		{
			name: "weekday miss",
			window: domain.ValidityWindow{
				DaysOfWeek: []time.Weekday{time.Saturday, time.Sunday},
			},
			instant: wednesdayNoon,
			want:    false,
		},
		{
			name: "date passes but weekday fails",
			window: domain.ValidityWindow{
				ValidFrom:  timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
				DaysOfWeek: []time.Weekday{time.Friday},
			},
			instant: wednesdayNoon,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(tt.instant))
		})
	}
}

func TestValidityWindow_Specificity(t *testing.T) {
	assert.Equal(t, 0, domain.ValidityWindow{}.Specificity())
	assert.Equal(t, 2, domain.ValidityWindow{
		TimeFrom:  todPtr(9, 0),
		TimeUntil: todPtr(17, 0),
	}.Specificity())
	assert.Equal(t, 5, domain.ValidityWindow{
		ValidFrom:  timePtr(time.Now()),
		ValidUntil: timePtr(time.Now()),
		TimeFrom:   todPtr(9, 0),
		TimeUntil:  todPtr(17, 0),
		DaysOfWeek: []time.Weekday{time.Monday},
	}.Specificity())
}

func TestScheduledPriceRule_IsValidAt(t *testing.T) {
	instant := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	rule := domain.ScheduledPriceRule{Active: true}
	assert.True(t, rule.IsValidAt(instant))

	rule.Active = false
	assert.False(t, rule.IsValidAt(instant), "inactive rule never matches, window notwithstanding")
}
