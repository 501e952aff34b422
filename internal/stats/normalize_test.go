package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		last     string
		today    string
		want     int
		wantLast string
	}{
		{"first day", 0, "", "2025-01-01", 1, "2025-01-01"},
		{"same day", 3, "2025-01-01", "2025-01-01", 3, "2025-01-01"},
		{"next day", 3, "2025-01-01", "2025-01-02", 4, "2025-01-02"},
		{"gap", 3, "2025-01-01", "2025-01-05", 1, "2025-01-05"},
		{"out of order", 3, "2025-01-05", "2025-01-01", 3, "2025-01-05"},
		{"across year", 1, "2024-12-31", "2025-01-01", 2, "2025-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, last := advanceStreak(tt.current, tt.last, tt.today)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestAddDayKeepsNewestDays(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var set []string
	for i := maxCreationDays + 4; i >= 0; i-- {
		set = addDay(set, start.AddDate(0, 0, i).Format(dateLayout))
	}
	set = addDay(set, start.Format(dateLayout))

	assert.Len(t, set, maxCreationDays)
	assert.IsNonDecreasing(t, set)
	assert.Equal(t, start.AddDate(0, 0, 5).Format(dateLayout), set[0])
}

func TestAddStringBounded(t *testing.T) {
	set := []string{}
	for i := 0; i < 5; i++ {
		set = addString(set, fmt.Sprint(i), 3)
	}
	assert.Equal(t, []string{"0", "1", "2"}, set)
	assert.Equal(t, []string{"0", "1", "2"}, addString(set, "1", 3))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "golden_hour", normalizeKey("  Golden Hour "))
	assert.Equal(t, "black_white", normalizeKey("BLACK-WHITE"))
	assert.Equal(t, "", normalizeKey("   "))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "photo", mediaType("IMAGE"))
	assert.Equal(t, "audio", mediaType("audio/mpeg"))
	assert.Equal(t, "document", mediaType("text/plain"))
	assert.Equal(t, "", mediaType("hologram"))
}
