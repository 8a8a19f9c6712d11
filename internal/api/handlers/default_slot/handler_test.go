package default_slot

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		date  string
		start string
		end   string
	}{
		{name: "next full hour", now: time.Date(2030, 3, 14, 9, 25, 0, 0, time.UTC), date: "2030-03-14", start: "10:00", end: "11:00"},
		{name: "evening rolls to tomorrow", now: time.Date(2030, 3, 14, 19, 10, 0, 0, time.UTC), date: "2030-03-15", start: "09:00", end: "10:00"},
		{name: "late night rolls to tomorrow", now: time.Date(2030, 3, 14, 23, 30, 0, 0, time.UTC), date: "2030-03-15", start: "09:00", end: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(clock.NewFake(tt.now)).Handle(w, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"startDate":"`+tt.date+`"`)
			assert.Contains(t, w.Body.String(), `"startTime":"`+tt.start+`"`)
			assert.Contains(t, w.Body.String(), `"endTime":"`+tt.end+`"`)
		})
	}
}
