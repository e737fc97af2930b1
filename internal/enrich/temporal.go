package enrich

import (
	"math"
	"time"

	"github.com/birchwood/ethnograph/internal/models"
)

// ApplyTemporal derives date, dt, hour, and weekday from each event's
// timestamp. A missing or non-finite timestamp leaves the derived fields
// empty (Hour = -1) instead of failing; aggregations tolerate such rows.
// Pure, no external dependency.
func ApplyTemporal(events []models.Event) {
	for i := range events {
		e := &events[i]
		if e.Timestamp == nil || math.IsNaN(*e.Timestamp) || math.IsInf(*e.Timestamp, 0) {
			e.Date = ""
			e.DT = nil
			e.Hour = -1
			e.Weekday = ""
			continue
		}

		sec := int64(*e.Timestamp)
		nsec := int64((*e.Timestamp - float64(sec)) * float64(time.Second))
		dt := time.Unix(sec, nsec).UTC()

		e.DT = &dt
		e.Date = dt.Format("2006-01-02")
		e.Hour = dt.Hour()
		e.Weekday = dt.Weekday().String()
	}
}
