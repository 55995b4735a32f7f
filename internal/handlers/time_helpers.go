package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/timezone"
)

// --------------------------------------------------
// Calendar days in the application timezone
// --------------------------------------------------

// clock is shared by the handlers that reason about "today".
type clock struct {
	loc *time.Location
	now func() time.Time
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = timezone.Location("")
	}
	return clock{loc: loc, now: time.Now}
}

// today returns [start, end) of the current day.
func (k clock) today() (time.Time, time.Time) {
	return timezone.DayBounds(k.now().In(k.loc))
}

// dayFromQuery resolves ?date=YYYY-MM-DD (default today) to [start, end).
// It writes a 400 and returns false on a malformed date.
func (k clock) dayFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	day, err := timezone.ParseDay(c.Query("date"), k.loc, k.now())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must use the YYYY-MM-DD format.")
		return time.Time{}, time.Time{}, false
	}
	start, end := timezone.DayBounds(day)
	return start, end, true
}
