package appointment

import (
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/timezone"
)

// Clock supplies the current moment so tests can book against a frozen
// calendar.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the clinic timezone.
type SystemClock struct {
	Timezone string
}

func (c SystemClock) Now() time.Time {
	return timezone.NowIn(c.Timezone)
}
