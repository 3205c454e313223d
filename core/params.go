package core

import (
	"time"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
)

// Params carries the shared timeseries knobs: a date_trunc period plus
// an inclusive begin/end window. Zero dates are defaulted against the
// catalog clock (begin = epoch, end = now) so "everything so far" is
// the unconfigured behavior.
type Params struct {
	Period schema.Period
	Begin  time.Time
	End    time.Time
}

// window resolves the inclusive date range against a reference time.
func (p Params) window(now time.Time) (time.Time, time.Time) {
	begin, end := p.Begin, p.End
	if begin.IsZero() {
		begin = time.Unix(0, 0).UTC()
	}
	if end.IsZero() {
		end = now
	}
	return begin, end
}

// period returns the date_trunc granularity, defaulting to day.
func (p Params) period() schema.Period {
	if p.Period == "" {
		return schema.DayPeriod
	}
	return p.Period
}

// args builds the named arguments shared by scoped timeseries queries.
// ref_date is always present; pgx only binds the names a template
// actually references.
func (p Params) args(scope Scope, now time.Time) pgx.NamedArgs {
	begin, end := p.window(now)
	args := pgx.NamedArgs{
		"period":     string(p.period()),
		"begin_date": begin,
		"end_date":   end,
		"ref_date":   now,
	}
	scope.bind(args)
	return args
}
