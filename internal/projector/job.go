package projector

import "log/slog"

// Job is a long derived computation split into host-scheduled units of
// work, e.g. building N time-discretized frames by re-invoking the
// engine once per value. The host loop calls Step once per scheduled
// callback; the job yields after each unit and checks cancellation
// between units. Cancellation is cooperative, not preemptive: a unit
// already running completes.
type Job struct {
	name      string
	total     int
	completed int
	cancelled bool
	err       error
	step      func(i int) error
}

// NewJob creates a job of total units. step receives the unit index,
// 0-based.
func NewJob(name string, total int, step func(i int) error) *Job {
	return &Job{name: name, total: total, step: step}
}

// Step runs one unit of work. Returns true while more work remains; a
// job that is finished, cancelled, or failed returns false and does
// nothing.
func (j *Job) Step() bool {
	if j.Done() {
		return false
	}
	if err := j.step(j.completed); err != nil {
		j.err = err
		slog.Warn("job failed", "job", j.name, "unit", j.completed, "error", err)
		return false
	}
	j.completed++
	return !j.Done()
}

// Cancel requests cooperative cancellation. The current unit is not
// interrupted; no further units run.
func (j *Job) Cancel() {
	if !j.Done() {
		j.cancelled = true
		slog.Debug("job cancelled", "job", j.name, "completed", j.completed, "total", j.total)
	}
}

// Done reports whether the job will do no further work.
func (j *Job) Done() bool {
	return j.cancelled || j.err != nil || j.completed >= j.total
}

// Cancelled reports whether the job was cancelled before finishing.
func (j *Job) Cancelled() bool { return j.cancelled }

// Err returns the error that stopped the job, if any.
func (j *Job) Err() error { return j.err }

// Progress returns completed and total unit counts.
func (j *Job) Progress() (completed, total int) {
	return j.completed, j.total
}
