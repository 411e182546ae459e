package jobs

import "time"

// Status is the lifecycle state of a supervised job.
//
// NOTE: These values appear verbatim in status responses and are part of
// the stable tool contract.
type Status string

const (
	// StatusRunning is the only non-terminal state. A job is Running from
	// the moment it is submitted until its terminal record is written.
	StatusRunning Status = "RUNNING"

	// StatusSuccess means the invoked operation completed and reported a
	// successful outcome.
	StatusSuccess Status = "SUCCESS"

	// StatusFailure means the invoked operation completed but reported an
	// unsuccessful outcome (non-zero exit, no files changed). Failure is an
	// expected, reportable result, not a bug.
	StatusFailure Status = "FAILURE"

	// StatusError means the invocation itself faulted before it could
	// complete; the record's message carries the fault description.
	StatusError Status = "ERROR"

	// StatusUnknown is the sentinel returned for job ids that were never
	// submitted. Lookups never fail.
	StatusUnknown Status = "UNKNOWN"
)

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusError:
		return true
	}
	return false
}

// Kind labels the workload a job belongs to. Jobs of the same kind are
// executed one at a time, in submission order.
type Kind string

const (
	KindTransform Kind = "transform"
	KindBuild     Kind = "build"
)

// Record is the per-job entry held in the Store.
//
// Records are replaced wholesale on every state change so a concurrent
// reader can never observe a partially updated record.
type Record struct {
	ID        string     `json:"id"`
	Kind      Kind       `json:"kind,omitempty"`
	Status    Status     `json:"status"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Unknown returns the sentinel record for an id that has no entry.
func Unknown(id string) Record {
	return Record{ID: id, Status: StatusUnknown, Message: "Job not found"}
}
