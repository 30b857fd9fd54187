package entities

// TaskState is a step of the per-message state machine
type TaskState string

const (
	TaskStateReceived   TaskState = "received"
	TaskStateValidating TaskState = "validating"
	TaskStateFetching   TaskState = "fetching"
	TaskStateDelivering TaskState = "delivering"
	TaskStateDone       TaskState = "done"
	TaskStateFailed     TaskState = "failed"
)

// Outcome is the terminal result of one link message
type Outcome string

const (
	OutcomeDone        Outcome = "done"
	OutcomeInvalidLink Outcome = "invalid_link"
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeTooLarge    Outcome = "too_large"
	OutcomeError       Outcome = "error"
)
