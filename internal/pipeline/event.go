package pipeline

// EventType distinguishes progress notifications from terminal events.
type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// TotalSteps is the number of fixed checkpoints a streaming run reports.
const TotalSteps = 5

// Checkpoint positions within a streaming run.
const (
	StepConfirmProject = iota + 1
	StepPrepareImages
	StepAnalyzeImages
	StepWriteContent
	StepPersistPublish
)

// Event is one streaming notification. Progress events carry a step number;
// exactly one terminal event (complete or error) closes every stream.
type Event struct {
	Type            EventType `json:"type"`
	Step            int       `json:"step,omitempty"`
	TotalSteps      int       `json:"total_steps,omitempty"`
	PercentComplete int       `json:"percent_complete,omitempty"`
	Message         string    `json:"message,omitempty"`
	Result          *Result   `json:"result,omitempty"`
	Error           string    `json:"error,omitempty"`
}

func progressEvent(step int, message string) Event {
	return Event{
		Type:            EventProgress,
		Step:            step,
		TotalSteps:      TotalSteps,
		PercentComplete: step * 100 / TotalSteps,
		Message:         message,
	}
}

func completeEvent(result *Result) Event {
	return Event{Type: EventComplete, Result: result}
}

func errorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}
