package entryflow

// Step enumerates the flow's valid states. The zero value means no
// step is active; any other state is reachable only through the
// manager, so invalid transitions are unrepresentable.
type Step int

const (
	StepNone Step = iota
	StepName
	StepPhone
	StepEmail
	StepSource
	StepRequestType
	StepDestination
	StepFollowUpKind
	StepFollowUpDate
	StepFollowUpDays
	StepFollowUpRef
	StepSearch
	StepAgentID
	StepAgentName
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepPhone:
		return "phone"
	case StepEmail:
		return "email"
	case StepSource:
		return "source"
	case StepRequestType:
		return "request_type"
	case StepDestination:
		return "destination"
	case StepFollowUpKind:
		return "follow_up_kind"
	case StepFollowUpDate:
		return "follow_up_date"
	case StepFollowUpDays:
		return "follow_up_days"
	case StepFollowUpRef:
		return "follow_up_reference"
	case StepSearch:
		return "search"
	case StepAgentID:
		return "agent_id"
	case StepAgentName:
		return "agent_name"
	default:
		return "none"
	}
}
