package domain

// Action identifies which multi-step dialog a session is running.
type Action int

const (
	ActionAddShop Action = iota + 1
	ActionFindShops
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionAddShop:
		return "addshop"
	case ActionFindShops:
		return "findshops"
	default:
		return "unknown"
	}
}

// Step identifies the current position within a dialog.
type Step int

const (
	StepName Step = iota + 1
	StepStreet
	StepCity
	StepState
	StepZip
	StepRadius
	StepType
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepStreet:
		return "street"
	case StepCity:
		return "city"
	case StepState:
		return "state"
	case StepZip:
		return "zip"
	case StepRadius:
		return "radius"
	case StepType:
		return "type"
	default:
		return "unknown"
	}
}

// steps enumerates each dialog's linear step sequence. Transitions never
// branch or loop back.
var steps = map[Action][]Step{
	ActionAddShop:   {StepName, StepStreet, StepCity, StepState, StepZip, StepType},
	ActionFindShops: {StepZip, StepRadius, StepType},
}

// FirstStep returns the initial step for an action.
func (a Action) FirstStep() Step {
	return steps[a][0]
}

// NextStep returns the step following s within action a, or false when s is
// the last step of the sequence.
func NextStep(a Action, s Step) (Step, bool) {
	seq := steps[a]
	for i, step := range seq {
		if step == s && i+1 < len(seq) {
			return seq[i+1], true
		}
	}
	return 0, false
}

// ValidStep reports whether s belongs to action a's sequence.
func ValidStep(a Action, s Step) bool {
	for _, step := range steps[a] {
		if step == s {
			return true
		}
	}
	return false
}

// Session holds the in-flight state of one user's dialog. A user has at most
// one session; a new trigger command replaces any existing one. Fields under
// Draft and Query only ever hold values already validated by earlier steps.
type Session struct {
	Action Action
	Step   Step
	Draft  ShopDraft
	Query  SearchQuery
}

// NewSession creates a session positioned at the action's first step.
func NewSession(action Action) *Session {
	s := &Session{Action: action, Step: action.FirstStep()}
	s.Query.RadiusMiles = -1
	return s
}

// Advance moves the session to the next step. It returns false when the
// current step is the last one, in which case the dialog is completing.
func (s *Session) Advance() bool {
	next, ok := NextStep(s.Action, s.Step)
	if !ok {
		return false
	}
	s.Step = next
	return true
}

// ShopDraft is the partial shop collected by the addshop dialog.
type ShopDraft struct {
	Name   string
	Street string
	City   string
	State  string
	Zip    string
	Lat    float64
	Lon    float64
}

// Shop materializes the draft into a storable record with the given type.
func (d *ShopDraft) Shop(shopType string) *Shop {
	return &Shop{
		Name:   d.Name,
		Street: d.Street,
		City:   d.City,
		State:  d.State,
		Zip:    d.Zip,
		Type:   shopType,
		Lat:    d.Lat,
		Lon:    d.Lon,
	}
}

// SearchQuery is the partial query collected by the findshops dialog.
// RadiusMiles stays at -1 until the radius step parses a value; an
// unparseable radius leaves it negative so no shop can match.
type SearchQuery struct {
	Zip         string
	Lat         float64
	Lon         float64
	RadiusMiles float64
}
