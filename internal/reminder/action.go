package reminder

// Kind is an operator action on a single reminder.
type Kind int

const (
	KindComplete Kind = iota
	KindDelete
	KindEdit
)

func (k Kind) Valid() bool {
	return k >= KindComplete && k <= KindEdit
}

func (k Kind) String() string {
	switch k {
	case KindComplete:
		return "complete"
	case KindDelete:
		return "delete"
	case KindEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Intent is the visual weight of an action.
type Intent int

const (
	IntentPositive Intent = iota
	IntentDestructive
	IntentInformational
)

// Descriptor is the user-facing copy for an action kind.
type Descriptor struct {
	Kind              Kind
	ButtonLabel       string
	ConfirmationLabel string
	ConfirmLabel      string
	Intent            Intent
}

var descriptors = [...]Descriptor{
	KindComplete: {Kind: KindComplete, ButtonLabel: "Complete", ConfirmationLabel: "mark handled", ConfirmLabel: "OK", Intent: IntentPositive},
	KindDelete:   {Kind: KindDelete, ButtonLabel: "Delete", ConfirmationLabel: "permanently delete", ConfirmLabel: "OK", Intent: IntentDestructive},
	KindEdit:     {Kind: KindEdit, ButtonLabel: "Change", ConfirmationLabel: "change", ConfirmLabel: "Change", Intent: IntentInformational},
}

// Describe returns the descriptor for k. Out-of-range kinds get the
// complete descriptor; callers check Kind.Valid to catch them.
func Describe(k Kind) Descriptor {
	if !k.Valid() {
		return descriptors[KindComplete]
	}
	return descriptors[k]
}
