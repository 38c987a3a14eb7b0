package meals

// Phase mirrors the dining hall's meal lifecycle states.
type Phase string

const (
	Breakfast Phase = "BREAKFAST"
	Lunch     Phase = "LUNCH"
	Dinner    Phase = "DINNER"
	Closed    Phase = "CLOSED"
)

// Slot identifiers used by the dining API on each venue menu.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotAnytime   = "anytime"
)

// DisplayName returns the human-readable meal name.
func (p Phase) DisplayName() string {
	switch p {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	default:
		return "Closed"
	}
}

// APISlot returns the menu slot served during the phase; Closed has none.
func (p Phase) APISlot() string {
	switch p {
	case Breakfast:
		return SlotBreakfast
	case Lunch:
		return SlotLunch
	case Dinner:
		return SlotDinner
	default:
		return ""
	}
}

func (p Phase) String() string {
	return p.DisplayName()
}

// PhaseForSlot maps an API slot to its meal phase. Slots without a phase, such as "anytime", report false.
func PhaseForSlot(slot string) (Phase, bool) {
	switch slot {
	case SlotBreakfast:
		return Breakfast, true
	case SlotLunch:
		return Lunch, true
	case SlotDinner:
		return Dinner, true
	default:
		return Closed, false
	}
}
