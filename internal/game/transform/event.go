package transform

import "fmt"

// EventKind identifies a lifecycle notification.
type EventKind uint8

const (
	EventTransformed EventKind = iota + 1
	EventReverted
	EventDeathHowl
	EventEscaped
	EventLimbRegrown
	EventAugmentationShed
	EventLevelUp
	EventFuryStarted
	EventRageExpired
	EventGranted
	EventRevoked
	EventAdvisory
	EventFullMoon
	EventFullMoonPassed
	EventMoonResisted
)

var eventKindNames = map[EventKind]string{
	EventTransformed:      "transformed",
	EventReverted:         "reverted",
	EventDeathHowl:        "death_howl",
	EventEscaped:          "escaped",
	EventLimbRegrown:      "limb_regrown",
	EventAugmentationShed: "augmentation_shed",
	EventLevelUp:          "level_up",
	EventFuryStarted:      "fury_started",
	EventRageExpired:      "rage_expired",
	EventGranted:          "granted",
	EventRevoked:          "revoked",
	EventAdvisory:         "advisory",
	EventFullMoon:         "full_moon",
	EventFullMoonPassed:   "full_moon_passed",
	EventMoonResisted:     "moon_resisted",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Advisory messages.
const (
	AdviceAlreadyWerewolf    = "already a werewolf"
	AdviceNotWerewolf        = "not a werewolf"
	AdviceForbidden          = "lycanthropy was purged and cannot return"
	AdviceNeedsRest          = "needs rest"
	AdviceNotBlooded         = "has not been blooded"
	AdviceAlreadyTransformed = "already transformed"
	AdviceFormUnavailable    = "form unavailable"
	AdviceFormNotLearned     = "form not learned"
)

// Event is a fire-and-forget notification about one entity.
type Event struct {
	Tick     int64     `json:"tick"`
	EntityID uint32    `json:"entity_id,omitempty"`
	Entity   string    `json:"entity,omitempty"`
	Kind     EventKind `json:"kind"`
	Form     string    `json:"form,omitempty"`
	Level    int       `json:"level,omitempty"`
	// Detail carries the advisory text, sound cue or part label.
	Detail string `json:"detail,omitempty"`
}
