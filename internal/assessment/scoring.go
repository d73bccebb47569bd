package assessment

import "errors"

// ErrInvalidResponseRange rejects scoring when any response falls outside the
// instrument's valid per-item range, or the item count is wrong. Persistence
// must not proceed when this is returned.
var ErrInvalidResponseRange = errors.New("response out of instrument range")

// Instrument identifies a fixed-structure self-report questionnaire.
type Instrument string

const (
	PHQ9   Instrument = "phq9"
	GAD7   Instrument = "gad7"
	Stress Instrument = "stress"
)

func (i Instrument) Valid() bool {
	_, ok := instruments[i]
	return ok
}

type instrumentSpec struct {
	items    int
	maxValue int
	// 0-indexed positions whose value is reversed (max - value) before
	// summing. Only the perceived stress scale uses this.
	reversed  map[int]bool
	interpret func(score int) string
}

var instruments = map[Instrument]instrumentSpec{
	PHQ9: {
		items:    9,
		maxValue: 3,
		interpret: func(score int) string {
			switch {
			case score <= 4:
				return "Minimal depression"
			case score <= 9:
				return "Mild depression"
			case score <= 14:
				return "Moderate depression"
			case score <= 19:
				return "Moderately severe depression"
			default:
				return "Severe depression"
			}
		},
	},
	GAD7: {
		items:    7,
		maxValue: 3,
		interpret: func(score int) string {
			switch {
			case score <= 4:
				return "Minimal anxiety"
			case score <= 9:
				return "Mild anxiety"
			case score <= 14:
				return "Moderate anxiety"
			default:
				return "Severe anxiety"
			}
		},
	},
	Stress: {
		items:    8,
		maxValue: 4,
		reversed: map[int]bool{3: true, 4: true, 6: true, 7: true},
		interpret: func(score int) string {
			switch {
			case score <= 13:
				return "Low stress"
			case score <= 26:
				return "Moderate stress"
			default:
				return "High stress"
			}
		},
	},
}

// ValidateResponses reports whether every response lies in [0, maxValue].
func ValidateResponses(responses []int, maxValue int) bool {
	for _, r := range responses {
		if r < 0 || r > maxValue {
			return false
		}
	}
	return true
}

// Score validates the response list against the instrument and returns its
// total, reversing items where the instrument calls for it. Pure function.
func Score(inst Instrument, responses []int) (int, error) {
	spec, ok := instruments[inst]
	if !ok {
		return 0, ErrInvalidResponseRange
	}
	if len(responses) != spec.items || !ValidateResponses(responses, spec.maxValue) {
		return 0, ErrInvalidResponseRange
	}

	total := 0
	for i, r := range responses {
		if spec.reversed[i] {
			r = spec.maxValue - r
		}
		total += r
	}
	return total, nil
}

// Interpret maps a score to the instrument's categorical band.
func Interpret(inst Instrument, score int) string {
	spec, ok := instruments[inst]
	if !ok {
		return ""
	}
	return spec.interpret(score)
}
