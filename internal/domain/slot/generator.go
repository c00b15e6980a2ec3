package slot

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Gap is the fixed pause between two consecutive slots, in minutes.
const Gap = 5

// Durations are the slot lengths a doctor may choose from.
var Durations = []int{10, 20, 30}

func ValidDuration(minutes int) bool {
	for _, d := range Durations {
		if d == minutes {
			return true
		}
	}
	return false
}

// Clock is a wall-clock time of day expressed in minutes after midnight.
type Clock int

// ParseClock accepts "15:04" or "15:04:05".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid clock %q", s)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Label renders the clock on a 12-hour dial, e.g. "09:05 am".
func (c Clock) Label() string {
	h, m := int(c)/60, int(c)%60
	meridiem := "am"
	if h >= 12 {
		meridiem = "pm"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, m, meridiem)
}

// Span is one generated slot, [Start, End).
type Span struct {
	Start Clock
	End   Clock
}

func (s Span) Label() string {
	return s.Start.Label() + " - " + s.End.Label()
}

func (s Span) Minutes() int {
	return int(s.End - s.Start)
}

// Seq yields the slots of a working window in chronological order. The
// sequence is restartable and has no side effects; a candidate whose end
// would pass logout is dropped and ends the sequence.
func Seq(login, logout Clock, duration int) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if duration <= 0 || logout <= login {
			return
		}
		step := Clock(duration)
		for cur := login; cur+step <= logout; cur += step + Gap {
			if !yield(Span{Start: cur, End: cur + step}) {
				return
			}
		}
	}
}

// Generate collects Seq into slot labels.
func Generate(login, logout Clock, duration int) Labels {
	out := Labels{}
	for s := range Seq(login, logout, duration) {
		out = append(out, s.Label())
	}
	return out
}

// ParseLabel reverses Span.Label.
func ParseLabel(label string) (Span, error) {
	start, end, ok := strings.Cut(label, " - ")
	if !ok {
		return Span{}, fmt.Errorf("invalid slot label %q", label)
	}

	parse := func(s string) (Clock, error) {
		t, err := time.Parse("03:04 pm", strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("invalid slot label %q", label)
		}
		return Clock(t.Hour()*60 + t.Minute()), nil
	}

	from, err := parse(start)
	if err != nil {
		return Span{}, err
	}
	to, err := parse(end)
	if err != nil {
		return Span{}, err
	}
	if to <= from {
		return Span{}, fmt.Errorf("invalid slot label %q", label)
	}
	return Span{Start: from, End: to}, nil
}
