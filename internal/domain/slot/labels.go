package slot

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Labels is an ordered set of slot labels. It is stored as a JSON array in a
// single text column; nothing outside Value/Scan sees that encoding.
type Labels []string

func (l Labels) Contains(label string) bool {
	for _, v := range l {
		if v == label {
			return true
		}
	}
	return false
}

// Index returns the position of label, or -1.
func (l Labels) Index(label string) int {
	for i, v := range l {
		if v == label {
			return i
		}
	}
	return -1
}

// Without returns the labels not present in taken, keeping order.
func (l Labels) Without(taken []string) Labels {
	skip := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		skip[t] = struct{}{}
	}

	out := make(Labels, 0, len(l))
	for _, v := range l {
		if _, ok := skip[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// StartKey is the start clock of label in minutes; unparseable labels sort
// after every real slot.
func StartKey(label string) int {
	span, err := ParseLabel(label)
	if err != nil {
		return 24 * 60
	}
	return int(span.Start)
}

// SortChronologically orders labels by their start clock. Unparseable labels
// sink to the end in their original order.
func SortChronologically(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return StartKey(labels[i]) < StartKey(labels[j])
	})
}

func (l Labels) Value() (driver.Value, error) {
	if l == nil {
		l = Labels{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Labels) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = Labels{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("slot.Labels: unsupported source %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("slot.Labels: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

func (Labels) GormDataType() string {
	return "text"
}
