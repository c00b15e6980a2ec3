package slot

import (
	"slices"
	"testing"
)

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func TestGenerate_ShortMorning(t *testing.T) {
	got := Generate(mustClock(t, "09:00"), mustClock(t, "09:35"), 10)
	want := Labels{"09:00 am - 09:10 am", "09:15 am - 09:25 am"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGenerate_Table(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		logout   string
		duration int
		want     Labels
	}{
		{
			name:     "exact fit keeps last slot",
			login:    "09:00",
			logout:   "09:50",
			duration: 20,
			want:     Labels{"09:00 am - 09:20 am", "09:25 am - 09:45 am"},
		},
		{
			name:     "crosses noon",
			login:    "11:30",
			logout:   "12:40",
			duration: 30,
			want:     Labels{"11:30 am - 12:00 pm", "12:05 pm - 12:35 pm"},
		},
		{
			name:     "afternoon",
			login:    "13:00",
			logout:   "13:25",
			duration: 10,
			want:     Labels{"01:00 pm - 01:10 pm", "01:15 pm - 01:25 pm"},
		},
		{
			name:     "midnight start",
			login:    "00:00",
			logout:   "00:10",
			duration: 10,
			want:     Labels{"12:00 am - 12:10 am"},
		},
		{
			name:     "window shorter than duration",
			login:    "09:00",
			logout:   "09:25",
			duration: 30,
			want:     Labels{},
		},
		{
			name:     "logout equals login",
			login:    "09:00",
			logout:   "09:00",
			duration: 10,
			want:     Labels{},
		},
		{
			name:     "logout before login",
			login:    "17:00",
			logout:   "09:00",
			duration: 10,
			want:     Labels{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(mustClock(t, tt.login), mustClock(t, tt.logout), tt.duration)
			if got == nil {
				t.Fatal("expected non-nil labels")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSeq_SpansStayInsideWindowWithGap(t *testing.T) {
	windows := []struct{ login, logout string }{
		{"08:00", "12:00"},
		{"09:10", "17:45"},
		{"00:00", "23:59"},
		{"14:03", "15:00"},
	}

	for _, w := range windows {
		login, logout := mustClock(t, w.login), mustClock(t, w.logout)
		for _, d := range Durations {
			var prev *Span
			count := 0
			for s := range Seq(login, logout, d) {
				count++
				if s.Minutes() != d {
					t.Errorf("%s-%s/%d: span %v lasts %d minutes", w.login, w.logout, d, s, s.Minutes())
				}
				if s.Start < login || s.End > logout {
					t.Errorf("%s-%s/%d: span %v outside window", w.login, w.logout, d, s)
				}
				if prev != nil && s.Start-prev.End != Gap {
					t.Errorf("%s-%s/%d: gap between %v and %v is %d", w.login, w.logout, d, *prev, s, s.Start-prev.End)
				}
				cur := s
				prev = &cur
			}
			if logout-login >= Clock(d) && count == 0 {
				t.Errorf("%s-%s/%d: expected at least one slot", w.login, w.logout, d)
			}
		}
	}
}

func TestSeq_Restartable(t *testing.T) {
	seq := Seq(mustClock(t, "09:00"), mustClock(t, "11:00"), 20)

	var first, second []Span
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}

	if len(first) == 0 || !slices.Equal(first, second) {
		t.Errorf("expected identical non-empty runs, got %v and %v", first, second)
	}
}

func TestSeq_StopsEarly(t *testing.T) {
	n := 0
	for range Seq(mustClock(t, "09:00"), mustClock(t, "18:00"), 10) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected to stop after 3 spans, got %d", n)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	login, logout := mustClock(t, "10:00"), mustClock(t, "16:30")
	a := Generate(login, logout, 30)
	b := Generate(login, logout, 30)
	if !slices.Equal(a, b) {
		t.Errorf("expected identical output, got %v and %v", a, b)
	}
}

func TestSeq_NonPositiveDuration(t *testing.T) {
	for range Seq(mustClock(t, "09:00"), mustClock(t, "10:00"), 0) {
		t.Fatal("expected no spans for zero duration")
	}
}

func TestValidDuration(t *testing.T) {
	for _, d := range []int{10, 20, 30} {
		if !ValidDuration(d) {
			t.Errorf("expected %d to be valid", d)
		}
	}
	for _, d := range []int{0, 5, 15, 25, 45, 60, -10} {
		if ValidDuration(d) {
			t.Errorf("expected %d to be invalid", d)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "23:59", want: 1439},
		{in: "00:00", want: 0},
		{in: "13:45:00", want: 825},
		{in: " 08:30 ", want: 510},
		{in: "24:00", wantErr: true},
		{in: "9am", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClock_StringAndLabel(t *testing.T) {
	tests := []struct {
		c     Clock
		str   string
		label string
	}{
		{0, "00:00", "12:00 am"},
		{65, "01:05", "01:05 am"},
		{720, "12:00", "12:00 pm"},
		{725, "12:05", "12:05 pm"},
		{1439, "23:59", "11:59 pm"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.str {
			t.Errorf("Clock(%d).String() = %q, want %q", tt.c, got, tt.str)
		}
		if got := tt.c.Label(); got != tt.label {
			t.Errorf("Clock(%d).Label() = %q, want %q", tt.c, got, tt.label)
		}
	}
}

func TestParseLabel(t *testing.T) {
	span, err := ParseLabel("11:30 am - 12:00 pm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Start != 690 || span.End != 720 {
		t.Errorf("expected 690-720, got %d-%d", span.Start, span.End)
	}

	for _, bad := range []string{"", "09:00 am", "09:00 - 09:10", "09:10 am - 09:00 am", "13:00 pm - 01:10 pm"} {
		if _, err := ParseLabel(bad); err == nil {
			t.Errorf("ParseLabel(%q): expected error", bad)
		}
	}
}

func TestParseLabel_RoundTripsGeneratedLabels(t *testing.T) {
	for s := range Seq(mustClock(t, "07:00"), mustClock(t, "20:00"), 20) {
		got, err := ParseLabel(s.Label())
		if err != nil {
			t.Fatalf("ParseLabel(%q): %v", s.Label(), err)
		}
		if got != s {
			t.Errorf("ParseLabel(%q) = %v, want %v", s.Label(), got, s)
		}
	}
}
