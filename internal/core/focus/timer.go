package focus

import "time"

type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

const (
	WorkDuration  = 25 * time.Minute
	BreakDuration = 5 * time.Minute
)

// Timer is a work/break countdown. Values are updated in place by its methods.
type Timer struct {
	Mode      Mode
	Remaining time.Duration
	Running   bool
	Sessions  int
}

func New() Timer {
	return Timer{Mode: ModeWork, Remaining: WorkDuration}
}

func (m Mode) Duration() time.Duration {
	if m == ModeBreak {
		return BreakDuration
	}
	return WorkDuration
}

func (t *Timer) Start() { t.Running = true }

func (t *Timer) Pause() { t.Running = false }

func (t *Timer) Reset() {
	t.Running = false
	t.Remaining = t.Mode.Duration()
}

// Tick advances a running timer by d and reports whether the mode switched.
func (t *Timer) Tick(d time.Duration) bool {
	if !t.Running || d <= 0 {
		return false
	}
	if d < t.Remaining {
		t.Remaining -= d
		return false
	}

	t.Running = false
	if t.Mode == ModeWork {
		t.Sessions++
		t.Mode = ModeBreak
	} else {
		t.Mode = ModeWork
	}
	t.Remaining = t.Mode.Duration()
	return true
}

// Progress is the elapsed fraction of the current mode, between 0 and 1.
func (t Timer) Progress() float64 {
	total := t.Mode.Duration()
	return float64(total-t.Remaining) / float64(total)
}
