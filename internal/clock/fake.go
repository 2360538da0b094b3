package clock

import "time"

// Fake is a settable test clock. Set moves Now to the given instant.
type Fake struct {
	Current  time.Time
	SetCalls []time.Time
	SetError error
}

func NewFake(now time.Time) *Fake {
	return &Fake{Current: now}
}

func (f *Fake) Now() time.Time {
	return f.Current
}

func (f *Fake) Set(t time.Time) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.SetCalls = append(f.SetCalls, t)
	f.Current = t
	return nil
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
