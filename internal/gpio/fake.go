package gpio

// FakeRelay records every write. SetError, if set, is returned by Set.
type FakeRelay struct {
	On       bool
	Writes   []bool
	SetError error
	Closed   bool
}

func (f *FakeRelay) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.Writes = append(f.Writes, on)
	return nil
}

func (f *FakeRelay) Close() error {
	f.Closed = true
	f.On = false
	return nil
}
