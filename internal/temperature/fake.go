package temperature

// FakeSource returns scripted readings, repeating the last one when exhausted.
type FakeSource struct {
	Readings  []Reading
	ReadError error
	Calls     int
}

func (f *FakeSource) Read() (Reading, error) {
	f.Calls++
	if f.ReadError != nil {
		return Reading{}, f.ReadError
	}
	if len(f.Readings) == 0 {
		return Reading{}, nil
	}
	i := f.Calls - 1
	if i >= len(f.Readings) {
		i = len(f.Readings) - 1
	}
	return f.Readings[i], nil
}
