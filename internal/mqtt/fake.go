package mqtt

// FakePublisher records published events.
type FakePublisher struct {
	Events       []RelayEvent
	PublishError error
	Closed       bool
}

func (f *FakePublisher) Publish(event RelayEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Events = append(f.Events, event)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
