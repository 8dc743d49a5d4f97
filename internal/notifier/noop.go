package notifier

import "context"

type noopNotifier struct{}

// Noop returns a notifier that drops every event. Used when Redis is
// not configured; list views fall back to polling.
func Noop() Notifier { return noopNotifier{} }

func (noopNotifier) Publish(context.Context, *ChangeEvent) error { return nil }

func (noopNotifier) Subscribe(context.Context) (<-chan *ChangeEvent, error) {
	ch := make(chan *ChangeEvent)
	close(ch)
	return ch, nil
}

func (noopNotifier) Close() error { return nil }
