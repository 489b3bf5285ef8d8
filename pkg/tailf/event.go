package tailf

// Event is one emitted line. Text keeps the separator convention of the
// console output: live lines end with "\n", seed lines start with it.
type Event struct {
	Text  string
	Level string
}

// Subscriber receives events synchronously on the goroutine producing them.
// A slow subscriber delays the next poll. It must not call Stop.
type Subscriber interface {
	OnLine(ev Event)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(ev Event)

func (f SubscriberFunc) OnLine(ev Event) {
	f(ev)
}

type subscription struct {
	sub Subscriber
}
