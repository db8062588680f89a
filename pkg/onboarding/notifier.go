package onboarding

import (
	"sync/atomic"
	"time"
)

const (
	notifierPending int32 = iota
	notifierFired
	notifierCancelled
)

// notifier runs fire once after a delay unless cancelled first.
type notifier struct {
	status atomic.Int32
	timer  *time.Timer
	done   chan struct{}
}

func startNotifier(delay time.Duration, fire func()) *notifier {
	n := &notifier{done: make(chan struct{})}
	n.timer = time.AfterFunc(delay, func() {
		if !n.status.CompareAndSwap(notifierPending, notifierFired) {
			return
		}
		defer close(n.done)
		fire()
	})
	return n
}

// cancel stops a pending notifier. It reports false when fire already started.
func (n *notifier) cancel() bool {
	if !n.status.CompareAndSwap(notifierPending, notifierCancelled) {
		return false
	}
	n.timer.Stop()
	close(n.done)
	return true
}

func (n *notifier) fired() bool {
	return n.status.Load() == notifierFired
}
