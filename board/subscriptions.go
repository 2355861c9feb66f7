package board

import (
	"github.com/ethereum/go-ethereum/event"
)

// Subscriptions owns the feeds a mounted board listens to. Everything tracked
// here is released by Close, whether or not the caller unsubscribed first.
type Subscriptions struct {
	scope event.SubscriptionScope
}

// Track registers sub with the scope. After Close it unsubscribes sub
// immediately and returns nil.
func (s *Subscriptions) Track(sub event.Subscription) event.Subscription {
	if sub == nil {
		return nil
	}
	tracked := s.scope.Track(sub)
	if tracked == nil {
		sub.Unsubscribe()
	}
	return tracked
}

// Count returns the number of live tracked subscriptions
func (s *Subscriptions) Count() int {
	return s.scope.Count()
}

// Close unsubscribes everything still tracked
func (s *Subscriptions) Close() {
	s.scope.Close()
}
