// Package notifier broadcasts per-session change signals to SSE listeners.
package notifier

import "sync"

// Notifier delivers pings to listeners grouped by topic, normally a session ID.
// A ping carries no payload; listeners re-read the session state on receipt.
type Notifier struct {
	mu     sync.RWMutex
	topics map[string]map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		topics: make(map[string]map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping whenever topic is broadcast.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe(topic string) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	defer n.mu.Unlock()

	listeners, ok := n.topics[topic]
	if !ok {
		listeners = make(map[chan struct{}]struct{})
		n.topics[topic] = listeners
	}
	listeners[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(topic string, ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if listeners, ok := n.topics[topic]; ok {
		delete(listeners, ch)
		if len(listeners) == 0 {
			delete(n.topics, topic)
		}
	}
	close(ch)
}

// Broadcast pings every listener of topic.
// Non-blocking: a listener with a pending ping is skipped.
func (n *Notifier) Broadcast(topic string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.topics[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Listeners returns the number of listeners subscribed to topic.
func (n *Notifier) Listeners(topic string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.topics[topic])
}
