package store

import "sync"

// bus fans committed-write events out to watchers. Delivery is best-effort:
// a watcher that stops draining loses events rather than blocking writers,
// which is fine because watchers re-read state instead of replaying events.
type bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscriber
}

type subscriber struct {
	collection string
	ch         chan Event
}

func newBus() *bus {
	return &bus{subs: make(map[int]subscriber)}
}

func (b *bus) subscribe(collection string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = subscriber{collection: collection, ch: ch}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return ch, unsubscribe
}

func (b *bus) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.collection != ev.Collection {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
