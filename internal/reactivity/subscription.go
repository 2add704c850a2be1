package reactivity

import "sync"

// Subscriber is anything the SubscriptionManager can notify. Effects,
// Subscribers (watchers) and Computed cells all implement it.
type Subscriber interface {
	SubID() uint64
	Notify()
}

// keyBucket holds the strong and weak subscribers registered for one key of
// one signal.
type keyBucket struct {
	strong map[uint64]Subscriber
	weak   map[uint64]Subscriber
}

func newKeyBucket() *keyBucket {
	return &keyBucket{strong: map[uint64]Subscriber{}, weak: map[uint64]Subscriber{}}
}

func (b *keyBucket) empty() bool {
	return len(b.strong) == 0 && len(b.weak) == 0
}

// SubscriptionManager is the two-level index described in spec.md §4.2:
// signal identity → key → set of subscribers, with snapshot-safe notify.
type SubscriptionManager struct {
	mu   sync.Mutex
	byID map[uint64]map[string]*keyBucket
}

// NewSubscriptionManager constructs an empty manager.
func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{byID: map[uint64]map[string]*keyBucket{}}
}

var defaultSubs = NewSubscriptionManager()

// DefaultSubscriptions returns the process-wide subscription manager used by the public
// reactive primitives.
func DefaultSubscriptions() *SubscriptionManager { return defaultSubs }

// Add registers sub against (signal, key). weak marks the registration as
// not keeping the signal's strong-observer count alive (used by Computed,
// which should not hold a signal reachable from the GC's perspective beyond
// its real observers).
func (m *SubscriptionManager) Add(signal uint64, key string, sub Subscriber, weak bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, ok := m.byID[signal]
	if !ok {
		keys = map[string]*keyBucket{}
		m.byID[signal] = keys
	}
	bucket, ok := keys[key]
	if !ok {
		bucket = newKeyBucket()
		keys[key] = bucket
	}
	if weak {
		bucket.weak[sub.SubID()] = sub
	} else {
		bucket.strong[sub.SubID()] = sub
	}
}

// Remove unregisters sub from (signal, key). A bucket with zero subscribers
// is pruned; a signal with zero keys is pruned.
func (m *SubscriptionManager) Remove(signal uint64, key string, sub Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(signal, key, sub.SubID())
}

func (m *SubscriptionManager) removeLocked(signal uint64, key string, id uint64) {
	keys, ok := m.byID[signal]
	if !ok {
		return
	}
	bucket, ok := keys[key]
	if !ok {
		return
	}
	delete(bucket.strong, id)
	delete(bucket.weak, id)
	if bucket.empty() {
		delete(keys, key)
	}
	if len(keys) == 0 {
		delete(m.byID, signal)
	}
}

// RemoveAll unregisters sub from every key of every signal it is attached
// to. Used when disposing an effect/subscriber.
func (m *SubscriptionManager) RemoveAll(sub Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := sub.SubID()
	for signal, keys := range m.byID {
		for key, bucket := range keys {
			delete(bucket.strong, id)
			delete(bucket.weak, id)
			if bucket.empty() {
				delete(keys, key)
			}
		}
		if len(keys) == 0 {
			delete(m.byID, signal)
		}
	}
}

// StrongCount returns the number of strong (non-weak) subscribers left on
// (signal, key); used to decide whether weak-only entries should be culled.
func (m *SubscriptionManager) StrongCount(signal uint64, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys, ok := m.byID[signal]
	if !ok {
		return 0
	}
	bucket, ok := keys[key]
	if !ok {
		return 0
	}
	return len(bucket.strong)
}

// Notify fires every subscriber registered against signal for the given
// keys (nil means "all keys", used by clear()-style mutations). It takes a
// snapshot of each bucket before iterating so a subscriber that disposes
// itself or schedules new subscriptions mid-notify cannot corrupt
// iteration.
func (m *SubscriptionManager) Notify(signal uint64, keys []string) {
	var snapshot []Subscriber

	m.mu.Lock()
	keyMap, ok := m.byID[signal]
	if ok {
		if keys == nil {
			for _, bucket := range keyMap {
				snapshot = append(snapshot, bucketSnapshot(bucket)...)
			}
		} else {
			for _, key := range keys {
				if bucket, ok := keyMap[key]; ok {
					snapshot = append(snapshot, bucketSnapshot(bucket)...)
				}
			}
		}
	}
	m.mu.Unlock()

	seen := make(map[uint64]struct{}, len(snapshot))
	for _, sub := range snapshot {
		if _, dup := seen[sub.SubID()]; dup {
			continue
		}
		seen[sub.SubID()] = struct{}{}
		sub.Notify()
	}
}

func bucketSnapshot(b *keyBucket) []Subscriber {
	out := make([]Subscriber, 0, len(b.strong)+len(b.weak))
	for _, s := range b.strong {
		out = append(out, s)
	}
	for _, s := range b.weak {
		out = append(out, s)
	}
	return out
}
