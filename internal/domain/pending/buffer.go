// Package pending implements the store-and-forward buffer for recipients
// with no live connection. Items wait here until the recipient's next
// registration, which drains them in enqueue order.
package pending

import "sync"

// Buffer maps recipient identities to FIFO queues of undelivered items.
//
// The buffer is unbounded and memory-resident: a recipient that never
// reconnects accumulates items for the life of the process, and a restart
// loses everything. Both limitations are inherited from the system this
// gateway replaces and are preserved deliberately.
type Buffer struct {
	mu     sync.Mutex
	queues map[string][]any
}

func NewBuffer() *Buffer {
	return &Buffer{
		queues: make(map[string][]any),
	}
}

// Enqueue appends item to the recipient's queue, creating it if absent.
func (b *Buffer) Enqueue(recipient string, item any) {
	b.mu.Lock()
	b.queues[recipient] = append(b.queues[recipient], item)
	b.mu.Unlock()
}

// DrainAll atomically removes and returns every item buffered for recipient,
// in enqueue order. Concurrent drains for the same recipient never duplicate
// an item: exactly one caller observes each.
func (b *Buffer) DrainAll(recipient string) []any {
	b.mu.Lock()
	items := b.queues[recipient]
	delete(b.queues, recipient)
	b.mu.Unlock()
	return items
}

// Len reports how many items are waiting for recipient.
func (b *Buffer) Len(recipient string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[recipient])
}

// Total reports the number of buffered items across all recipients.
func (b *Buffer) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, q := range b.queues {
		n += len(q)
	}
	return n
}
