package tetris

import "math/rand"

// Bag is the 7-bag randomizer: it hands out a shuffled permutation of all
// seven kinds, one at a time, and reshuffles when the permutation runs out.
type Bag struct {
	rng     *rand.Rand
	pending []Kind
}

// NewBag creates a bag drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next returns the next kind, refilling the bag when it is empty.
func (b *Bag) Next() Kind {
	if len(b.pending) == 0 {
		b.refill()
	}
	k := b.pending[0]
	b.pending = b.pending[1:]
	return k
}

func (b *Bag) refill() {
	b.pending = append(b.pending[:0], AllKinds[:]...)
	b.rng.Shuffle(len(b.pending), func(i, j int) {
		b.pending[i], b.pending[j] = b.pending[j], b.pending[i]
	})
}

// queue is the look-ahead of upcoming kinds, fed by a Bag.
type queue struct {
	bag       *Bag
	lookAhead int
	items     []Kind
}

func newQueue(bag *Bag, lookAhead int) *queue {
	q := &queue{bag: bag, lookAhead: max(lookAhead, 1)}
	q.fill()
	return q
}

// fill tops the queue up to its look-ahead length.
func (q *queue) fill() {
	for len(q.items) < q.lookAhead {
		q.items = append(q.items, q.bag.Next())
	}
}

// pop consumes the head and leaves at least lookAhead entries behind.
func (q *queue) pop() Kind {
	if len(q.items) == 0 {
		q.fill()
	}
	k := q.items[0]
	q.items = q.items[1:]
	q.fill()
	return k
}

// peek returns a copy of the upcoming kinds.
func (q *queue) peek() []Kind {
	return append([]Kind(nil), q.items...)
}
