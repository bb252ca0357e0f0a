package core

import "math/rand/v2"

// Bag is a 7-bag piece randomizer: every window of seven consecutive draws
// aligned to a refill contains each kind exactly once.
//
// Bag is a plain value. Copying it copies the random source too, so a cloned
// board draws the same sequence as the original.
type Bag struct {
	src   rand.PCG
	order [7]Kind
	next  int
}

// NewBag returns a bag seeded with seed. Equal seeds yield equal sequences.
func NewBag(seed int64) Bag {
	b := Bag{src: *rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)}
	b.refill()
	return b
}

// refill reshuffles all seven kinds using Fisher-Yates.
func (b *Bag) refill() {
	b.order = AllKinds
	rng := rand.New(&b.src)
	for i := len(b.order) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		b.order[i], b.order[j] = b.order[j], b.order[i]
	}
	b.next = 0
}

// Draw returns the next kind, refilling when the current permutation is spent.
func (b *Bag) Draw() Kind {
	if b.next >= len(b.order) {
		b.refill()
	}
	k := b.order[b.next]
	b.next++
	return k
}

// Peek returns the kind the next Draw would return without consuming it.
func (b Bag) Peek() Kind {
	return b.Draw()
}
