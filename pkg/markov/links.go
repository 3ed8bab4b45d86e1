package markov

import (
	"math"
	"math/big"
	"math/bits"
)

// distribution is a frequency table over next-token IDs. Entries keep the
// order in which they were first added, which is the enumeration order used
// when sampling.
type distribution struct {
	choices []ChainToken
	index   map[int]int // token ID -> position in choices
	total   int
}

func newDistribution() *distribution {
	return &distribution{index: make(map[int]int)}
}

// add increments the count of id by freq, appending it if unseen.
func (d *distribution) add(id, freq int) {
	if i, ok := d.index[id]; ok {
		d.choices[i].Freq += freq
	} else {
		d.index[id] = len(d.choices)
		d.choices = append(d.choices, ChainToken{Id: id, Freq: freq})
	}
	d.total += freq
}

// scale multiplies every count by k. Scaling by zero empties the table, since
// a token with no weight is no longer a candidate. It reports false, leaving d
// unchanged, if the total would overflow an int.
func (d *distribution) scale(k int) bool {
	if k == 0 {
		d.choices = d.choices[:0]
		clear(d.index)
		d.total = 0
		return true
	}
	// Every count is at most the total, so checking the total covers them all.
	hi, lo := bits.Mul64(uint64(d.total), uint64(k))
	if hi != 0 || lo > math.MaxInt {
		return false
	}
	for i := range d.choices {
		d.choices[i].Freq *= k
	}
	d.total *= k
	return true
}

// merge adds every count of o into d. It reports false, leaving d unchanged,
// if the total would overflow an int.
func (d *distribution) merge(o *distribution) bool {
	if d.total > math.MaxInt-o.total {
		return false
	}
	for _, c := range o.choices {
		d.add(c.Id, c.Freq)
	}
	return true
}

// choose returns the first entry whose cumulative count exceeds draw, where
// draw is in [0, total).
func (d *distribution) choose(draw int) int {
	for _, c := range d.choices {
		draw -= c.Freq
		if draw < 0 {
			return c.Id
		}
	}
	// Unreachable for draw < total.
	return d.choices[len(d.choices)-1].Id
}

// bigDistribution is the arbitrary-precision form of distribution, used when
// blended counts no longer fit in an int.
type bigDistribution struct {
	ids   []int
	freqs []*big.Int
	index map[int]int
	total big.Int
}

func newBigDistribution() *bigDistribution {
	return &bigDistribution{index: make(map[int]int)}
}

func (d *bigDistribution) add(id int, freq *big.Int) {
	if i, ok := d.index[id]; ok {
		d.freqs[i].Add(d.freqs[i], freq)
	} else {
		d.index[id] = len(d.ids)
		d.ids = append(d.ids, id)
		d.freqs = append(d.freqs, new(big.Int).Set(freq))
	}
	d.total.Add(&d.total, freq)
}

func (d *bigDistribution) scale(k *big.Int) {
	if k.Sign() == 0 {
		d.ids = d.ids[:0]
		d.freqs = d.freqs[:0]
		clear(d.index)
		d.total.SetInt64(0)
		return
	}
	for _, f := range d.freqs {
		f.Mul(f, k)
	}
	d.total.Mul(&d.total, k)
}

func (d *bigDistribution) merge(o *distribution) {
	for _, c := range o.choices {
		d.add(c.Id, big.NewInt(int64(c.Freq)))
	}
}

// choose is distribution.choose for a draw in [0, total).
func (d *bigDistribution) choose(draw *big.Int) int {
	rem := new(big.Int).Set(draw)
	for i, f := range d.freqs {
		rem.Sub(rem, f)
		if rem.Sign() < 0 {
			return d.ids[i]
		}
	}
	return d.ids[len(d.ids)-1]
}

// randBelow draws a uniform integer in [0, n) from r, n > 0, by rejection
// sampling over 30-bit chunks.
func randBelow(r RandSource, n *big.Int) *big.Int {
	const chunk = 30
	bitLen := n.BitLen()
	chunks := (bitLen + chunk - 1) / chunk
	x := new(big.Int)
	for {
		x.SetInt64(0)
		for range chunks {
			x.Lsh(x, chunk)
			x.Or(x, big.NewInt(int64(r.IntN(1<<chunk))))
		}
		x.Rsh(x, uint(chunks*chunk-bitLen))
		if x.Cmp(n) < 0 {
			return x
		}
	}
}
