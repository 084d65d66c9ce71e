// Public domain.

package pipeline

import (
	"fmt"

	"github.com/soniakeys/comove/astro"
	"github.com/soniakeys/comove/internal/catalog"
	"github.com/soniakeys/unit"
)

// chunkSize is the number of stars handed to a transform worker at once.
const chunkSize = 512

// chunk is a run of stars to transform, with a return channel that works
// like a ticket for picking up the result.
type chunk struct {
	start int
	stars []catalog.Star
	rch   chan error
}

// transform fills the Cartesian and galactic fields of stars.
//
// Chunks are dispatched to workers with a ticket each.  Tickets are queued
// in submission order and results are collected in that order, so the
// first error reported is the one for the earliest failing star.
func (p *Pipeline) transform(stars []catalog.Star) error {
	// the ticket queue is buffered so a fast worker can drop off its
	// result without waiting for workers ahead of it.
	tickets := make(chan chan error, p.workers*2)
	work := make(chan *chunk)

	// dispatcher
	go func() {
		for start := 0; start < len(stars); start += chunkSize {
			end := min(start+chunkSize, len(stars))
			rch := make(chan error, 1)
			work <- &chunk{start, stars[start:end], rch}
			tickets <- rch
		}
		close(work)
		close(tickets)
	}()

	// workers are started only as chunks call for them.  there may be
	// more cores than chunks.
	go func() {
		for n := 0; n < p.workers; n++ {
			c, ok := <-work
			if !ok {
				return
			}
			go p.transformWorker(c, work)
		}
	}()

	// every ticket is redeemed, even after an error, so the dispatcher
	// can finish.
	var first error
	for rch := range tickets {
		if err := <-rch; err != nil && first == nil {
			first = err
		}
	}
	return first
}

// transformWorker transforms c, then further chunks from work until work
// is closed.
func (p *Pipeline) transformWorker(c *chunk, work chan *chunk) {
	for ok := true; ok; c, ok = <-work {
		c.rch <- p.transformChunk(c) // buffered.  drop off and continue
	}
}

func (p *Pipeline) transformChunk(c *chunk) error {
	for i := range c.stars {
		s := &c.stars[i]
		ra := unit.RAFromDeg(s.RA)
		dec := unit.AngleFromDeg(s.Dec)
		x := astro.EqToCart(ra, dec, s.Distance)
		s.X, s.Y, s.Z = x.X, x.Y, x.Z
		l, b := p.gal(ra, dec)
		s.GalL, s.GalB = l.Deg(), b.Deg()
		if !astro.IsFinite(s.X, s.Y, s.Z, s.GalL, s.GalB) {
			return fmt.Errorf("star %d (%q): non-finite coordinates", c.start+i, s.ID)
		}
	}
	return nil
}
