package synth

import (
	"github.com/tphakala/go-audio-synth/internal/simdops"
)

// track is one mixer input: a source and its own filter chain.
type track struct {
	source  Source
	filters FilterChain
}

// Mixer combines sources with equal weight: the mix at time t is the mean of
// every track's (filtered) sample. Dividing by the track count keeps in-phase
// sources from clipping.
//
// A Mixer holds filter memory and a scratch buffer, so it must be driven by
// a single goroutine with monotonically increasing time when filters are used.
type Mixer struct {
	tracks  []track
	scratch []float64
	ops     *simdops.Ops[float64]
}

// NewMixer creates a mixer over unfiltered sources.
func NewMixer(sources ...Source) *Mixer {
	m := &Mixer{
		tracks: make([]track, 0, len(sources)),
		ops:    simdops.For[float64](),
	}
	for _, src := range sources {
		m.Add(src)
	}
	return m
}

// Add appends a source, optionally filtered before mixing.
func (m *Mixer) Add(src Source, filters ...*Filter) {
	m.tracks = append(m.tracks, track{source: src, filters: filters})
	m.scratch = append(m.scratch, 0)
}

// Len returns the number of tracks.
func (m *Mixer) Len() int {
	return len(m.tracks)
}

// At returns the mixed sample at time t in seconds. An empty mixer returns
// silence; renderers reject empty mixes before getting here.
func (m *Mixer) At(t float64) float64 {
	if len(m.tracks) == 0 {
		return 0
	}
	for i := range m.tracks {
		tr := &m.tracks[i]
		v := tr.source.Sample(t)
		if len(tr.filters) > 0 {
			v = tr.filters.Apply(v)
		}
		m.scratch[i] = v
	}
	return m.ops.Sum(m.scratch) / float64(len(m.tracks))
}

// Reset clears the memory of every track filter.
func (m *Mixer) Reset() {
	for i := range m.tracks {
		m.tracks[i].filters.Reset()
	}
}
