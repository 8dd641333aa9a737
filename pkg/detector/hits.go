package detector

// Hit is a photon captured by a detector. Random is the uniform draw that
// gates the hit against the detector's quantum efficiency.
type Hit struct {
	Detector    int
	Time        float64 // ns
	WaveIndex   int
	LocalX      float64
	LocalY      float64
	Cosine      float64 // against the refracted direction, when angle-resolved
	Transitions int
	Random      float64
}

// Registry receives hits from a tracer
type Registry interface {
	IsSiPM(id int) bool
	MaxQE(wave int) float64
	RecordHit(hit Hit)
}

// Collector is a per-worker Registry that keeps every hit and counts the
// ones passing the quantum efficiency test
type Collector struct {
	array  *Array
	Hits   []Hit
	Signal []int // detected photons per detector id
}

var _ Registry = (*Collector)(nil)

// NewCollector creates an empty collector for an array
func NewCollector(array *Array) *Collector {
	return &Collector{array: array, Signal: make([]int, array.Len())}
}

func (c *Collector) IsSiPM(id int) bool     { return c.array.IsSiPM(id) }
func (c *Collector) MaxQE(wave int) float64 { return c.array.MaxQE(wave) }

// RecordHit stores the hit and counts it as signal when it passes QE
func (c *Collector) RecordHit(hit Hit) {
	c.Hits = append(c.Hits, hit)
	if hit.Detector < 0 || hit.Detector >= len(c.Signal) {
		return
	}
	if hit.Random < c.array.QE(hit.Detector, hit.WaveIndex) {
		c.Signal[hit.Detector]++
	}
}

// Detected returns the total signal over all detectors
func (c *Collector) Detected() int {
	total := 0
	for _, n := range c.Signal {
		total += n
	}
	return total
}

// Merge appends another collector's hits and adds its signal
func (c *Collector) Merge(other *Collector) {
	c.Hits = append(c.Hits, other.Hits...)
	for i, n := range other.Signal {
		if i < len(c.Signal) {
			c.Signal[i] += n
		}
	}
}

// Reset clears hits and signal, keeping the array
func (c *Collector) Reset() {
	c.Hits = c.Hits[:0]
	for i := range c.Signal {
		c.Signal[i] = 0
	}
}
