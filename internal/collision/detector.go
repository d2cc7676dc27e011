package collision

// Rule pairs two layers that are tested against each other every tick.
// Both owners are notified of a hit, so the order of A and B only affects
// iteration order.
type Rule struct {
	A string
	B string
}

// Detector runs a fixed rule list against an index.
type Detector struct {
	index *Index
	rules []Rule
}

// NewDetector copies rules; later changes to the caller's slice are not seen.
func NewDetector(index *Index, rules []Rule) *Detector {
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Detector{index: index, rules: r}
}

func (d *Detector) Rules() []Rule {
	r := make([]Rule, len(d.rules))
	copy(r, d.rules)
	return r
}

// Step evaluates every rule once and returns the number of hits. Each rule
// works on snapshots of its two layers, so shapes registered by a collision
// hook are first tested by the next rule.
func (d *Detector) Step() int {
	hits := 0
	for _, rule := range d.rules {
		first := d.index.Layer(rule.A)
		second := d.index.Layer(rule.B)
		if len(first) == 0 || len(second) == 0 {
			continue
		}

		for _, a := range first {
			for _, b := range second {
				ca, okA := a.Entity.Collider(a.Shape)
				cb, okB := b.Entity.Collider(b.Shape)
				if !okA || !okB {
					continue
				}
				if TestAndResolve(&ca, &cb) {
					a.Entity.Collide(cb)
					b.Entity.Collide(ca)
					hits++
				}
			}
		}
	}
	return hits
}
