package domain

// Plan is the immutable phase list for one session along with what it was
// built from.
type Plan struct {
	SessionType string
	Custom      bool
	MaxHold     int
	Phases      []Phase
}

// TotalSeconds sums every finite phase; open-ended phases count as zero.
func (p Plan) TotalSeconds() int {
	total := 0
	for _, phase := range p.Phases {
		total += phase.Duration
	}
	return total
}

// IndefiniteCount counts phases that wait for a confirmation.
func (p Plan) IndefiniteCount() int {
	n := 0
	for _, phase := range p.Phases {
		if phase.Indefinite() {
			n++
		}
	}
	return n
}

func (p Plan) Empty() bool {
	return len(p.Phases) == 0
}
