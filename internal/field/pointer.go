package field

import "github.com/iburimskiy/ambient-field/internal/config"

// Pointer is the tracked cursor state. LastMove is in host milliseconds.
type Pointer struct {
	X, Y     float64
	Active   bool
	LastMove float64
}

func (p *Pointer) move(x, y, now float64) {
	p.X = x
	p.Y = y
	p.Active = true
	p.LastMove = now
}

func (p *Pointer) leave() {
	p.Active = false
}

// expire turns the influence off once no movement has been seen for
// longer than the staleness timeout.
func (p *Pointer) expire(now float64) {
	if now-p.LastMove > config.PointerStaleMs {
		p.Active = false
	}
}
