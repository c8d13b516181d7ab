package field

// frameLoop is a cancellable repeating task driven by host frames. Each
// callback re-arms the next one; cancel drops the queued callback and the
// cancelled guard stops any that was already in flight.
type frameLoop struct {
	host      Host
	body      func(now float64)
	onPanic   func(v any)
	id        FrameID
	cancelled bool
}

func newFrameLoop(host Host, body func(now float64), onPanic func(v any)) *frameLoop {
	return &frameLoop{host: host, body: body, onPanic: onPanic}
}

func (l *frameLoop) start() {
	l.id = l.host.RequestFrame(l.fire)
}

func (l *frameLoop) fire(now float64) {
	if l.cancelled {
		return
	}
	l.run(now)
	// The body may have torn the loop down.
	if l.cancelled {
		return
	}
	l.id = l.host.RequestFrame(l.fire)
}

// run executes one body; a panic is handed to onPanic so the loop keeps going.
func (l *frameLoop) run(now float64) {
	defer func() {
		if v := recover(); v != nil && l.onPanic != nil {
			l.onPanic(v)
		}
	}()
	l.body(now)
}

func (l *frameLoop) cancel() {
	if l.cancelled {
		return
	}
	l.cancelled = true
	l.host.CancelFrame(l.id)
}
