package inline

// eventQueue is an append-only FIFO whose entries keep a stable absolute
// index from push until pop, so queued events can be revised in place.
type eventQueue struct {
	buf  []Event
	head int // position of the front entry in buf
	base int // absolute index of buf[0]
}

func (q *eventQueue) reset() {
	q.buf = q.buf[:0]
	q.head = 0
	q.base = 0
}

func (q *eventQueue) len() int { return len(q.buf) - q.head }

// end returns the absolute index the next pushed event will get.
func (q *eventQueue) end() int { return q.base + len(q.buf) }

func (q *eventQueue) push(ev Event) {
	if q.head > 0 && q.head == len(q.buf) {
		q.base += q.head
		q.buf = q.buf[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.base += q.head
		q.buf = q.buf[:n]
		q.head = 0
	}
	q.buf = append(q.buf, ev)
}

// at returns the queued event with absolute index i.
func (q *eventQueue) at(i int) *Event {
	pos := i - q.base
	if pos < q.head || pos >= len(q.buf) {
		panic("inline: event index no longer queued")
	}
	return &q.buf[pos]
}

func (q *eventQueue) front() (*Event, bool) {
	if q.len() == 0 {
		return nil, false
	}
	return &q.buf[q.head], true
}

func (q *eventQueue) back() (*Event, bool) {
	if q.len() == 0 {
		return nil, false
	}
	return &q.buf[len(q.buf)-1], true
}

func (q *eventQueue) pop() (Event, bool) {
	if q.len() == 0 {
		return Event{}, false
	}
	ev := q.buf[q.head]
	q.head++
	return ev, true
}
