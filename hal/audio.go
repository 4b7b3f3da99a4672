package hal

import "sync"

// pcmRing is a bounded mono sample queue shared between the frame loop
// (writer) and an audio backend's callback (reader).
type pcmRing struct {
	mu  sync.Mutex
	buf []int16
	r   int
	n   int
}

// reset drops queued samples and resizes the ring.
func (q *pcmRing) reset(size int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if cap(q.buf) >= size {
		q.buf = q.buf[:size]
	} else {
		q.buf = make([]int16, size)
	}
	q.r, q.n = 0, 0
}

// write queues as much of s as fits and returns the count.
func (q *pcmRing) write(s []int16) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if free := len(q.buf) - q.n; len(s) > free {
		s = s[:free]
	}
	for _, v := range s {
		q.buf[(q.r+q.n)%len(q.buf)] = v
		q.n++
	}
	return len(s)
}

// read fills dst from the queue and zeroes whatever it could not fill. It
// returns the number of queued samples consumed.
func (q *pcmRing) read(dst []int16) int {
	q.mu.Lock()
	n := 0
	for n < len(dst) && q.n > 0 {
		dst[n] = q.buf[q.r]
		q.r++
		if q.r == len(q.buf) {
			q.r = 0
		}
		q.n--
		n++
	}
	q.mu.Unlock()
	clear(dst[n:])
	return n
}

func (q *pcmRing) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

// ringSize picks roughly 200ms of buffering.
func ringSize(sampleRate uint32) int {
	n := int(sampleRate / 5)
	if n < 2048 {
		n = 2048
	}
	if n > 16384 {
		n = 16384
	}
	return n
}

// discardAudio accepts and drops everything. It backs headless runs.
type discardAudio struct{}

func (discardAudio) Start(uint32) error         { return nil }
func (discardAudio) Stop() error                { return nil }
func (discardAudio) SetVolume(uint8)            {}
func (discardAudio) WriteSamples(s []int16) int { return len(s) }
func (discardAudio) PendingSamples() int        { return 0 }
