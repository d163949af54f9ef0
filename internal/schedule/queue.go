// Package schedule implements deferred one-shot callbacks for the
// single-threaded simulation. Nothing here blocks or spawns goroutines:
// callbacks fire from Drain, which the owning component calls once per tick.
package schedule

import (
	"container/heap"
	"log/slog"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

// task is one pending callback.
type task struct {
	name  string
	at    time.Duration
	seq   uint64
	token Token
	fn    func()
	index int
}

// Queue is a priority queue of (fireAt, callback, token) entries ordered by
// fire time, ties broken by insertion order.
// Not safe for concurrent use.
type Queue struct {
	clock   clock.Clock
	tasks   taskHeap
	byToken map[Token]*task
	seq     uint64
}

// NewQueue creates an empty queue reading time from clk.
func NewQueue(clk clock.Clock) *Queue {
	return &Queue{
		clock:   clk,
		byToken: make(map[Token]*task),
	}
}

// After schedules fn to fire once delay has elapsed from now.
func (q *Queue) After(delay time.Duration, name string, fn func()) Token {
	return q.At(q.clock.Now()+max(delay, 0), name, fn)
}

// At schedules fn to fire once session time reaches at.
func (q *Queue) At(at time.Duration, name string, fn func()) Token {
	q.seq++
	t := &task{
		name:  name,
		at:    at,
		seq:   q.seq,
		token: Token(q.seq),
		fn:    fn,
	}
	heap.Push(&q.tasks, t)
	q.byToken[t.token] = t
	return t.token
}

// Cancel removes a pending callback before it fires.
// Returns false if the token already fired, was cancelled, or is unknown.
func (q *Queue) Cancel(tok Token) bool {
	t, ok := q.byToken[tok]
	if !ok {
		return false
	}
	// index is -1 once Drain has popped the task into its due batch
	if t.index >= 0 {
		heap.Remove(&q.tasks, t.index)
	}
	delete(q.byToken, tok)
	return true
}

// Pending reports whether tok is still waiting to fire.
func (q *Queue) Pending(tok Token) bool {
	_, ok := q.byToken[tok]
	return ok
}

// Remaining returns time left until tok fires (zero if due).
func (q *Queue) Remaining(tok Token) (time.Duration, bool) {
	t, ok := q.byToken[tok]
	if !ok {
		return 0, false
	}
	return max(t.at-q.clock.Now(), 0), true
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Clear cancels every pending callback and returns how many were dropped.
func (q *Queue) Clear() int {
	n := len(q.tasks)
	q.tasks = q.tasks[:0]
	clear(q.byToken)
	return n
}

// Drain fires every callback due at the current time, in fire-time order.
// Callbacks scheduled while draining wait for the next Drain, so a callback
// that reschedules itself with zero delay cannot spin forever. A callback
// cancelled by an earlier one in the same batch does not fire.
// A panicking callback is logged and does not stop the remaining ones.
func (q *Queue) Drain() int {
	now := q.clock.Now()

	var due []*task
	for len(q.tasks) > 0 && q.tasks[0].at <= now {
		due = append(due, heap.Pop(&q.tasks).(*task))
	}

	fired := 0
	for _, t := range due {
		if _, ok := q.byToken[t.token]; !ok {
			continue
		}
		delete(q.byToken, t.token)
		q.run(t)
		fired++
	}

	return fired
}

func (q *Queue) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduled callback panicked",
				"task", t.name,
				"token", t.token,
				"panic", r)
		}
	}()
	t.fn()
}

// taskHeap implements heap.Interface ordered by (at, seq).
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
