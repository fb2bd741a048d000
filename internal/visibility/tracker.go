// Package visibility tracks which mount points are on screen.
//
// The host reports intersection ratios as layout changes ([Tracker.Report]);
// the tracker turns them into visible/hidden transitions and delivers them to
// subscribers asynchronously on the dispatch queue. A mount point is visible
// when at least [Threshold] of it intersects the viewport.
package visibility

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/dispatch"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// Threshold is the intersection ratio at or above which a mount point counts as visible.
const Threshold = 0.6

// Listener receives visibility transitions.
type Listener func(mp models.MountPoint, visible bool)

type entry struct {
	delivered bool // a transition has been delivered at least once
	visible   bool // last delivered state
	settled   bool // latest reported state, not yet delivered
	dirty     bool
}

// Tracker turns intersection reports into visibility transitions.
//
// Observe, Unobserve, Report and Subscribe must be called from the queue's
// goroutine (the host loop), like every other piece of embed state.
type Tracker struct {
	queue     *dispatch.Queue
	logger    *log.Logger
	entries   map[models.MountPoint]*entry
	listeners map[int]Listener
	nextSub   int
	flushing  bool
}

// NewTracker creates a [Tracker] delivering on queue.
func NewTracker(queue *dispatch.Queue, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Tracker{
		queue:     queue,
		logger:    shared.WithLogger(logger, "component", "visibility"),
		entries:   make(map[models.MountPoint]*entry),
		listeners: make(map[int]Listener),
	}
}

// Observe starts tracking mp. Observing a tracked mount point is a no-op.
func (t *Tracker) Observe(mp models.MountPoint) {
	if _, ok := t.entries[mp]; ok {
		return
	}
	t.entries[mp] = &entry{}
	t.logger.Debug("observe", "mount", mp)
}

// Unobserve stops tracking mp and drops any undelivered report for it.
func (t *Tracker) Unobserve(mp models.MountPoint) {
	if _, ok := t.entries[mp]; !ok {
		return
	}
	delete(t.entries, mp)
	t.logger.Debug("unobserve", "mount", mp)
}

// Observing reports whether mp is tracked.
func (t *Tracker) Observing(mp models.MountPoint) bool {
	_, ok := t.entries[mp]
	return ok
}

// Len returns the number of tracked mount points.
func (t *Tracker) Len() int { return len(t.entries) }

// Subscribe registers fn for every future transition and returns a cancel function.
func (t *Tracker) Subscribe(fn Listener) (cancel func()) {
	id := t.nextSub
	t.nextSub++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// Report records the latest intersection ratio of mp. Reports for untracked
// mount points are ignored. Delivery happens on a later queue turn; several
// reports before then collapse into the most recent one.
func (t *Tracker) Report(mp models.MountPoint, ratio float64) {
	e, ok := t.entries[mp]
	if !ok {
		return
	}
	e.settled = ratio >= Threshold
	e.dirty = true

	if !t.flushing {
		t.flushing = true
		t.queue.Post(t.flush)
	}
}

// flush delivers one transition per dirty mount point whose settled state
// differs from what its listeners last saw.
func (t *Tracker) flush() {
	t.flushing = false

	type transition struct {
		mp      models.MountPoint
		visible bool
	}
	var out []transition
	for mp, e := range t.entries {
		if !e.dirty {
			continue
		}
		e.dirty = false
		if e.delivered && e.visible == e.settled {
			continue
		}
		e.delivered = true
		e.visible = e.settled
		out = append(out, transition{mp, e.settled})
	}

	for _, tr := range out {
		for _, fn := range t.listeners {
			// A listener may unobserve other mount points while handling this batch.
			if _, ok := t.entries[tr.mp]; !ok {
				break
			}
			fn(tr.mp, tr.visible)
		}
	}
}
