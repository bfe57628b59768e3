package step

import "time"

// timerEntry is pure data until Runtime.AdvanceTime visits it. Kept in a
// flat, insertion-ordered slice rather than a heap, since a rescanned list
// is the straightforward choice given the handful of timers any single test
// fixture is likely to carry; a heap would only be worth it for a much
// larger timer population.
type timerEntry struct {
	callback    func()
	fireAt      time.Time
	repeating   bool
	interval    time.Duration
	cancellable *Cancellable
}

// dueTimers purges cancelled entries from r.timers (they are dropped without
// ever firing) and returns, in insertion order, the entries whose fireAt has
// been crossed by now.
func (r *Runtime) dueTimers(now time.Time) []*timerEntry {
	live := make([]*timerEntry, 0, len(r.timers))
	for _, t := range r.timers {
		if !t.cancellable.IsCancelled() {
			live = append(live, t)
		}
	}
	r.timers = live

	var due []*timerEntry
	for _, t := range r.timers {
		if !t.fireAt.After(now) {
			due = append(due, t)
		}
	}
	return due
}

// removeTimer drops a single fired one-shot timer from the registry.
func (r *Runtime) removeTimer(target *timerEntry) {
	for i, t := range r.timers {
		if t == target {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			return
		}
	}
}

// ScheduleOnce installs a one-shot timer firing delay after the current
// virtual instant.
func (r *Runtime) ScheduleOnce(delay time.Duration, callback func()) *Cancellable {
	t := &timerEntry{
		callback:    callback,
		fireAt:      r.clock.Now().Add(delay),
		cancellable: newCancellable(),
	}
	r.timers = append(r.timers, t)
	return t.cancellable
}

// ScheduleRepeatedly installs a timer that first fires initialDelay after
// the current virtual instant, then every interval thereafter, anchored to
// its own previous fireAt rather than to the instant it happens to be
// observed at. This preserves cadence across AdvanceTime calls that skip
// several periods at once.
func (r *Runtime) ScheduleRepeatedly(initialDelay, interval time.Duration, callback func()) *Cancellable {
	t := &timerEntry{
		callback:    callback,
		fireAt:      r.clock.Now().Add(initialDelay),
		repeating:   true,
		interval:    interval,
		cancellable: newCancellable(),
	}
	r.timers = append(r.timers, t)
	return t.cancellable
}

// AdvanceTime moves the virtual clock forward by d and fires every timer
// that comes due, in insertion order, re-collecting after each pass so a
// single large advance correctly re-fires a repeating timer as many times
// as its period demands. Timer callbacks run synchronously inside this call
// and do not themselves drain mailboxes; callers wanting those consequences
// processed call Step or Drain afterwards.
func (r *Runtime) AdvanceTime(d time.Duration) {
	r.clock.Advance(d)

	for {
		due := r.dueTimers(r.clock.Now())
		if len(due) == 0 {
			break
		}
		for _, t := range due {
			t.callback()
			if t.repeating {
				t.fireAt = t.fireAt.Add(t.interval)
			} else {
				r.removeTimer(t)
			}
		}
	}
}
