package rtlog

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff"
)

const (
	periodicMinSleep = 2 * time.Second
	periodicMaxSleep = 24 * time.Hour
)

// DebugPeriodicIntervals enables logging of the time remaining until the
// next periodic reporter runs, each time one fires.
var DebugPeriodicIntervals = false

// PeriodicFunc is run periodically by a Logger, with the time elapsed since
// its last run.
type PeriodicFunc func(c *Composer, sinceLast time.Duration)

type periodicLogger struct {
	id       string
	logger   PeriodicFunc
	interval backoff.ExponentialBackOff
	nextRun  time.Time
	lastRun  time.Time
}

// periodic groups a Logger's periodic-reporter state.
type periodic struct {
	timer   *time.Timer
	loggers []*periodicLogger
	m       sync.Mutex
	stop    bool
}

func newPeriodic() periodic {
	return periodic{timer: time.NewTimer(periodicMaxSleep)}
}

func (p *periodic) Close() {
	p.m.Lock()
	defer p.m.Unlock()
	p.stop = true
	p.timer.Stop()
	p.timer.Reset(0)
}

// resetTimer points the shared timer at whichever periodic reporter is
// next due.
func resetTimer(l *Logger, now time.Time) {
	next := now.Add(periodicMaxSleep)
	for _, pl := range l.p.loggers {
		if next.After(pl.nextRun) {
			next = pl.nextRun
		}
	}
	if DebugPeriodicIntervals {
		l.Debugf("(%s until next periodic reporter)", next.Sub(now).Round(time.Millisecond))
	}
	l.p.timer.Stop()
	l.p.timer.Reset(next.Sub(now))
}

// runPeriodic runs every reporter due before now+minSleep.
func runPeriodic(l *Logger, minSleep time.Duration, started time.Time) {
	c := l.Compose(Info)
	defer c.Close()
	limit := started.Add(minSleep)
	for _, pl := range l.p.loggers {
		if !limit.After(pl.nextRun) {
			continue
		}
		pl.logger(&c, started.Sub(pl.lastRun))
		pl.lastRun = started
		next := pl.interval.NextBackOff()
		if next <= 0 {
			c.Writeln("stopping periodic reporter %s", pl.id)
			next = periodicMaxSleep
		}
		if DebugPeriodicIntervals {
			c.Writeln("(%s until next %s)", next.Round(time.Second), pl.id)
		}
		pl.nextRun = started.Add(next)
	}
}

func periodicRunner(l *Logger) {
	for {
		now := <-l.p.timer.C
		l.p.m.Lock()
		if l.p.stop {
			l.p.m.Unlock()
			return
		}
		runPeriodic(l, periodicMinSleep, now)
		resetTimer(l, now)
		l.p.m.Unlock()
	}
}

// RunAllPeriodic runs every reporter immediately, ignoring its interval.
func (l *Logger) RunAllPeriodic() {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := time.Now()
	runPeriodic(l, periodicMaxSleep, n)
	resetTimer(l, n)
}

// AddPeriodic registers f to run periodically, starting at minInterval and
// backing off (tripling, unrandomized) up to maxInterval each time it runs
// without being removed.
func (l *Logger) AddPeriodic(id string, minInterval, maxInterval time.Duration, f PeriodicFunc) {
	b := backoff.ExponentialBackOff{
		InitialInterval:     minInterval,
		MaxInterval:         maxInterval,
		Multiplier:          3.0,
		RandomizationFactor: 0.0,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	l.p.m.Lock()
	defer l.p.m.Unlock()
	for _, pl := range l.p.loggers {
		if pl.id == id {
			l.Errorf("a periodic reporter with ID %s already exists", id)
			return
		}
	}
	added := time.Now()
	l.p.loggers = append(l.p.loggers, &periodicLogger{
		id:       id,
		logger:   f,
		interval: b,
		lastRun:  added,
		nextRun:  added.Add(b.NextBackOff()),
	})
	resetTimer(l, added)
}

// RemovePeriodic stops id from running again. Logs an error if id is not
// registered.
func (l *Logger) RemovePeriodic(id string) {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := len(l.p.loggers)
	for i := 0; i < n; i++ {
		if l.p.loggers[i].id == id {
			l.p.loggers[i] = l.p.loggers[n-1]
			l.p.loggers = l.p.loggers[:n-1]
			return
		}
	}
	l.Errorf("no periodic reporter with ID %s to remove", id)
}
