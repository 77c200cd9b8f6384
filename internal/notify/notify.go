// Package notify holds the sun-protection reminder state.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

// State names a phase of the reminder lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateNotifying State = "notifying"
)

// Status is a point-in-time view of the reminder. Since and DismissAt are
// only set while notifying; DismissAt only when an auto-dismiss is armed.
type Status struct {
	State     State      `json:"state"`
	Since     *time.Time `json:"since,omitempty"`
	DismissAt *time.Time `json:"dismiss_at,omitempty"`
}

// Notifier is a single reminder slot moving between idle and notifying.
// Leaving the notifying state takes an explicit Dismiss or, when the
// caller supplied a timeout, that timer firing. An idle notifier holds
// nothing and schedules nothing.
type Notifier struct {
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	state     State
	since     time.Time
	dismissAt time.Time
	timer     clockwork.Timer
	gen       uint64
}

// New returns an idle Notifier.
func New(clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		state:   StateIdle,
	}
}

// Notify arms the reminder. A zero autoDismiss keeps it up until Dismiss;
// a positive one schedules an automatic dismissal, which a later explicit
// Dismiss cancels. Arming an already notifying reminder is a no-op and
// does not extend its timeout.
func (n *Notifier) Notify(autoDismiss time.Duration) Status {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == StateNotifying {
		return n.statusLocked()
	}

	n.state = StateNotifying
	n.since = n.clock.Now()
	n.dismissAt = time.Time{}
	n.gen++

	if autoDismiss > 0 {
		n.dismissAt = n.since.Add(autoDismiss)
		gen := n.gen
		n.timer = n.clock.AfterFunc(autoDismiss, func() { n.expire(gen) })
	}

	n.metrics.ReminderActive.Set(1)
	n.logger.Info("reminder armed", "auto_dismiss", autoDismiss)
	return n.statusLocked()
}

// Dismiss clears the reminder. Dismissing an idle reminder is a no-op.
func (n *Notifier) Dismiss() Status {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == StateNotifying {
		n.clearLocked("user")
	}
	return n.statusLocked()
}

// Status reports the current reminder state.
func (n *Notifier) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.statusLocked()
}

// expire is the auto-dismiss path. The generation guard drops timers that
// outlived their reminder: a stopped timer may already be mid-fire.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateNotifying || gen != n.gen {
		return
	}
	n.clearLocked("timeout")
}

func (n *Notifier) clearLocked(reason string) {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.state = StateIdle
	n.since = time.Time{}
	n.dismissAt = time.Time{}
	n.metrics.ReminderActive.Set(0)
	n.logger.Info("reminder dismissed", "reason", reason)
}

func (n *Notifier) statusLocked() Status {
	st := Status{State: n.state}
	if n.state == StateNotifying {
		since := n.since
		st.Since = &since
		if !n.dismissAt.IsZero() {
			at := n.dismissAt
			st.DismissAt = &at
		}
	}
	return st
}
