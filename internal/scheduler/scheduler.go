package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/messages"
	"telegram-shift-bot/internal/schedule"
	"telegram-shift-bot/internal/storage"
)

const DefaultInterval = time.Minute

// Notifier announces shift boundaries. Each Tick reads the schedule fresh.
type Notifier struct {
	store     storage.Store
	announcer Announcer
	clock     clockwork.Clock
	log       *zap.Logger

	mu   sync.Mutex
	last string // date, HH:MM and shift id of the last announcement
}

func NewNotifier(store storage.Store, announcer Announcer, clock clockwork.Clock, log *zap.Logger) *Notifier {
	return &Notifier{store: store, announcer: announcer, clock: clock, log: log}
}

// Tick checks whether a shift starts at the current minute and announces it.
// Failures are logged; nothing is returned to the job runner.
func (n *Notifier) Tick(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.clock.Now()
	hhmm := now.Format("15:04")

	shifts, err := n.store.Load(ctx)
	if err != nil {
		n.log.Error("load schedule", zap.String("now", hhmm), zap.Error(err))
		return
	}

	current, ok := schedule.FindCurrent(shifts, hhmm)
	if !ok {
		n.log.Debug("no shift starts now", zap.String("now", hhmm))
		return
	}

	key := fmt.Sprintf("%s %s #%d", now.Format("2006-01-02"), hhmm, current.ID)
	if key == n.last {
		n.log.Debug("boundary already announced", zap.String("key", key))
		return
	}

	sorted := schedule.SortByStart(shifts)
	prev, hasPrev := schedule.FindPrevious(sorted, schedule.IndexOfStart(sorted, hhmm))

	log := n.log.With(
		zap.Int("shift", current.ID),
		zap.String("incoming", current.Username),
		zap.String("interval", current.Interval()),
		zap.String("outgoing", prev),
	)

	if err := n.announcer.Announce(ctx, messages.Announcement(current, prev, hasPrev)); err != nil {
		log.Error("announce handover", zap.Error(err))
		return
	}
	n.last = key
	log.Info("handover announced")
}

// Start runs n every interval until the returned scheduler is shut down. The
// first check happens immediately and runs never overlap. The interval is
// counted from the start of one tick to the start of the next; a tick that
// overruns it pushes the following run back instead of queueing another.
func Start(ctx context.Context, n *Notifier, interval time.Duration, clock clockwork.Clock, log *zap.Logger) (gocron.Scheduler, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(jobLogger{log.Sugar()}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { n.Tick(ctx) }),
		gocron.WithName("shift-handover"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("register handover job: %w", err)
	}

	s.Start()
	log.Info("scheduler started", zap.Duration("interval", interval))
	return s, nil
}

// jobLogger routes gocron's own logging into zap.
type jobLogger struct {
	s *zap.SugaredLogger
}

func (l jobLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l jobLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l jobLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l jobLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }
