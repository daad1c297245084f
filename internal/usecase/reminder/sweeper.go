package reminder

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

const lockKey = "barberclub:reminders:sweep"

// releaseLock deletes the key only if this instance still owns it.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Stats struct {
	Sent    int
	Failed  int
	Skipped int
}

// Sweeper sends the reminders that fell due since the previous sweep.
type Sweeper struct {
	repo     domain.Repository
	notifier domain.Notifier
	rdb      *redis.Client
	window   time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewSweeper: window is how far back a sweep looks; keep it above the tick interval.
// A nil rdb runs without the cross-instance lock.
func NewSweeper(
	repo domain.Repository,
	notifier domain.Notifier,
	rdb *redis.Client,
	window time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		repo:     repo,
		notifier: notifier,
		rdb:      rdb,
		window:   window,
		metrics:  m,
		log:      log,
	}
}

func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats

	if s.rdb != nil {
		token := uuid.NewString()
		ok, err := s.rdb.SetNX(ctx, lockKey, token, s.window).Result()
		if err != nil {
			return stats, err
		}
		if !ok {
			s.log.Debug("reminder sweep already running elsewhere")
			return stats, nil
		}
		defer func() {
			if err := releaseLock.Run(context.WithoutCancel(ctx), s.rdb, []string{lockKey}, token).Err(); err != nil {
				s.log.Warn("release reminder lock", zap.Error(err))
			}
		}()
	}

	offsets, err := s.repo.ListAllOffsets(ctx)
	if err != nil {
		return stats, err
	}

	for _, off := range offsets {
		from, to := domain.DueRange(now, off.MinutesBefore, s.window)

		due, err := s.repo.ListDue(ctx, off.BarbershopID, from, to)
		if err != nil {
			s.log.Error("list due reminders",
				zap.Uint("barbershop_id", off.BarbershopID),
				zap.Error(err),
			)
			continue
		}

		for _, ap := range due {
			switch s.deliver(ctx, ap, off.MinutesBefore) {
			case domain.LogSent:
				stats.Sent++
			case domain.LogFailed:
				stats.Failed++
			default:
				stats.Skipped++
			}
		}
	}

	return stats, nil
}

// deliver claims the (appointment, offset) pair and sends once. Failures are recorded, not retried.
func (s *Sweeper) deliver(ctx context.Context, ap models.Appointment, minutesBefore int) string {
	entry := &models.ReminderLog{
		AppointmentID: ap.ID,
		MinutesBefore: minutesBefore,
		Status:        domain.LogPending,
	}

	claimed, err := s.repo.Claim(ctx, entry)
	if err != nil {
		s.log.Error("claim reminder", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		return ""
	}
	if !claimed {
		return ""
	}

	entry.Status = domain.LogSent
	if err := s.notifier.SendReminder(ctx, domain.FromAppointment(ap, minutesBefore)); err != nil {
		entry.Status = domain.LogFailed
		entry.Error = truncate(err.Error(), 255)
		s.log.Warn("reminder not delivered",
			zap.Uint("appointment_id", ap.ID),
			zap.Int("minutes_before", minutesBefore),
			zap.Error(err),
		)
	}
	s.metrics.Reminder(entry.Status)

	if err := s.repo.UpdateLog(ctx, entry); err != nil {
		s.log.Error("update reminder log", zap.Uint("appointment_id", ap.ID), zap.Error(err))
	}

	return entry.Status
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
