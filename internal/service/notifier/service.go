package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lostfound/internal/audit"
	"lostfound/internal/mailer"
	"lostfound/internal/metrics"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

// Session is a database connection held by one workflow run for its read
// phase. The run that acquired it is the only place that releases it.
type Session interface {
	repository.Querier
	Release()
}

// SessionSource hands out per-run sessions. Each background run gets its own
// connection so concurrent runs for unrelated claims never share one.
type SessionSource interface {
	AcquireSession(ctx context.Context) (Session, error)
}

// PoolSessionSource acquires sessions from a pgx pool.
type PoolSessionSource struct {
	Pool *pgxpool.Pool
}

func (p *PoolSessionSource) AcquireSession(ctx context.Context) (Session, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

type userDirectory interface {
	GetByID(ctx context.Context, q repository.Querier, userID int) (*model.User, error)
}

type itemDirectory interface {
	GetByID(ctx context.Context, q repository.Querier, itemID int) (*model.Item, error)
}

type notificationLog interface {
	Insert(ctx context.Context, n *model.Notification) error
}

type sender interface {
	Send(ctx context.Context, to, subject, body string) mailer.Outcome
}

// Service runs the claim-resolution notification workflow: look up the item
// and both parties, email the reporter, then the claimant, and record a
// notification row per successful send. No failure ever propagates to the
// caller; everything is downgraded to logs, trace lines and metrics.
type Service struct {
	sessions   SessionSource
	items      itemDirectory
	users      userDirectory
	log        notificationLog
	mail       sender
	trace      *audit.Trail
	logger     *zap.Logger
	runTimeout time.Duration
}

func New(
	sessions SessionSource,
	items itemDirectory,
	users userDirectory,
	log notificationLog,
	mail sender,
	trace *audit.Trail,
	logger *zap.Logger,
	runTimeout time.Duration,
) *Service {
	return &Service{
		sessions:   sessions,
		items:      items,
		users:      users,
		log:        log,
		mail:       mail,
		trace:      trace,
		logger:     logger,
		runTimeout: runTimeout,
	}
}

// Dispatch starts the workflow on its own goroutine. This is the
// fire-and-forget boundary the claim-approval process calls: nothing is
// returned and nothing can escape.
func (s *Service) Dispatch(itemID, claimantID, adminID int) {
	go s.NotifyClaimResolved(context.Background(), itemID, claimantID, adminID)
}

// NotifyClaimResolved runs the workflow synchronously. The reporter is
// always attempted strictly before the claimant, and a failed reporter email
// does not block the claimant's.
func (s *Service) NotifyClaimResolved(ctx context.Context, itemID, claimantID, adminID int) {
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Claim resolution workflow crashed",
				zap.Int("item_id", itemID),
				zap.Int("claimant_id", claimantID),
				zap.Any("panic", r),
			)
			s.trace.Appendf("CRASH: item %d: %v", itemID, r)
			metrics.RecordWorkflowRun("crashed")
		}
	}()

	s.trace.Appendf("starting claim resolution for item %d", itemID)

	sess, err := s.sessions.AcquireSession(ctx)
	if err != nil {
		s.logger.Error("Failed to acquire database session", zap.Int("item_id", itemID), zap.Error(err))
		s.trace.Appendf("CRASH: item %d: failed to acquire database session: %v", itemID, err)
		metrics.RecordWorkflowRun("crashed")
		return
	}

	// The session is released exactly once: right after the read phase on
	// the normal path, or by the deferred guard on any early exit.
	released := false
	release := func() {
		if !released {
			released = true
			sess.Release()
		}
	}
	defer release()

	s.trace.Appendf("fetching item %d", itemID)
	item, err := s.items.GetByID(ctx, sess, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		s.trace.Appendf("item %d not found", itemID)
		release()
		metrics.RecordWorkflowRun("aborted")
		return
	}
	if err != nil {
		// A query failure here is unexpected, not a normal miss.
		s.logger.Error("Item lookup failed", zap.Int("item_id", itemID), zap.Error(err))
		s.trace.Appendf("CRASH: item %d: %v", itemID, err)
		release()
		metrics.RecordWorkflowRun("crashed")
		return
	}

	// Both lookups share the read-phase session.
	s.trace.Appendf("fetching reporter %d", item.ReportedBy)
	reporter, reporterErr := s.users.GetByID(ctx, sess, item.ReportedBy)
	s.trace.Appendf("fetching claimant %d", claimantID)
	claimant, claimantErr := s.users.GetByID(ctx, sess, claimantID)
	release()

	if reporterErr != nil || claimantErr != nil {
		s.logger.Warn("Missing user data for reporter or claimant, skipping email notifications",
			zap.Int("item_id", itemID),
			zap.Int("reporter_id", item.ReportedBy),
			zap.Int("claimant_id", claimantID),
		)
		s.trace.Appendf("missing user data for item %d", itemID)
		metrics.RecordWorkflowRun("aborted")
		return
	}

	reporterSubject := fmt.Sprintf("SUCCESS: Your Item '%s' Has Been RESOLVED!", item.Title)
	reporterBody := fmt.Sprintf(
		"Hello %s,\n\nGood news! Your item, '%s', has been verified by the Admin (ID: %d) and matched with the person who found it. Please contact the claimant, %s, to arrange collection. Your contact details have been shared with them.",
		reporter.Name, item.Title, adminID, claimant.Name,
	)

	s.trace.Appendf("sending email to reporter %d", reporter.ID)
	if out := s.mail.Send(ctx, reporter.Email, reporterSubject, reporterBody); out.OK() {
		s.recordNotification(ctx, reporter.ID,
			"Item successfully matched and resolved. Check your email for details!")
	}

	claimantSubject := fmt.Sprintf("SUCCESS: Your Claim on '%s' Has Been APPROVED!", item.Title)
	claimantBody := fmt.Sprintf(
		"Hello %s,\n\nYour claim on '%s' has been successfully approved! Please contact the original reporter, %s, to arrange the return of the item. Their email is %s.",
		claimant.Name, item.Title, reporter.Name, reporter.Email,
	)

	s.trace.Appendf("sending email to claimant %d", claimant.ID)
	if out := s.mail.Send(ctx, claimant.Email, claimantSubject, claimantBody); out.OK() {
		s.recordNotification(ctx, claimant.ID,
			"Claim approved. Check your email for reporter's contact info.")
	}

	s.trace.Appendf("claim resolution for item %d done", itemID)
	metrics.RecordWorkflowRun("done")
}

// recordNotification inserts the row on its own fresh connection. Losing a
// log row is non-fatal once the email is already out, so insert failures are
// logged and swallowed.
func (s *Service) recordNotification(ctx context.Context, userID int, message string) {
	s.trace.Appendf("inserting notification for user %d", userID)
	n := &model.Notification{
		UserID:  userID,
		Message: message,
		Type:    model.NotificationTypeEmail,
		Status:  model.NotificationStatusSent,
	}
	if err := s.log.Insert(ctx, n); err != nil {
		s.logger.Error("Failed to insert notification", zap.Int("user_id", userID), zap.Error(err))
		s.trace.Appendf("failed to insert notification for user %d: %v", userID, err)
		metrics.RecordNotificationInsert("failed")
		return
	}
	metrics.RecordNotificationInsert("ok")
}
