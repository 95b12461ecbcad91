package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"lostfound/internal/mq"
)

type claimNotifier interface {
	NotifyClaimResolved(ctx context.Context, itemID, claimantID, adminID int)
}

type deduper interface {
	AcquireOnce(ctx context.Context, handler string, key string) bool
}

type ClaimResolvedHandler struct {
	notifier claimNotifier
	deduper  deduper
	logger   *zap.Logger
}

func NewClaimResolvedHandler(notifier claimNotifier, deduper deduper, logger *zap.Logger) *ClaimResolvedHandler {
	return &ClaimResolvedHandler{
		notifier: notifier,
		deduper:  deduper,
		logger:   logger,
	}
}

// HandleClaimResolved runs the notification workflow for one claim.resolved
// event. It always returns nil: the workflow never propagates failures, and
// a requeue here would re-send emails that may already be out.
func (h *ClaimResolvedHandler) HandleClaimResolved(ctx context.Context, raw json.RawMessage) error {
	var p mq.ClaimResolvedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal claim resolved payload", zap.Error(err))
		return nil
	}

	key := fmt.Sprintf("%d:%d", p.ItemID, p.ClaimantID)
	if !h.deduper.AcquireOnce(ctx, mq.RoutingKeyClaimResolved, key) {
		h.logger.Info("Skipping duplicate claim resolved event",
			zap.Int("item_id", p.ItemID),
			zap.Int("claimant_id", p.ClaimantID),
		)
		return nil
	}

	h.logger.Info("Handling claim resolved event",
		zap.Int("item_id", p.ItemID),
		zap.Int("claimant_id", p.ClaimantID),
		zap.Int("admin_id", p.AdminID),
	)

	h.notifier.NotifyClaimResolved(ctx, p.ItemID, p.ClaimantID, p.AdminID)
	return nil
}
