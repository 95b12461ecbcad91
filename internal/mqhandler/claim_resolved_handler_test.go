package mqhandler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notifyCall struct {
	itemID     int
	claimantID int
	adminID    int
}

type stubNotifier struct {
	calls []notifyCall
}

func (s *stubNotifier) NotifyClaimResolved(ctx context.Context, itemID, claimantID, adminID int) {
	s.calls = append(s.calls, notifyCall{itemID: itemID, claimantID: claimantID, adminID: adminID})
}

type stubDeduper struct {
	allow bool
	keys  []string
}

func (s *stubDeduper) AcquireOnce(ctx context.Context, handler string, key string) bool {
	s.keys = append(s.keys, handler+"/"+key)
	return s.allow
}

func TestHandleClaimResolved_DispatchesWorkflow(t *testing.T) {
	notifier := &stubNotifier{}
	dedup := &stubDeduper{allow: true}
	h := NewClaimResolvedHandler(notifier, dedup, zap.NewNop())

	raw := json.RawMessage(`{"item_id": 42, "claimant_id": 2, "admin_id": 9}`)
	err := h.HandleClaimResolved(context.Background(), raw)

	require.NoError(t, err)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notifyCall{itemID: 42, claimantID: 2, adminID: 9}, notifier.calls[0])
	assert.Equal(t, []string{"claim.resolved/42:2"}, dedup.keys)
}

func TestHandleClaimResolved_SkipsDuplicate(t *testing.T) {
	notifier := &stubNotifier{}
	h := NewClaimResolvedHandler(notifier, &stubDeduper{allow: false}, zap.NewNop())

	raw := json.RawMessage(`{"item_id": 42, "claimant_id": 2, "admin_id": 9}`)
	err := h.HandleClaimResolved(context.Background(), raw)

	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}

func TestHandleClaimResolved_MalformedPayloadIsAcked(t *testing.T) {
	notifier := &stubNotifier{}
	h := NewClaimResolvedHandler(notifier, &stubDeduper{allow: true}, zap.NewNop())

	// A nil error acks the message; requeueing garbage would loop forever.
	err := h.HandleClaimResolved(context.Background(), json.RawMessage(`{not json`))

	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}
