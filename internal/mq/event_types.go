package mq

// RoutingKeyClaimResolved is published by the claim-approval process once an
// admin has verified a claim.
const RoutingKeyClaimResolved = "claim.resolved"

// ClaimResolvedPayload is the trigger for the notification workflow. It is
// transient: nothing from it is persisted as its own entity.
type ClaimResolvedPayload struct {
	ItemID     int `json:"item_id"`
	ClaimantID int `json:"claimant_id"`
	AdminID    int `json:"admin_id"`
}
