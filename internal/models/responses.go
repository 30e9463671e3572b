package models

import (
	"casavista-listings/pkg/identityclient"
)

// RelationCheckResponse is the internal relation-check contract. All three
// booleans are always present and HasRelation == HasVisit || HasProposal.
type RelationCheckResponse struct {
	HasRelation bool   `json:"has_relation"`
	HasVisit    bool   `json:"has_visit"`
	HasProposal bool   `json:"has_proposal"`
	UserID      string `json:"user_id"`
	OwnerID     string `json:"owner_id"`
}

// OwnerVisit is a visit as shown to the property owner, enriched with the
// visitor's profile when the identity service could provide it. User stays
// null when the lookup failed or was denied.
type OwnerVisit struct {
	Visit
	User *identityclient.UserInfo `json:"user"`
}

// OwnerProposal is the proposal counterpart of OwnerVisit.
type OwnerProposal struct {
	Proposal
	User *identityclient.UserInfo `json:"user"`
}
