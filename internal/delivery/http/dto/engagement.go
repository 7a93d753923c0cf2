package dto

type LikeRequest struct {
	TargetExternalID int64  `json:"target_external_id"`
	Message          string `json:"message"`
}

type DislikeRequest struct {
	TargetExternalID int64 `json:"target_external_id"`
}

type CompanionSummary struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
}

type MatchResponse struct {
	MatchID   string           `json:"match_id"`
	CreatedAt string           `json:"created_at"`
	Requester CompanionSummary `json:"requester"`
	Target    CompanionSummary `json:"target"`
}

type LikeResponse struct {
	IsMatch bool           `json:"is_match"`
	Match   *MatchResponse `json:"match,omitempty"`
}
