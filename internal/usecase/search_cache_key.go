package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type searchCacheKeyInput struct {
	Strategy string `json:"strategy"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Inbound  bool   `json:"inbound"`
}

// searchCacheKey embeds the requester's external id as a prefix so a single
// pattern delete can drop every cached page for one user after a like or
// dislike changes their exclusion set.
func searchCacheKey(requesterExternalID int64, strategy SearchStrategy, page, pageSize int, inbound bool) string {
	in := searchCacheKeyInput{
		Strategy: string(strategy),
		Page:     page,
		PageSize: pageSize,
		Inbound:  inbound,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return fmt.Sprintf("companions:search:%d:%s", requesterExternalID, hex.EncodeToString(sum[:]))
}

func searchCachePattern(requesterExternalID int64) string {
	return fmt.Sprintf("companions:search:%d:*", requesterExternalID)
}
