package dto

import "geostud-api/internal/pkg/pagination"

type CompanionProfile struct {
	ExternalID       int64    `json:"external_id"`
	Name             string   `json:"name"`
	Gender           string   `json:"gender"`
	Bio              string   `json:"bio"`
	PhotoURLs        []string `json:"photo_urls"`
	Interests        []string `json:"interests"`
	Score            int      `json:"score"`
	OverlapLocations []string `json:"overlap_locations"`
}

type CompanionListResponse struct {
	Companions []CompanionProfile `json:"companions"`
	Meta       pagination.Meta    `json:"meta"`
}
