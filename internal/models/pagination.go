package models

// PaginationMeta describes one page of a listing. Next and Prev are absolute
// URLs, omitted at the edges.
type PaginationMeta struct {
	Total  int64   `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
	Next   *string `json:"next,omitempty"`
	Prev   *string `json:"prev,omitempty"`
}

type PaginatedPropertiesResponse struct {
	Data []Property     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginatedVisitsResponse struct {
	Data []Visit        `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginatedProposalsResponse struct {
	Data []Proposal     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginatedFavoritesResponse struct {
	Data []Favorite     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginatedOwnerVisitsResponse struct {
	Data []OwnerVisit   `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginatedOwnerProposalsResponse struct {
	Data []OwnerProposal `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}
