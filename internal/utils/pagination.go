package utils

import (
	"fmt"
	"net/url"

	"casavista-listings/internal/models"
)

func BuildPaginationURL(baseURL string, offset, limit int, params url.Values) string {
	u, _ := url.Parse(baseURL)
	q := url.Values{}
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))
	for key, values := range params {
		if key != "offset" && key != "limit" {
			for _, value := range values {
				q.Add(key, value)
			}
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// BuildPaginationMeta assembles the listing envelope metadata with
// next/prev links when more pages exist in that direction.
func BuildPaginationMeta(total int64, offset, limit int, baseURL string, params url.Values) models.PaginationMeta {
	meta := models.PaginationMeta{
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
	if int64(offset+limit) < total {
		nextURL := BuildPaginationURL(baseURL, offset+limit, limit, params)
		meta.Next = &nextURL
	}
	if offset > 0 {
		prevOffset := offset - limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prevURL := BuildPaginationURL(baseURL, prevOffset, limit, params)
		meta.Prev = &prevURL
	}
	return meta
}

// ClampPageParams applies the listing defaults: limit 10 when out of
// range, max 100, offset floored at 0.
func ClampPageParams(offset, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
