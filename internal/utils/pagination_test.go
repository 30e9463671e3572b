package utils

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildPaginationMeta(t *testing.T) {
	base := "http://api.test/properties"

	tests := []struct {
		name     string
		total    int64
		offset   int
		limit    int
		wantNext string
		wantPrev string
	}{
		{name: "first page of many", total: 25, offset: 0, limit: 10, wantNext: "offset=10", wantPrev: ""},
		{name: "middle page", total: 25, offset: 10, limit: 10, wantNext: "offset=20", wantPrev: "offset=0"},
		{name: "last page", total: 25, offset: 20, limit: 10, wantNext: "", wantPrev: "offset=10"},
		{name: "single page", total: 5, offset: 0, limit: 10, wantNext: "", wantPrev: ""},
		{name: "prev offset floors at zero", total: 25, offset: 5, limit: 10, wantNext: "offset=15", wantPrev: "offset=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := BuildPaginationMeta(tt.total, tt.offset, tt.limit, base, nil)
			if meta.Total != tt.total || meta.Offset != tt.offset || meta.Limit != tt.limit {
				t.Fatalf("unexpected meta counts: %+v", meta)
			}
			checkLink(t, "next", meta.Next, tt.wantNext)
			checkLink(t, "prev", meta.Prev, tt.wantPrev)
		})
	}
}

func checkLink(t *testing.T, label string, link *string, want string) {
	t.Helper()
	if want == "" {
		if link != nil {
			t.Fatalf("expected no %s link, got %s", label, *link)
		}
		return
	}
	if link == nil {
		t.Fatalf("expected a %s link with %s", label, want)
	}
	if !strings.Contains(*link, want) {
		t.Fatalf("expected %s link containing %s, got %s", label, want, *link)
	}
}

func TestBuildPaginationMetaKeepsFilters(t *testing.T) {
	params := url.Values{}
	params.Set("city", "Sao Paulo")
	params.Set("offset", "999") // caller params never override the page position

	meta := BuildPaginationMeta(30, 10, 10, "http://api.test/properties", params)
	if meta.Next == nil || meta.Prev == nil {
		t.Fatal("expected both links on a middle page")
	}
	next, err := url.Parse(*meta.Next)
	if err != nil {
		t.Fatalf("next link does not parse: %v", err)
	}
	q := next.Query()
	if q.Get("city") != "Sao Paulo" {
		t.Fatalf("expected filter carried into next link, got %s", *meta.Next)
	}
	if q.Get("offset") != "20" {
		t.Fatalf("expected next offset 20, got %s", q.Get("offset"))
	}
}

func TestClampPageParams(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults applied", offset: 0, limit: 0, wantOffset: 0, wantLimit: 10},
		{name: "negative offset floored", offset: -5, limit: 20, wantOffset: 0, wantLimit: 20},
		{name: "oversized limit reset", offset: 10, limit: 500, wantOffset: 10, wantLimit: 10},
		{name: "in range untouched", offset: 30, limit: 100, wantOffset: 30, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := ClampPageParams(tt.offset, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("got (%d, %d), want (%d, %d)", offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}
