package cache

import (
	"net/url"
	"testing"
)

func TestPropertyListKey(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		limit   int
		filters url.Values
		want    string
	}{
		{
			name:   "no filters",
			offset: 0,
			limit:  10,
			want:   "properties:list:offset:0:limit:10",
		},
		{
			name:    "single filter",
			offset:  20,
			limit:   10,
			filters: url.Values{"city": {"Campinas"}},
			want:    "properties:list:offset:20:limit:10:city:campinas",
		},
		{
			name:    "filters sorted regardless of insertion order",
			offset:  0,
			limit:   5,
			filters: url.Values{"sales_type": {"RENT"}, "city": {"Campinas"}},
			want:    "properties:list:offset:0:limit:5:city:campinas:sales_type:rent",
		},
		{
			name:    "blank filter values ignored",
			offset:  0,
			limit:   10,
			filters: url.Values{"city": {"  "}},
			want:    "properties:list:offset:0:limit:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PropertyListKey(tt.offset, tt.limit, tt.filters)
			if got != tt.want {
				t.Errorf("PropertyListKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPropertyKeys(t *testing.T) {
	if got := PropertyKey("abc"); got != "property:abc" {
		t.Errorf("PropertyKey = %q", got)
	}
	if got := PropertyKeysSetKey("abc"); got != "property:keys:abc" {
		t.Errorf("PropertyKeysSetKey = %q", got)
	}
	if got := TokenDenylistKey("jti-1"); got != "token:denylist:jti-1" {
		t.Errorf("TokenDenylistKey = %q", got)
	}
}
