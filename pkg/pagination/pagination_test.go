// Copyright (c) 2026 TrendHive. All rights reserved.

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Clamping(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/items", DefaultPage, DefaultLimit},
		{"explicit", "/items?page=3&limit=50", 3, 50},
		{"garbage", "/items?page=abc&limit=-5", DefaultPage, DefaultLimit},
		{"over max", "/items?limit=9999", DefaultPage, MaxLimit},
		{"zero page", "/items?page=0", DefaultPage, DefaultLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := FromRequest(httptest.NewRequest("GET", tc.url, nil))
			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantLimit, params.Limit)
		})
	}
}

func TestOffsetAndMeta(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())

	meta := NewMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 45, meta.Total)

	empty := NewMeta(1, 20, 0)
	assert.Zero(t, empty.TotalPages)
}
