package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushali2005/studentpp/services"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantBefore bool
	}{
		{"defaults", "", DefaultLimit, false},
		{"custom limit", "limit=10", 10, false},
		{"limit capped", "limit=5000", MaxLimit, false},
		{"negative limit ignored", "limit=-3", DefaultLimit, false},
		{"garbage limit ignored", "limit=abc", DefaultLimit, false},
		{"before parsed", "before=2025-03-05T10:00:00.123456Z", DefaultLimit, true},
		{"cursor with id", "before=2025-03-05T10:00:00.123456Z_0195", DefaultLimit, true},
		{"garbage before ignored", "before=yesterday", DefaultLimit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/predictions?"+tt.query, nil)

			p := ParsePagination(c)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantBefore, p.Before != nil)
		})
	}
}

func TestPageHistory(t *testing.T) {
	base := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	view := []services.DisplayRecord{
		{ID: "d", CreatedAt: base.Add(3 * time.Minute)},
		{ID: "c", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "b", CreatedAt: base.Add(time.Minute)},
		{ID: "a", CreatedAt: base},
	}

	page := PageHistory(view, PaginationParams{Limit: 2})
	rows := page.Data.([]services.DisplayRecord)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[1].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, base.Add(2*time.Minute).Format(time.RFC3339Nano)+"_c", page.NextCursor)

	before := base.Add(2 * time.Minute)
	page = PageHistory(view, PaginationParams{Limit: 2, Before: &before})
	rows = page.Data.([]services.DisplayRecord)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"b", "a"}, []string{rows[0].ID, rows[1].ID})
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)

	before = base.Add(-time.Hour)
	page = PageHistory(view, PaginationParams{Limit: 2, Before: &before})
	assert.Empty(t, page.Data)
	assert.False(t, page.HasMore)
}

func TestPageHistoryKeepsTiesAcrossPages(t *testing.T) {
	at := time.Date(2025, 3, 5, 10, 0, 0, 123000, time.UTC)
	view := []services.DisplayRecord{
		{ID: "01-newest", CreatedAt: at.Add(time.Second)},
		{ID: "02-tie", CreatedAt: at},
		{ID: "03-tie", CreatedAt: at},
		{ID: "04-tie", CreatedAt: at},
		{ID: "00-oldest", CreatedAt: at.Add(-time.Second)},
	}

	var seen []string
	p := PaginationParams{Limit: 2}
	for i := 0; i < 5; i++ {
		page := PageHistory(view, p)
		for _, r := range page.Data.([]services.DisplayRecord) {
			seen = append(seen, r.ID)
		}
		if !page.HasMore {
			break
		}

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/predictions?limit=2&before="+url.QueryEscape(page.NextCursor), nil)
		p = ParsePagination(c)
	}

	assert.Equal(t, []string{"01-newest", "02-tie", "03-tie", "04-tie", "00-oldest"}, seen)
}
