package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/services"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// cursorSep joins the createdAt and id halves of a history cursor.
const cursorSep = "_"

type PaginationParams struct {
	Limit    int
	Before   *time.Time
	// BeforeID breaks ties between rows sharing Before's timestamp.
	BeforeID string
}

type CursorResponse struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
	HasMore    bool        `json:"has_more"`
}

// ParsePagination reads limit and before. Unparseable values fall back to
// the defaults.
func ParsePagination(c *gin.Context) PaginationParams {
	p := PaginationParams{Limit: DefaultLimit}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			p.Limit = l
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		ts, id, _ := strings.Cut(beforeStr, cursorSep)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			p.Before = &t
			p.BeforeID = id
		}
	}

	return p
}

// PageHistory cuts one page out of a history view ordered by createdAt
// descending, ties by ascending id. The cursor is "<createdAt>_<id>" of the
// last row returned; a bare createdAt is accepted as an exclusive bound.
func PageHistory(view []services.DisplayRecord, p PaginationParams) CursorResponse {
	start := 0
	if p.Before != nil {
		for start < len(view) && !pastCursor(view[start], p) {
			start++
		}
	}
	rows := view[start:]

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		nextCursor = last.CreatedAt.Format(time.RFC3339Nano) + cursorSep + last.ID
	}

	return CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
}

func pastCursor(r services.DisplayRecord, p PaginationParams) bool {
	if r.CreatedAt.Before(*p.Before) {
		return true
	}
	return p.BeforeID != "" && r.CreatedAt.Equal(*p.Before) && r.ID > p.BeforeID
}
