package handlers

import (
	"errors"
	"strconv"
)

var errInvalidPagination = errors.New("invalid pagination params")

const defaultPageLimit = 20

func parsePaginationParams(pageStr, limitStr string) (int, int, error) {
	page := 1
	limit := defaultPageLimit

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	return page, limit, nil
}

// paginate returns the requested page of items; pages past the end are empty.
// The bounds are checked before multiplying so huge page numbers cannot
// overflow.
func paginate[T any](items []T, page, limit int) []T {
	if page-1 > len(items)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit < end-start {
		end = start + limit
	}
	return items[start:end]
}
