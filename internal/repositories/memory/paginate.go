package memory

import (
	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/platform/pagination"
)

// paginate windows the already filtered and sorted items using offset cursor
// tokens. Tokens produced here round-trip through platform/pagination.
func paginate[T any](items []T, pager domain.Pagination) (domain.CursorPage[T], error) {
	cursor, err := pagination.DecodeToken(pager.PageToken)
	if err != nil {
		return domain.CursorPage[T]{}, err
	}

	size := pager.PageSize
	if size <= 0 {
		size = pagination.DefaultPageSize
	}

	offset := cursor.Offset
	if offset >= len(items) {
		return domain.CursorPage[T]{Items: []T{}}, nil
	}

	end := offset + size
	if end > len(items) {
		end = len(items)
	}

	page := make([]T, end-offset)
	copy(page, items[offset:end])

	var next string
	if end < len(items) {
		next, err = pagination.OffsetToken(end)
		if err != nil {
			return domain.CursorPage[T]{}, err
		}
	}
	return domain.CursorPage[T]{Items: page, NextPageToken: next}, nil
}
