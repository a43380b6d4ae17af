// Package firestore provides Firestore-backed repositories. Listing queries
// push the category filter down to Firestore and run search and sort through
// the catalog engine after decoding, so every backend answers queries
// identically without per-sort composite indexes.
package firestore

import (
	"strings"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/platform/pagination"
)

const (
	projectsCollection  = "projects"
	productsCollection  = "products"
	questionsCollection = "questions"
	reviewsCollection   = "reviews"
	fundingsCollection  = "fundings"
	purchasesCollection = "purchases"
)

func projectDocPath(projectID string) string {
	return projectsCollection + "/" + projectID
}

func productDocPath(productID string) string {
	return productsCollection + "/" + productID
}

// extractDocID strips the collection prefix from a stored document path so
// decoded entities carry bare IDs like the rest of the system.
func extractDocID(ref, prefix string) string {
	if strings.HasPrefix(ref, prefix) {
		return ref[len(prefix):]
	}
	return ref
}

// paginate windows the already filtered and sorted items using offset cursor
// tokens, mirroring the in-memory repositories so tokens stay interchangeable.
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
