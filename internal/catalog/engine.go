// Package catalog implements the query engine shared by every listing
// surface: category filtering, free-text search, and stable sorting over
// in-memory collections. All functions are pure; the same rules apply whether
// the caller is a repository, a service, or a test fixture.
package catalog

import (
	"sort"
	"strings"

	domain "github.com/techfunding/api/internal/domain"
)

// SortKey selects the ordering applied by SortProjects / SortProducts.
// Unknown keys leave the input order untouched rather than failing.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortFunding   SortKey = "funding"
	SortDeadline  SortKey = "deadline"
	SortNewest    SortKey = "newest"
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// NormalizeSortKey trims and lowercases a raw sort parameter. The zero value
// is returned unchanged so callers can apply their own default.
func NormalizeSortKey(raw string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(raw)))
}

// categorized is satisfied by any listing kind carrying a category.
type categorized interface {
	CategoryID() domain.Category
}

type projectItem struct{ domain.Project }

func (p projectItem) CategoryID() domain.Category { return p.Category }

type productItem struct{ domain.Product }

func (p productItem) CategoryID() domain.Category { return p.Category }

func filterByCategory[T categorized](items []T, category domain.Category) []T {
	category = domain.Category(strings.TrimSpace(string(category)))
	if category == "" || category == domain.CategoryAll {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.CategoryID() == category {
			out = append(out, item)
		}
	}
	return out
}

// FilterProjectsByCategory keeps projects whose category equals the supplied
// id. The "all" sentinel (or an empty id) matches everything; an unknown id
// simply yields an empty result.
func FilterProjectsByCategory(projects []domain.Project, category domain.Category) []domain.Project {
	wrapped := make([]projectItem, 0, len(projects))
	for _, p := range projects {
		wrapped = append(wrapped, projectItem{p})
	}
	filtered := filterByCategory(wrapped, category)
	out := make([]domain.Project, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, item.Project)
	}
	return out
}

// FilterProductsByCategory is the product counterpart of
// FilterProjectsByCategory.
func FilterProductsByCategory(products []domain.Product, category domain.Category) []domain.Product {
	wrapped := make([]productItem, 0, len(products))
	for _, p := range products {
		wrapped = append(wrapped, productItem{p})
	}
	filtered := filterByCategory(wrapped, category)
	out := make([]domain.Product, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, item.Product)
	}
	return out
}

// matchesQuery reports whether any field contains query case-insensitively.
// An empty query matches every listing. No tokenization, no fuzzy matching.
func matchesQuery(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// FilterProjectsBySearch keeps projects whose title or description contains
// the query, case-insensitively.
func FilterProjectsBySearch(projects []domain.Project, query string) []domain.Project {
	if strings.TrimSpace(query) == "" {
		return projects
	}
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if matchesQuery(query, p.Title, p.Description) {
			out = append(out, p)
		}
	}
	return out
}

// FilterProductsBySearch keeps products whose title, description, or any tag
// contains the query, case-insensitively.
func FilterProductsBySearch(products []domain.Product, query string) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		fields := append([]string{p.Title, p.Description}, p.Tags...)
		if matchesQuery(query, fields...) {
			out = append(out, p)
		}
	}
	return out
}

// SortProjects orders projects by the supplied key. The sort is stable:
// equal-key items keep their relative input order. Unknown keys are a no-op.
func SortProjects(projects []domain.Project, key SortKey) []domain.Project {
	out := make([]domain.Project, len(projects))
	copy(out, projects)

	switch key {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Creator.Followers > out[j].Creator.Followers
		})
	case SortFunding:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CurrentFunding > out[j].CurrentFunding
		})
	case SortDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FundingPeriod.End.Before(out[j].FundingPeriod.End)
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// SortProducts orders products by the supplied key, stable like SortProjects.
func SortProducts(products []domain.Product, key SortKey) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	switch key {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SalesCount > out[j].SalesCount
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// QueryProjects applies the full composition: category filter, then search
// filter, then sort. Filtering always precedes sorting; the two filters
// commute with each other.
func QueryProjects(projects []domain.Project, category domain.Category, query string, key SortKey) []domain.Project {
	filtered := FilterProjectsByCategory(projects, category)
	filtered = FilterProjectsBySearch(filtered, query)
	return SortProjects(filtered, key)
}

// QueryProducts is the product counterpart of QueryProjects.
func QueryProducts(products []domain.Product, category domain.Category, query string, key SortKey) []domain.Product {
	filtered := FilterProductsByCategory(products, category)
	filtered = FilterProductsBySearch(filtered, query)
	return SortProducts(filtered, key)
}
