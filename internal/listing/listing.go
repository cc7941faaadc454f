// Package listing filters, sorts and pages the in-memory lists shown on the management pages.
package listing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/eschool-portal/internal/models"
)

// All is the dropdown sentinel that disables a filter.
const All = "all"

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Dropdown extracts the value one dropdown filter compares against.
type Dropdown[T any] struct {
	Value    func(T) string
	FoldCase bool
}

// Spec declares the searchable fields and dropdown filters of one entity list.
type Spec[T any] struct {
	SearchFields []func(T) string
	Dropdowns    map[string]Dropdown[T]
	Columns      map[string]func(T) string
}

// Criteria is the active filter state of a list page.
type Criteria struct {
	Search   string
	Selected map[string]string
}

func (c Criteria) active(name string) (string, bool) {
	v, ok := c.Selected[name]
	v = strings.TrimSpace(v)
	if !ok || v == "" || strings.EqualFold(v, All) {
		return "", false
	}
	return v, true
}

// Match reports whether item passes the search and every active dropdown.
func (s Spec[T]) Match(item T, c Criteria) bool {
	if !s.matchSearch(item, c.Search) {
		return false
	}
	for name, dd := range s.Dropdowns {
		want, ok := c.active(name)
		if !ok {
			continue
		}
		got := dd.Value(item)
		if dd.FoldCase {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
	}
	return true
}

func (s Spec[T]) matchSearch(item T, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range s.SearchFields {
		if strings.Contains(strings.ToLower(field(item)), needle) {
			return true
		}
	}
	return false
}

// Apply returns the items that match c, keeping input order.
func (s Spec[T]) Apply(items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.Match(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Options lists the distinct values of a dropdown, sorted and led by All.
func (s Spec[T]) Options(items []T, name string) []string {
	dd, ok := s.Dropdowns[name]
	if !ok {
		return []string{All}
	}
	seen := make(map[string]struct{})
	var values []string
	for _, item := range items {
		v := strings.TrimSpace(dd.Value(item))
		if dd.FoldCase {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{All}, values...)
}

// SortBy stable-sorts items in place by a named column. Numeric columns compare as numbers,
// everything else case-insensitively. Unknown columns leave the order untouched.
func (s Spec[T]) SortBy(items []T, column string, desc bool) {
	key, ok := s.Columns[column]
	if !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if desc {
			a, b = b, a
		}
		return less(a, b)
	})
}

func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// Paginate returns one page of items. page is 1-based and clamped into range.
func Paginate[T any](items []T, page, size int) ([]T, models.Pagination) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return items[start:end], models.Pagination{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
	}
}
