// Package listing implements the filter -> sort -> paginate pipeline every
// collection endpoint runs its records through.
package listing

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
	StatusAll       = "all"
)

// Query is the user's view state for one list: search text, status filter,
// sort key and current page.
type Query struct {
	Text     string `json:"q,omitempty"`
	Status   string `json:"status,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// ParseQuery reads q, status, sort, page and page_size. Missing or malformed
// numbers fall back to page 1 and defaultSize; page_size is capped at MaxPageSize.
func ParseQuery(v url.Values, defaultSize int) Query {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	atoi := func(s string, def int) int {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return def
		}
		return n
	}
	q := Query{
		Text:     strings.TrimSpace(v.Get("q")),
		Status:   strings.TrimSpace(v.Get("status")),
		Sort:     strings.TrimSpace(v.Get("sort")),
		Page:     atoi(v.Get("page"), 1),
		PageSize: atoi(v.Get("page_size"), defaultSize),
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Schema tells the pipeline how to read one record type.
type Schema[T any] struct {
	// Fields returns the searchable strings of a record.
	Fields func(T) []string
	// Status returns the value compared against the status filter. Nil means
	// the record type has no status and the filter is ignored.
	Status func(T) string
	// Sorts maps a sort key to a comparator.
	Sorts map[string]func(a, b T) int
}

func ByString[T any](f func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(f(a), f(b)) }
}

func ByNumber[T any, N cmp.Ordered](f func(T) N) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

func ByTime[T any](f func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// Desc reverses a comparator.
func Desc[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return c(b, a) }
}

// Filter keeps records whose searchable fields contain text (case-insensitive)
// and whose status equals status. Empty text and an empty or "all" status
// match everything. The result never shares its backing array with records.
func Filter[T any](records []T, schema Schema[T], text, status string) []T {
	text = strings.ToLower(strings.TrimSpace(text))
	checkStatus := status != "" && status != StatusAll && schema.Status != nil
	out := make([]T, 0, len(records))
	for _, r := range records {
		if checkStatus && schema.Status(r) != status {
			continue
		}
		if text != "" && !matches(schema.Fields, r, text) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches[T any](fields func(T) []string, r T, needle string) bool {
	if fields == nil {
		return false
	}
	for _, f := range fields(r) {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy. An empty or unknown key keeps input order.
func Sort[T any](records []T, schema Schema[T], key string) []T {
	out := slices.Clone(records)
	if c, ok := schema.Sorts[key]; ok && c != nil {
		slices.SortStableFunc(out, c)
	}
	return out
}

type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// TotalPages is ceil(n/size), 0 when there is nothing to show.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Clamp bounds page to [1, total], returning 0 when total is 0.
func Clamp(page, total int) int {
	if total <= 0 {
		return 0
	}
	return min(max(page, 1), total)
}

// Prev and Next step within [1, total]; both stay at 0 on an empty result.
func Prev(page, total int) int { return Clamp(page-1, total) }

func Next(page, total int) int { return Clamp(page+1, total) }

// Paginate slices out the requested page. A non-positive size returns
// everything as a single page.
func Paginate[T any](records []T, page, size int) Page[T] {
	n := len(records)
	if size <= 0 {
		size = max(n, 1)
	}
	total := TotalPages(n, size)
	page = Clamp(page, total)
	out := Page[T]{Items: []T{}, Page: page, PageSize: size, TotalPages: total, Total: n}
	if total == 0 {
		return out
	}
	lo := (page - 1) * size
	hi := min(lo+size, n)
	out.Items = slices.Clone(records[lo:hi])
	out.HasPrev = page > 1
	out.HasNext = page < total
	return out
}

// Run chains Filter, Sort and Paginate.
func Run[T any](records []T, schema Schema[T], q Query) Page[T] {
	return Paginate(Sort(Filter(records, schema, q.Text, q.Status), schema, q.Sort), q.Page, q.PageSize)
}

// Group is one bucket of GroupBy.
type Group[T any] struct {
	Key   string `json:"key"`
	Items []T    `json:"items"`
}

// GroupBy buckets records by key, keeping first-seen key order.
func GroupBy[T any](records []T, key func(T) string) []Group[T] {
	idx := map[string]int{}
	var out []Group[T]
	for _, r := range records {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Group[T]{Key: k})
		}
		out[i].Items = append(out[i].Items, r)
	}
	return out
}
