package query

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type testJob struct {
	ID     int
	Title  string
	Slug   string
	Status string
	Tags   []string
	Order  int
}

var testAccessor = Accessor[testJob]{
	Status:       func(item testJob) string { return item.Status },
	SearchFields: func(item testJob) []string { return []string{item.Title, item.Slug} },
	Tags:         func(item testJob) []string { return item.Tags },
	SortKeys: map[string]func(item testJob) any{
		"title": func(item testJob) any { return item.Title },
		"order": func(item testJob) any { return item.Order },
	},
	DefaultSort: "order",
}

func testJobs(n int) []testJob {
	statuses := []string{"active", "archived"}
	tags := [][]string{{"react"}, {"backend", "typescript"}, {"design"}}
	result := make([]testJob, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, testJob{
			ID:     i + 1,
			Title:  fmt.Sprintf("Job %02d", n-i),
			Slug:   fmt.Sprintf("job-%02d", n-i),
			Status: statuses[i%2],
			Tags:   tags[i%3],
			Order:  i,
		})
	}
	return result
}

func TestRun(t *testing.T) {
	items := testJobs(23)

	t.Run(`pagination invariants`, func(t *testing.T) {
		for _, limit := range []int{1, 5, 10, 23, 50} {
			for page := 1; page <= 6; page++ {
				result := Run(items, Request{Page: page, Limit: limit}, testAccessor)
				total := len(items)
				require.Equal(t, total, result.Pagination.Total)
				require.Equal(t, (total+limit-1)/limit, result.Pagination.TotalPages)
				expected := total - (page-1)*limit
				if expected > limit {
					expected = limit
				}
				if expected < 0 {
					expected = 0
				}
				require.Len(t, result.Data, expected)
				require.Equal(t, page < result.Pagination.TotalPages, result.Pagination.HasNext)
				require.Equal(t, page > 1, result.Pagination.HasPrev)
			}
		}
	})

	t.Run(`page beyond range is empty`, func(t *testing.T) {
		result := Run(items, Request{Page: 100, Limit: 10}, testAccessor)
		require.Empty(t, result.Data)
		require.NotNil(t, result.Data)
		require.Equal(t, 3, result.Pagination.TotalPages)
	})

	t.Run(`huge page from query string is empty`, func(t *testing.T) {
		params := map[string]string{"page": "92233720368547759", "limit": "100"}
		req := ParseRequest(func(key string) string { return params[key] }, Defaults{})
		require.NotPanics(t, func() {
			result := Run(items, req, testAccessor)
			require.Empty(t, result.Data)
			require.NotNil(t, result.Data)
			require.False(t, result.Pagination.HasNext)
		})
	})

	t.Run(`limit and page are clamped`, func(t *testing.T) {
		result := Run(items, Request{Page: -4, Limit: 1000}, testAccessor)
		require.Equal(t, 1, result.Pagination.Page)
		require.Equal(t, MaxLimit, result.Pagination.Limit)
		result = Run(items, Request{Page: 1, Limit: 0}, testAccessor)
		require.Equal(t, 1, result.Pagination.Limit)
	})

	t.Run(`status filter`, func(t *testing.T) {
		result := Run(items, Request{Page: 1, Limit: 100, Status: "archived"}, testAccessor)
		require.NotEmpty(t, result.Data)
		for _, item := range result.Data {
			require.Equal(t, "archived", item.Status)
		}
		all := Run(items, Request{Page: 1, Limit: 100, Status: StatusAll}, testAccessor)
		require.Len(t, all.Data, len(items))
	})

	t.Run(`tags filter is OR`, func(t *testing.T) {
		result := Run(items, Request{Page: 1, Limit: 100, Tags: []string{"react", "design"}}, testAccessor)
		require.NotEmpty(t, result.Data)
		for _, item := range result.Data {
			require.True(t, item.Tags[0] == "react" || item.Tags[0] == "design")
		}
		require.Len(t, result.Data, 15)
	})

	t.Run(`search matches title or slug case-insensitive`, func(t *testing.T) {
		result := Run(items, Request{Page: 1, Limit: 100, Search: "JOB 0"}, testAccessor)
		require.Len(t, result.Data, 9)
		result = Run(items, Request{Page: 1, Limit: 100, Search: "job-1"}, testAccessor)
		require.Len(t, result.Data, 10)
	})

	t.Run(`sort by title asc and desc`, func(t *testing.T) {
		result := Run(items, Request{Page: 1, Limit: 3, SortBy: "title", SortOrder: SortAsc}, testAccessor)
		require.Equal(t, "Job 01", result.Data[0].Title)
		result = Run(items, Request{Page: 1, Limit: 3, SortBy: "title", SortOrder: SortDesc}, testAccessor)
		require.Equal(t, "Job 23", result.Data[0].Title)
	})

	t.Run(`unknown sort key falls back to default`, func(t *testing.T) {
		result := Run(items, Request{Page: 1, Limit: 3, SortBy: "salary", SortOrder: SortDesc}, testAccessor)
		require.Equal(t, 22, result.Data[0].Order)
	})

	t.Run(`sort is stable`, func(t *testing.T) {
		same := []testJob{{ID: 1, Title: "b"}, {ID: 2, Title: "B"}, {ID: 3, Title: "a"}, {ID: 4, Title: "b"}}
		result := Run(same, Request{Page: 1, Limit: 10, SortBy: "title"}, testAccessor)
		ids := []int{}
		for _, item := range result.Data {
			ids = append(ids, item.ID)
		}
		require.Equal(t, []int{3, 1, 2, 4}, ids)
	})
}

func TestParseRequest(t *testing.T) {
	t.Run(`malformed numbers fall back to defaults`, func(t *testing.T) {
		values := url.Values{"page": {"abc"}, "limit": {"x"}, "tags": {"react, design"}, "sortOrder": {"sideways"}}
		req := ParseRequest(values.Get, Defaults{SortBy: "order"})
		require.Equal(t, 1, req.Page)
		require.Equal(t, 10, req.Limit)
		require.Equal(t, []string{"react", "design"}, req.Tags)
		require.Equal(t, "order", req.SortBy)
		require.Equal(t, SortAsc, req.SortOrder)
	})

	t.Run(`custom default limit`, func(t *testing.T) {
		req := ParseRequest(url.Values{}.Get, Defaults{Limit: 25})
		require.Equal(t, 25, req.Limit)
	})
}
