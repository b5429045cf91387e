package query

import (
	"cmp"
	"sort"
	"strings"
	"time"

	"talentflow-backend/lib/utils/helpers"
)

const (
	StatusAll = "all"

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Request struct {
	Page      int
	Limit     int
	Status    string
	Search    string
	Tags      []string
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Accessor описывает, как фильтровать и сортировать записи конкретного типа.
// Не заданные функции отключают соответствующий фильтр.
type Accessor[T any] struct {
	Status       func(item T) string
	SearchFields func(item T) []string
	Tags         func(item T) []string
	// SortKeys ключ сортировки по имени поля, значение string, int, int64, float64 или time.Time
	SortKeys    map[string]func(item T) any
	DefaultSort string
}

// Defaults значения по умолчанию для разбора параметров запроса
type Defaults struct {
	Limit     int
	SortBy    string
	SortOrder string
}

// ParseRequest собирает Request из параметров запроса. Некорректные числа заменяются значениями по умолчанию
func ParseRequest(get func(key string) string, defaults Defaults) Request {
	if defaults.Limit == 0 {
		defaults.Limit = DefaultLimit
	}
	if defaults.SortOrder == "" {
		defaults.SortOrder = SortAsc
	}
	req := Request{
		Page:      helpers.ParseInt(get("page"), DefaultPage),
		Limit:     helpers.ParseInt(get("limit"), defaults.Limit),
		Status:    strings.TrimSpace(get("status")),
		Search:    strings.TrimSpace(get("search")),
		Tags:      helpers.SplitList(get("tags")),
		SortBy:    strings.TrimSpace(get("sortBy")),
		SortOrder: strings.ToLower(strings.TrimSpace(get("sortOrder"))),
	}
	if req.SortBy == "" {
		req.SortBy = defaults.SortBy
	}
	if req.SortOrder != SortDesc && req.SortOrder != SortAsc {
		req.SortOrder = defaults.SortOrder
	}
	return req
}

// Normalize ограничивает page >= 1 и limit в [1, MaxLimit]
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = 1
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return r
}

// Run фильтрация -> сортировка -> пагинация.
// Сортировка стабильная: записи с равным ключом сохраняют порядок исходного среза.
func Run[T any](items []T, req Request, acc Accessor[T]) Page[T] {
	req = req.Normalize()
	filtered := Filter(items, req, acc)
	Sort(filtered, req, acc)
	return Paginate(filtered, req.Page, req.Limit)
}

func Filter[T any](items []T, req Request, acc Accessor[T]) []T {
	search := strings.ToLower(req.Search)
	result := make([]T, 0, len(items))
	for _, item := range items {
		if req.Status != "" && req.Status != StatusAll && acc.Status != nil && acc.Status(item) != req.Status {
			continue
		}
		if search != "" && acc.SearchFields != nil && !matchSearch(acc.SearchFields(item), search) {
			continue
		}
		if len(req.Tags) != 0 && acc.Tags != nil && !matchAnyTag(acc.Tags(item), req.Tags) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func Sort[T any](items []T, req Request, acc Accessor[T]) {
	key, ok := acc.SortKeys[req.SortBy]
	if !ok {
		key, ok = acc.SortKeys[acc.DefaultSort]
	}
	if !ok {
		return
	}
	desc := req.SortOrder == SortDesc
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return compare(key(items[j]), key(items[i])) < 0
		}
		return compare(key(items[i]), key(items[j])) < 0
	})
}

func Paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	// страница за пределами диапазона пустая, умножать не безопасно: page приходит из запроса
	start, end := total, total
	if limit > 0 && page >= 1 && page <= totalPages {
		start = (page - 1) * limit
		end = min(start+limit, total)
	}
	data := make([]T, end-start)
	copy(data, items[start:end])
	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}

func matchSearch(fields []string, search string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchAnyTag(itemTags, requested []string) bool {
	for _, tag := range requested {
		for _, itemTag := range itemTags {
			if itemTag == tag {
				return true
			}
		}
	}
	return false
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	case int:
		bv, _ := b.(int)
		return cmp.Compare(av, bv)
	case int64:
		bv, _ := b.(int64)
		return cmp.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		return cmp.Compare(boolInt(av), boolInt(bv))
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	}
	return 0
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
