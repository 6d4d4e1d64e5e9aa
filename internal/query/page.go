package query

const (
	DefaultOptionLimit = 20
	MaxOptionLimit     = 100
)

// Page is a zero-based page index plus a page size.
type Page struct {
	Num  int `json:"num"`
	Size int `json:"size"`
}

func NewPage(num, size int) Page {
	if num < 0 {
		num = 0
	}
	if size <= 0 {
		size = 1
	}
	return Page{Num: num, Size: size}
}

// OptionPage clamps a filter-option search window to limit in [1, 100]
// (default 20) and page >= 0.
func OptionPage(num, limit int) Page {
	if limit == 0 {
		limit = DefaultOptionLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxOptionLimit {
		limit = MaxOptionLimit
	}
	return NewPage(num, limit)
}

func (p Page) Offset() int {
	return p.Num * p.Size
}

func (p Page) Next() Page {
	return Page{Num: p.Num + 1, Size: p.Size}
}

type Result[T any] struct {
	Data     []T   `json:"data"`
	HasNext  bool  `json:"hasNext"`
	NextPage *Page `json:"nextPage,omitempty"`
}

// Paginate wraps one page of rows. A full page signals a next page without a
// count query; when the total is an exact multiple of the size, the final
// request returns an empty page.
func Paginate[T any](rows []T, page Page) Result[T] {
	if rows == nil {
		rows = []T{}
	}
	res := Result[T]{Data: rows}
	if len(rows) == page.Size {
		next := page.Next()
		res.HasNext = true
		res.NextPage = &next
	}
	return res
}

// Map converts the rows of a result while keeping its continuation.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(r.Data))
	for _, v := range r.Data {
		out = append(out, fn(v))
	}
	return Result[U]{Data: out, HasNext: r.HasNext, NextPage: r.NextPage}
}
