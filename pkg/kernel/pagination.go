package kernel

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationOptions are page-numbered options used by the CRUD list endpoints
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize fills defaults and clamps the page size
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > MaxLimit {
		p.PageSize = DefaultLimit
	}
	return p
}

// Offset returns the zero-based index of the first item of the page
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a Paginated from one page of items and the total count
func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	opts = opts.Normalize()
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  (total + opts.PageSize - 1) / opts.PageSize,
		},
		Empty: len(items) == 0,
	}
}

// PaginateSlice cuts one page out of an already loaded, ordered slice
func PaginateSlice[T any](all []T, opts PaginationOptions) *Paginated[T] {
	opts = opts.Normalize()
	return NewPaginated(Window(all, opts.Offset(), opts.PageSize), opts, len(all))
}

// ClampWindow applies the offset/limit defaults used by the listing endpoints
func ClampWindow(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

// Window returns the contiguous slice items[offset : offset+limit], clamped to the
// bounds of items. Out-of-range windows yield an empty, non-nil slice.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}
