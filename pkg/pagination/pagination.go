package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows a single page may request.
	MaxLimit = 100
)

// Window describes a resolved page over a collection of known size.
type Window struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	Start      int
	End        int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// TotalPages returns ceil(count/size), never less than one.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultLimit
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage pulls page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Resolve clamps the requested page against count and returns the slice bounds.
// A non-positive size falls back to DefaultLimit; the size is not capped so callers
// that buffer whole collections can page through them.
func Resolve(page, size, count int) Window {
	if size <= 0 {
		size = DefaultLimit
	}
	if count < 0 {
		count = 0
	}
	total := TotalPages(count, size)
	page = ClampPage(page, total)
	start := (page - 1) * size
	end := start + size
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}
	return Window{
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		TotalCount: count,
		Start:      start,
		End:        end,
	}
}

// HasNext reports whether a page follows this one.
func (w Window) HasNext() bool {
	return w.Page < w.TotalPages
}

// HasPrevious reports whether a page precedes this one.
func (w Window) HasPrevious() bool {
	return w.Page > 1
}
