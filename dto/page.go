package dto

// Page is one zero-based slice of a listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage converts items with conv and fills in the paging counters.
func NewPage[M any, T any](items []M, conv func(*M) T, page, size int, total int64) Page[T] {
	content := make([]T, 0, len(items))
	for i := range items {
		content = append(content, conv(&items[i]))
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}
