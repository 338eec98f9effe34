package models

// SortDirection is the requested ordering direction for a paginated query.
type SortDirection string

const (
	// SortAsc orders results ascending. It is the default direction.
	SortAsc SortDirection = "ASC"

	// SortDesc orders results descending.
	SortDesc SortDirection = "DESC"
)

// PageRequest is the canonical form of a caller's pagination parameters after
// resolution: the page index is zero-based and non-negative, Size has already
// been defaulted and clamped to the configured maximum, and SortField names a
// sortable entity field or is empty for primary-key order.
type PageRequest struct {
	// Page is the zero-based page index.
	Page int

	// Size is the number of elements requested per page.
	Size int

	// SortField is the entity field to order by. Empty means stable
	// primary-key order.
	SortField string

	// Direction is the ordering direction. Ignored when SortField is empty.
	Direction SortDirection
}

// Offset returns the row offset of the first element of the requested page.
func (p PageRequest) Offset() uint64 {
	return uint64(p.Page) * uint64(p.Size)
}

// Page is a read-only projection wrapping one bounded slice of a larger
// ordered result set together with metadata describing its position within
// the whole.
type Page[T any] struct {
	// Content is the slice of items on this page, in request order.
	Content []T `json:"content"`

	// Page is the zero-based index of this page.
	Page int `json:"page"`

	// Size is the number of elements requested per page.
	Size int `json:"size"`

	// TotalElements is the element count across all pages.
	TotalElements int64 `json:"totalElements"`

	// TotalPages is ceil(TotalElements / Size).
	TotalPages int `json:"totalPages"`

	// First reports whether this is the first page (Page == 0).
	First bool `json:"first"`

	// Last reports whether this is the last page.
	Last bool `json:"last"`

	// NumberOfElements is the actual element count returned on this page.
	NumberOfElements int `json:"numberOfElements"`

	// Empty reports whether the page holds no elements.
	Empty bool `json:"empty"`
}

// NewPage assembles a [Page] envelope from one slice of content plus the
// resolved page index, page size, and the total element count across all
// pages. All derived fields (TotalPages, First, Last, NumberOfElements,
// Empty) are computed here so that every envelope in the system satisfies
// the same invariants.
func NewPage[T any](content []T, page, size int, totalElements int64) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}

	return Page[T]{
		Content:          content,
		Page:             page,
		Size:             size,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		First:            page == 0,
		Last:             totalPages == 0 || page == totalPages-1,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}
