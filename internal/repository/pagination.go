package repository

// Page represents a simple limit/offset window for listing operations.
// Domain filters (player category, sold flag) live in the typed filter
// structs, not here.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a slice of items and the total count matching the query,
// so clients can paginate without an extra round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}
