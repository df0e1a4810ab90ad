// Package repository defines data access contracts for the content catalog,
// the append-only access log, and subject membership. Implementations contain
// persistence only; business rules live in the service layer.
package repository

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
