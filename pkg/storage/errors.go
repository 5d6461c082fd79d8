package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidID       = errors.New("invalid node ID")
	ErrDuplicateNode   = errors.New("node already exists")
	ErrNodeNotFound    = errors.New("node not found")
	ErrSelfLoop        = errors.New("edge endpoints must differ")
	ErrDuplicateEdge   = errors.New("edge already exists")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrEdgeSealed      = errors.New("edge is sealed")
	ErrInvalidArgument = errors.New("invalid argument")
)

// StorageError provides structured error information for graph operations.
type StorageError struct {
	Op      string // Operation that failed (e.g., "create_node", "toggle_sealed")
	Entity  string // Entity type ("node" or "edge")
	ID      string // Node ID, or "A <-> B" for edges
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	switch {
	case e.ID != "" && e.Context != "":
		return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
	case e.ID != "":
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building StorageErrors.
type ErrorBuilder struct {
	err StorageError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StorageError{Op: op}}
}

// Node sets the entity to "node" with the given ID.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = id
	return b
}

// Edge sets the entity to "edge" between the two endpoint IDs.
func (b *ErrorBuilder) Edge(a, b2 string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.ID = a + " <-> " + b2
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed StorageError.
func (b *ErrorBuilder) Build() *StorageError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op, id string) error {
	return NewError(op).Node(id).Cause(ErrNodeNotFound).Err()
}

// EdgeNotFoundError creates an edge not found error.
func EdgeNotFoundError(op, a, b string) error {
	return NewError(op).Edge(a, b).Cause(ErrEdgeNotFound).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}

// IsValidation returns true if the error was caused by malformed input
// rather than by the current graph state.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidID) || errors.Is(err, ErrSelfLoop) || errors.Is(err, ErrInvalidArgument)
}
