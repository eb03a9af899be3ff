package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is the shared sentinel wrapped by all repository backends
// when a record does not exist. Callers detect it with errors.Is.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Task() TaskRepository

	Close() error
}
