package memory

import (
	"github.com/citops/promisetrack/pkg/domain/interfaces"
)

// Memory is an in-memory implementation of interfaces.Repository for
// development and tests.
type Memory struct {
	task *taskRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		task: newTaskRepository(),
	}
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Close() error {
	return nil
}
