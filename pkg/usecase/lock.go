package usecase

import (
	"sync"

	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// projectLocks serializes state changes per project
type projectLocks struct {
	mu    sync.Mutex
	locks map[types.ProjectID]*sync.Mutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[types.ProjectID]*sync.Mutex)}
}

// lock acquires the project's mutex and returns its release function
func (l *projectLocks) lock(projectID types.ProjectID) func() {
	l.mu.Lock()
	m, ok := l.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[projectID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
