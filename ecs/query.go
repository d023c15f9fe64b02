package ecs

import (
	"iter"
	"unsafe"
)

// Query is a View that snapshots its matches once per frame. The Scheduler
// calls Execute before each system that declares the query, so iterating a
// query never observes entities spawned by Commands later in the frame.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cached     []T
	cacheValid bool
}

// NewQuery creates a Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage and drops any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cached = q.cached[:0]
	q.cacheValid = false
}

// Execute rebuilds the snapshot of matching entities.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = n
	}

	if q.cachedArchetypes == nil {
		q.cachedArchetypes = make([]*Archetype, 0)
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
	}

	q.cached = q.cached[:0]
	for _, archetype := range q.cachedArchetypes {
		if len(archetype.storages) == 0 {
			continue
		}

		storageIndices := q.view.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for entityIndex := range archetype.storages[0].Iter() {
			if q.view.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
				q.cached = append(q.cached, result)
			}
		}
	}

	q.cacheValid = true
}

// Iter yields the entities captured by the last Execute. It panics if
// Execute has never run.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, item := range q.cached {
			if !yield(item) {
				return
			}
		}
	}
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cached)
}
