package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/mockcanvas/internal/models"
)

func TestIDAllocatorStartsAtOneAndIncreases(t *testing.T) {
	var ids IDAllocator
	require.Equal(t, int64(0), ids.Last())
	require.Equal(t, int64(1), ids.Next())
	require.Equal(t, int64(2), ids.Next())
	require.Equal(t, int64(2), ids.Last())
}

func TestIDAllocatorConcurrentCallersNeverCollide(t *testing.T) {
	var ids IDAllocator
	const workers, perWorker = 8, 500

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)

	var group errgroup.Group
	for range workers {
		group.Go(func() error {
			local := make([]int64, 0, perWorker)
			for range perWorker {
				local = append(local, ids.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if _, dup := seen[id]; dup {
					return errors.New("duplicate id issued")
				}
				seen[id] = struct{}{}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
	require.Len(t, seen, workers*perWorker)
	require.Equal(t, int64(workers*perWorker), ids.Last())
}

func TestTableInsertRejectsDuplicates(t *testing.T) {
	table := NewTable[models.Term]("term")
	require.NoError(t, table.Insert(1, models.Term{ID: 1, Name: "Fall"}))

	err := table.Insert(1, models.Term{ID: 1, Name: "Spring"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	term, ok := table.Get(1)
	require.True(t, ok)
	require.Equal(t, "Fall", term.Name)
}

func TestTableReplaceRequiresExistingKey(t *testing.T) {
	table := NewTable[models.Term]("term")
	require.ErrorIs(t, table.Replace(7, models.Term{ID: 7}), ErrUnknownKey)

	require.NoError(t, table.Insert(7, models.Term{ID: 7, Name: "Old"}))
	require.NoError(t, table.Replace(7, models.Term{ID: 7, Name: "New"}))
	require.Equal(t, "New", table.MustGet(7).Name)
}

func TestTableAllOrdersByID(t *testing.T) {
	table := NewTable[models.Term]("term")
	for _, id := range []int64{9, 3, 5} {
		require.NoError(t, table.Insert(id, models.Term{ID: id}))
	}

	require.Equal(t, []int64{3, 5, 9}, table.IDs())
	all := table.All()
	require.Len(t, all, 3)
	require.Equal(t, int64(3), all[0].ID)
	require.Equal(t, int64(9), all[2].ID)

	table.Delete(5)
	require.False(t, table.Has(5))
	require.Equal(t, 2, table.Len())
}

func TestTableMustGetPanicsWithMissingParent(t *testing.T) {
	table := NewTable[models.Course]("course")

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		err, ok := recovered.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, ErrMissingParent)
		require.Contains(t, err.Error(), "course 42")
	}()
	table.MustGet(42)
}

func TestTableClonesOnWriteAndRead(t *testing.T) {
	table := NewTable[models.Course]("course")

	course := models.Course{ID: 1, Sections: []models.Section{{ID: 2, StudentIDs: []int64{3}}}}
	require.NoError(t, table.Insert(course.ID, course))
	course.Sections[0].StudentIDs[0] = 30

	got, ok := table.Get(1)
	require.True(t, ok)
	require.Equal(t, []int64{3}, got.Sections[0].StudentIDs)

	got.Sections[0].Name = "edited"
	table.All()[0].Sections[0].StudentIDs[0] = 300
	again := table.MustGet(1)
	require.Empty(t, again.Sections[0].Name)
	require.Equal(t, []int64{3}, again.Sections[0].StudentIDs)
}

func TestIndexKeepsPreviouslyReturnedSlices(t *testing.T) {
	index := NewIndex[int64]()
	index.Add(1, 10)
	index.Add(1, 11)

	before := index.Lookup(1)
	index.Add(1, 12)
	index.MoveToEnd(1, 10)

	require.Equal(t, []int64{10, 11}, before)
	require.Equal(t, []int64{11, 12, 10}, index.Lookup(1))
	require.True(t, index.Contains(1, 12))

	index.Remove(1, 11)
	index.Remove(1, 12)
	index.Remove(1, 10)
	require.Equal(t, 0, index.Len(1))
}

func TestStoreUpdateReleasesLockOnPanic(t *testing.T) {
	s := New()

	require.Panics(t, func() {
		s.Update(func(state *State) {
			state.Courses.MustGet(99)
		})
	})

	s.Update(func(state *State) {
		id := state.NextID()
		require.NoError(t, state.Terms.Insert(id, models.Term{ID: id, Name: "Default Term"}))
	})

	s.View(func(state *State) {
		require.Equal(t, 1, state.Terms.Len())
		require.Equal(t, 1, state.Counts()["term"])
	})
}
