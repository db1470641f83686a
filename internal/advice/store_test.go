package advice_test

import (
	"testing"

	"github.com/mymentor/mymentor-go/internal/advice"
	model "github.com/mymentor/mymentor-go/internal/model/advice"
)

func thread(id int) model.Thread {
	return model.Thread{
		Advice:     model.Advice{ID: id, Description: "t"},
		AsesorID:   1,
		AsesorName: "Consulta General",
	}
}

func ids(threads []model.Thread) []int {
	out := make([]int, len(threads))
	for i, t := range threads {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpsertNewPrepends(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(1), thread(2)})

	s.Upsert(thread(9))

	sorted := s.Sorted()
	if sorted[0].ID != 9 {
		t.Fatalf("new thread should display first, got id %d", sorted[0].ID)
	}
	if s.Len() != 3 {
		t.Fatalf("unexpected length: %d", s.Len())
	}
}

func TestUpsertExistingReplacesInPlace(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(3), thread(1), thread(4)})

	updated := thread(1)
	updated.Description = "updated"
	s.Upsert(updated)

	if s.Len() != 3 {
		t.Fatalf("length changed on update: %d", s.Len())
	}
	got, ok := s.Get(1)
	if !ok || got.Description != "updated" {
		t.Fatalf("thread 1 not replaced: %+v", got)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	s := advice.NewStore()
	s.Upsert(thread(5))
	once := ids(s.Sorted())

	s.Upsert(thread(5))
	twice := ids(s.Sorted())

	if !equalIDs(once, twice) {
		t.Fatalf("upsert not idempotent: %v vs %v", once, twice)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(1), thread(2)})

	s.Remove(1)
	s.Remove(1)

	if s.Len() != 1 {
		t.Fatalf("unexpected length after double remove: %d", s.Len())
	}
	if _, ok := s.Get(1); ok {
		t.Fatal("thread 1 should be gone")
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(1), thread(2)})
	if !s.Select(2) {
		t.Fatal("select failed")
	}

	s.Remove(2)

	if _, ok := s.Selected(); ok {
		t.Fatal("selection should be cleared when its thread is removed")
	}
}

func TestSortedDescendingByID(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(3), thread(1), thread(4)})

	got := ids(s.Sorted())
	want := []int{4, 3, 1}
	if !equalIDs(got, want) {
		t.Fatalf("unexpected display order: %v, want %v", got, want)
	}
}

func TestReplaceDropsDuplicateIDs(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(1), thread(2), thread(1)})

	if s.Len() != 2 {
		t.Fatalf("duplicates survived replace: len %d", s.Len())
	}
}

func TestReplaceClearsStaleSelection(t *testing.T) {
	s := advice.NewStore()
	s.Replace([]model.Thread{thread(1)})
	s.Select(1)

	s.Replace([]model.Thread{thread(2)})

	if _, ok := s.Selected(); ok {
		t.Fatal("selection should not survive a reload that dropped its thread")
	}
}

func TestSelectUnknownID(t *testing.T) {
	s := advice.NewStore()
	if s.Select(99) {
		t.Fatal("selecting an unknown id should fail")
	}
}
