package proctable_test

import (
	"errors"
	"testing"

	"tenebractl/internal/proctable"
)

func TestFilterSkipsSelfOtherUsersAndZombies(t *testing.T) {
	filter := proctable.Filter{Name: "tenebra", UID: 1000, SelfPID: 10}
	src := proctable.SourceFunc(func() ([]proctable.Entry, error) {
		return []proctable.Entry{
			{PID: 10, UID: 1000, Name: "tenebra"},
			{PID: 11, UID: 0, Name: "tenebra"},
			{PID: 12, UID: 1000, Name: "tenebra", State: "Z (zombie)"},
			{PID: 13, UID: 1000, Name: "tenebrad"},
			{PID: 14, UID: 1000, Name: "tenebra", State: "S (sleeping)"},
			{PID: 15, UID: 1000, Name: "tenebra"},
		}, nil
	})

	entry, ok, err := proctable.Find(src, filter)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.PID != 14 {
		t.Fatalf("expected first eligible pid 14, got %d", entry.PID)
	}
}

func TestFilterAcceptsUnknownOwner(t *testing.T) {
	filter := proctable.Filter{Name: "tenebra", UID: 1000, SelfPID: 1}
	if !filter.Match(proctable.Entry{PID: 2, UID: proctable.UnknownUID, Name: "tenebra"}) {
		t.Fatal("expected entry with unknown owner to match")
	}
}

func TestFindPropagatesListError(t *testing.T) {
	boom := errors.New("boom")
	src := proctable.SourceFunc(func() ([]proctable.Entry, error) { return nil, boom })
	if _, ok, err := proctable.Find(src, proctable.CurrentUserFilter("tenebra")); !errors.Is(err, boom) || ok {
		t.Fatalf("expected list error, got ok=%v err=%v", ok, err)
	}
}

func TestFindNoMatch(t *testing.T) {
	src := proctable.SourceFunc(func() ([]proctable.Entry, error) {
		return []proctable.Entry{{PID: 99, UID: proctable.UnknownUID, Name: "other"}}, nil
	})
	if _, ok, err := proctable.Find(src, proctable.CurrentUserFilter("tenebra")); err != nil || ok {
		t.Fatalf("expected no match, got ok=%v err=%v", ok, err)
	}
}

func TestCurrentUserFilterNeverMatchesSelf(t *testing.T) {
	src := proctable.Default()
	entries, err := src.List()
	if err != nil {
		t.Skipf("process table unavailable: %v", err)
	}
	filter := proctable.CurrentUserFilter("")
	for _, e := range entries {
		if e.PID == filter.SelfPID {
			filter.Name = e.Name
			if filter.Match(e) {
				t.Fatalf("self entry %+v matched", e)
			}
		}
	}
}

func TestLookupFallsBackToList(t *testing.T) {
	src := proctable.SourceFunc(func() ([]proctable.Entry, error) {
		return []proctable.Entry{
			{PID: 10, Name: "tenebra", State: "S"},
			{PID: 11, Name: "tenebra", State: "Z"},
		}, nil
	})

	entry, ok, err := proctable.Lookup(src, 11)
	if err != nil || !ok || !entry.Zombie() {
		t.Fatalf("Lookup(11) = %+v, %v, %v", entry, ok, err)
	}
	if _, ok, err := proctable.Lookup(src, 12); ok || err != nil {
		t.Fatalf("Lookup(12) = %v, %v", ok, err)
	}

	failing := proctable.SourceFunc(func() ([]proctable.Entry, error) {
		return nil, errors.New("boom")
	})
	if _, _, err := proctable.Lookup(failing, 10); err == nil {
		t.Fatal("expected list error to propagate")
	}
}
