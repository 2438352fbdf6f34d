package set_test

import (
	"slices"
	"testing"

	"github.com/stateforward/go-seqdetect/pkg/set"
)

func TestSet(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		s := set.New[byte]('0', '1', '1')
		if s == nil {
			t.Fatal("Expected non-nil set")
		}
		if s.Size() != 2 {
			t.Errorf("Expected size 2, got %d", s.Size())
		}
		if !s.Contains('0') || !s.Contains('1') {
			t.Error("Expected set to contain '0' and '1'")
		}
		if s.Contains('2') {
			t.Error("Expected set to not contain '2'")
		}
	})

	t.Run("ContainsAll", func(t *testing.T) {
		s := set.New("show", "reset")
		if !s.ContainsAll("show", "reset") {
			t.Error("Expected set to contain all commands")
		}
		if s.ContainsAll("show", "quit") {
			t.Error("Expected set to not contain 'quit'")
		}
		if !s.ContainsAll() {
			t.Error("Expected empty argument list to be contained")
		}
	})

	t.Run("Add", func(t *testing.T) {
		s := set.Set[string]{}
		s.Add("diagram")
		s.Add("diagram")
		if s.Size() != 1 {
			t.Errorf("Expected size 1, got %d", s.Size())
		}
	})

	t.Run("Items", func(t *testing.T) {
		s := set.New(3, 1, 2)
		items := []int{}
		for item := range s.Items() {
			if item == 3 {
				break
			}
			items = append(items, item)
		}
		if !slices.Equal(items, []int{1, 2}) {
			t.Errorf("Expected [1 2], got %v", items)
		}
	})

	t.Run("Sorted", func(t *testing.T) {
		s := set.New("reset", "diagram", "show")
		if got := s.Sorted(); !slices.Equal(got, []string{"diagram", "reset", "show"}) {
			t.Errorf("Expected sorted commands, got %v", got)
		}
	})
}
