package avl

import (
	"sync"
	"testing"
)

func TestOrderedTreeAddFindRemove(t *testing.T) {
	tree := NewOrderedTree[int, string]()
	values := map[int]string{1: "a", 5: "e", 3: "c", 4: "d", 2: "b"}
	for k, v := range values {
		if _, err := tree.Add(k, v); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	if tree.Size() != len(values) {
		t.Errorf("want size=%d, got size=%d", len(values), tree.Size())
	}
	for k, v := range values {
		node := tree.Find(k)
		if node == nil {
			t.Fatalf("want Find(%d)!=nil, got nil", k)
		}
		if node.Value() != v {
			t.Errorf("want Find(%d).Value()==%q, got %q", k, v, node.Value())
		}
	}
	if tree.Find(42) != nil {
		t.Error("want Find(42)==nil for absent key, got node")
	}
	value, err := tree.Remove(3)
	if err != nil {
		t.Fatalf("failed to remove key 3: %v", err)
	}
	if value != "c" {
		t.Errorf("want removed value %q, got %q", "c", value)
	}
	if tree.Find(3) != nil {
		t.Error("want Find(3)==nil after removal, got node")
	}
	if _, err := tree.Remove(3); err != ErrTreeNodeNotFound {
		t.Errorf("want ErrTreeNodeNotFound on double remove, got %v", err)
	}
}

func TestOrderedTreeDuplicateKey(t *testing.T) {
	tree := NewOrderedTree[int, int]()
	if _, err := tree.Add(1, 1); err != nil {
		t.Fatalf("failed to add key 1: %v", err)
	}
	if _, err := tree.Add(1, 2); err != ErrTreeNodeDuplicate {
		t.Errorf("want ErrTreeNodeDuplicate, got %v", err)
	}
	if tree.Size() != 1 {
		t.Errorf("want size=1 after rejected duplicate, got size=%d", tree.Size())
	}
}

func TestOrderedTreeMostLeftMostRight(t *testing.T) {
	tree := NewOrderedTree[int, int]()
	if tree.MostLeft() != nil || tree.MostRight() != nil {
		t.Error("want nil extremes on empty tree")
	}
	for _, k := range []int{50, 20, 70, 10, 60, 80, 30} {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	if got := tree.MostLeft().Key(); got != 10 {
		t.Errorf("want MostLeft().Key()==10, got %d", got)
	}
	if got := tree.MostRight().Key(); got != 80 {
		t.Errorf("want MostRight().Key()==80, got %d", got)
	}
	if _, err := tree.Remove(10); err != nil {
		t.Fatalf("failed to remove key 10: %v", err)
	}
	if got := tree.MostLeft().Key(); got != 20 {
		t.Errorf("want MostLeft().Key()==20 after removing 10, got %d", got)
	}
	if _, err := tree.Remove(80); err != nil {
		t.Fatalf("failed to remove key 80: %v", err)
	}
	if got := tree.MostRight().Key(); got != 70 {
		t.Errorf("want MostRight().Key()==70 after removing 80, got %d", got)
	}
}

func TestOrderedTreeKeysSorted(t *testing.T) {
	tree := NewOrderedTree[int, int]()
	for _, k := range []int{9, 1, 8, 2, 7, 3, 6, 4, 5} {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	keys := tree.Keys()
	if len(keys) != 9 {
		t.Fatalf("want 9 keys, got %d", len(keys))
	}
	for i, k := range keys {
		if k != i+1 {
			t.Errorf("want keys[%d]==%d, got %d", i, i+1, k)
		}
	}
}

func TestOrderedTreeIterateInOrderStops(t *testing.T) {
	tree := NewOrderedTree[int, int]()
	for k := 1; k <= 10; k++ {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	visited := 0
	tree.IterateInOrder(func(key, _ int) bool {
		visited++
		return key < 5
	})
	if visited != 5 {
		t.Errorf("want 5 visited nodes, got %d", visited)
	}
}

func TestReversedTreeOrder(t *testing.T) {
	tree := NewTree[int, int](func(a, b int) int { return b - a })
	for _, k := range []int{3, 1, 2} {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	if got := tree.MostLeft().Key(); got != 3 {
		t.Errorf("want MostLeft().Key()==3 with reversed comparator, got %d", got)
	}
	keys := tree.Keys()
	want := []int{3, 2, 1}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("want keys[%d]==%d, got %d", i, want[i], keys[i])
		}
	}
}

func TestPooledTreeClearReusesNodes(t *testing.T) {
	allocs := 0
	pool := &sync.Pool{New: func() any {
		allocs++
		return &Node[int, int]{}
	}}
	tree := NewTreePooled[int, int](func(a, b int) int { return a - b }, pool)
	for k := 1; k <= 4; k++ {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to add key %d: %v", k, err)
		}
	}
	tree.Clear()
	if tree.Size() != 0 {
		t.Errorf("want size=0 after Clear, got size=%d", tree.Size())
	}
	if tree.MostLeft() != nil || tree.MostRight() != nil {
		t.Error("want nil extremes after Clear")
	}
	allocsBefore := allocs
	for k := 1; k <= 4; k++ {
		if _, err := tree.Add(k, k); err != nil {
			t.Fatalf("failed to re-add key %d: %v", k, err)
		}
	}
	if allocs != allocsBefore {
		t.Errorf("want 0 new allocations after Clear, got %d", allocs-allocsBefore)
	}
}

func FuzzOrderedTree_AddRemove(f *testing.F) {
	testcases := []string{
		"abcdefg",
		"a",
	}
	for _, tc := range testcases {
		f.Add(tc)
	}
	f.Fuzz(func(t *testing.T, str string) {
		tree := NewOrderedTree[rune, rune]()
		t.Logf("using runes: %q", str)
		seen := make(map[rune]bool)
		for _, r := range str {
			if seen[r] {
				if _, err := tree.Add(r, r); err != ErrTreeNodeDuplicate {
					t.Errorf("want duplicate error for %q, got %v", string(r), err)
				}
				continue
			}
			seen[r] = true
			if _, err := tree.Add(r, r); err != nil {
				t.Errorf("failed to add %q: %v", string(r), err)
			}
			if tree.Find(r) == nil {
				t.Errorf("just added, but Find(%q) == nil", string(r))
			}
		}
		if tree.Size() != len(seen) {
			t.Errorf("want len=%d, got len=%d", len(seen), tree.Size())
		}
		prev := rune(-1)
		first := true
		tree.IterateInOrder(func(key, _ rune) bool {
			if !first && key <= prev {
				t.Errorf("keys out of order: %q after %q", string(key), string(prev))
			}
			prev = key
			first = false
			return true
		})
		for r := range seen {
			lenBefore := tree.Size()
			if _, err := tree.Remove(r); err != nil {
				t.Errorf("failed to remove value %d", r)
			}
			if lenBefore-1 != tree.Size() {
				t.Errorf("len did not shrink by 1: want %d, got %d", lenBefore-1, tree.Size())
			}
		}
		if tree.Size() != 0 {
			t.Errorf("want empty, got len=%d", tree.Size())
		}
	})
}
