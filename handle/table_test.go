package handle

import "testing"

const (
	kindA Kind = 1
	kindB Kind = 2
)

type releaseCounter struct {
	released int
}

func (r *releaseCounter) Release() { r.released++ }

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Put(kindA, "value")
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	v, ok := table.Get(h, kindA)
	if !ok || v != "value" {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	// Wrong kind does not resolve.
	if _, ok := table.Get(h, kindB); ok {
		t.Error("Get with wrong kind succeeded")
	}

	if !table.Free(h, kindA) {
		t.Fatal("Free failed")
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d after Free", table.Len())
	}

	// Dead handle stays dead.
	if _, ok := table.Get(h, kindA); ok {
		t.Error("Get on freed handle succeeded")
	}
	if table.Free(h, kindA) {
		t.Error("double Free succeeded")
	}
}

func TestTable_ZeroAndUnknownHandles(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(0, kindA); ok {
		t.Error("handle 0 resolved")
	}
	if table.Free(0, kindA) {
		t.Error("freed handle 0")
	}
	if _, ok := table.Get(42, kindA); ok {
		t.Error("never-issued handle resolved")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Put(kindA, 1)
	table.Free(h1, kindA)

	h2 := table.Put(kindB, 2)
	if h2 != h1 {
		t.Errorf("expected slot reuse, got %d then %d", h1, h2)
	}
	// The reissued slot carries the new kind.
	if _, ok := table.Get(h2, kindA); ok {
		t.Error("stale kind resolved after reuse")
	}
	if v, ok := table.Get(h2, kindB); !ok || v != 2 {
		t.Errorf("Get = %v, %v", v, ok)
	}
}

func TestTable_Releaser(t *testing.T) {
	table := NewTable()
	rc := &releaseCounter{}

	h := table.Put(kindA, rc)
	table.Free(h, kindA)
	if rc.released != 1 {
		t.Errorf("released = %d, want 1", rc.released)
	}
}

func TestTable_Each(t *testing.T) {
	table := NewTable()
	table.Put(kindA, 1)
	table.Put(kindB, 2)
	table.Put(kindA, 3)

	var got []any
	table.Each(kindA, func(h Handle, v any) bool {
		got = append(got, v)
		return true
	})
	if len(got) != 2 {
		t.Errorf("visited %d values, want 2", len(got))
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	rc := &releaseCounter{}
	table.Put(kindA, rc)
	h := table.Put(kindA, "other")

	table.Close()
	table.Close() // idempotent

	if rc.released != 1 {
		t.Errorf("released = %d, want 1", rc.released)
	}
	if _, ok := table.Get(h, kindA); ok {
		t.Error("Get after Close succeeded")
	}
	if table.Put(kindA, "new") != 0 {
		t.Error("Put after Close issued a handle")
	}
}
