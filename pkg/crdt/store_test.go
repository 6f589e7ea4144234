package crdt

import (
	"bytes"
	"errors"
	"testing"
)

func TestStore_TryUpdate_Rejections(t *testing.T) {
	e := NewEntity(512, 0)

	tests := []struct {
		name      string
		component ComponentID
		kind      Kind
		wantErr   error
	}{
		{name: "unknown component id", component: ComponentID(424242), kind: KindLwwEntity, wantErr: ErrUnknownComponent},
		{name: "kind mismatch on lww component", component: ComponentTransform, kind: KindGoEntity, wantErr: ErrKindMismatch},
		{name: "kind mismatch on grow-only component", component: ComponentPointerResult, kind: KindLwwEntity, wantErr: ErrKindMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := NewStore()
			changed, err := st.TryUpdate(tc.component, tc.kind, e, 1, []byte{1})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("TryUpdate() error = %v, want %v", err, tc.wantErr)
			}
			if changed {
				t.Errorf("rejected update reported a change")
			}
			if !st.TakeUpdates().Empty() {
				t.Errorf("rejected update left state behind")
			}
		})
	}
}

func TestStore_GlobalKindsKeyedByRoot(t *testing.T) {
	st := NewStore()
	e := NewEntity(600, 1)

	if _, err := st.TryUpdate(ComponentAvatarEmoteCommand, KindGoAny, e, 1, []byte{1}); err != nil {
		t.Fatalf("TryUpdate() error = %v", err)
	}

	got := st.TakeUpdates()
	events := got.Appended[ComponentAvatarEmoteCommand]
	if len(events) != 1 || events[0].Entity != RootEntity {
		t.Errorf("global append keyed as %v, want root", events)
	}
}

func TestStore_TakeUpdates_Exactness(t *testing.T) {
	st := NewStore()
	a := NewEntity(512, 0)
	b := NewEntity(513, 0)
	c := NewEntity(514, 0)

	// five updates touching three entities; b's second write is stale
	mustUpdate(t, st, a, 1, []byte{1})
	mustUpdate(t, st, b, 2, []byte{2})
	mustUpdate(t, st, b, 1, []byte{9})
	mustUpdate(t, st, c, 1, []byte{3})
	mustUpdate(t, st, a, 2, []byte{4})

	got := st.TakeUpdates()
	ups := got.LWW[ComponentMeshRenderer]
	if len(ups) != 3 {
		t.Fatalf("drained %d entities, want 3", len(ups))
	}
	want := []EntityUpdate{
		{Entity: a, Entry: Entry{Timestamp: 2, IsSome: true, Data: []byte{4}}},
		{Entity: b, Entry: Entry{Timestamp: 2, IsSome: true, Data: []byte{2}}},
		{Entity: c, Entry: Entry{Timestamp: 1, IsSome: true, Data: []byte{3}}},
	}
	for i, w := range want {
		if ups[i].Entity != w.Entity {
			t.Errorf("update %d entity = %v, want %v", i, ups[i].Entity, w.Entity)
		}
		assertEntry(t, ups[i].Entry, w.Entry)
	}

	if !st.TakeUpdates().Empty() {
		t.Errorf("second drain was not empty")
	}
}

func TestStore_TakeUpdatesSnapshotsData(t *testing.T) {
	st := NewStore()
	e := NewEntity(512, 0)

	mustUpdate(t, st, e, 1, []byte{1, 2, 3})
	drained := st.TakeUpdates().LWW[ComponentMeshRenderer]
	if len(drained) != 1 {
		t.Fatalf("drained %d entities, want 1", len(drained))
	}

	// a newer write reuses the register buffer; the drained snapshot must
	// not see it
	mustUpdate(t, st, e, 2, []byte{9, 9, 9})

	if !bytes.Equal(drained[0].Entry.Data, []byte{1, 2, 3}) {
		t.Errorf("drained data = %v, changed under a later write", drained[0].Entry.Data)
	}
}

func TestStore_GrowOnlyForwardedOnce(t *testing.T) {
	st := NewStore()
	e := NewEntity(512, 0)

	payloads := [][]byte{{1}, {1}, {2}}
	for i, p := range payloads {
		changed, err := st.TryUpdate(ComponentPointerResult, KindGoEntity, e, Timestamp(i), p)
		if err != nil || !changed {
			t.Fatalf("append %d: changed=%v err=%v", i, changed, err)
		}
	}

	events := st.TakeUpdates().Appended[ComponentPointerResult]
	if len(events) != 3 {
		t.Fatalf("drained %d events, want 3 (duplicates are kept)", len(events))
	}
	for i, ev := range events {
		if !bytes.Equal(ev.Data, payloads[i]) {
			t.Errorf("event %d data = %v, want %v (order preserved)", i, ev.Data, payloads[i])
		}
	}

	if len(st.TakeUpdates().Appended[ComponentPointerResult]) != 0 {
		t.Errorf("second drain re-delivered events")
	}
}

func TestStore_RemoveEntity(t *testing.T) {
	st := NewStore()
	e := NewEntity(512, 0)
	other := NewEntity(513, 0)

	mustUpdate(t, st, e, 1, []byte{1})
	mustUpdate(t, st, other, 1, []byte{2})
	if _, err := st.TryUpdate(ComponentTransform, KindLwwEntity, e, 1, make([]byte, 44)); err != nil {
		t.Fatalf("TryUpdate() error = %v", err)
	}
	if _, err := st.TryUpdate(ComponentPointerResult, KindGoEntity, e, 1, []byte{3}); err != nil {
		t.Fatalf("TryUpdate() error = %v", err)
	}

	st.RemoveEntity(e)

	if _, ok := st.Get(ComponentMeshRenderer, e); ok {
		t.Errorf("entry survived RemoveEntity()")
	}
	if _, ok := st.Get(ComponentTransform, e); ok {
		t.Errorf("transform entry survived RemoveEntity()")
	}

	got := st.TakeUpdates()
	if len(got.Appended[ComponentPointerResult]) != 0 {
		t.Errorf("pending events survived RemoveEntity()")
	}
	ups := got.LWW[ComponentMeshRenderer]
	if len(ups) != 1 || ups[0].Entity != other {
		t.Errorf("drain after RemoveEntity() = %v, want only %v", ups, other)
	}
}

func mustUpdate(t *testing.T, st *Store, e Entity, ts Timestamp, data []byte) {
	t.Helper()
	if _, err := st.TryUpdate(ComponentMeshRenderer, KindLwwEntity, e, ts, data); err != nil {
		t.Fatalf("TryUpdate() error = %v", err)
	}
}
