package store

import (
	"context"
	"testing"

	"github.com/tessellated/extstore/internal/value"
)

func TestLoad_AbsentRecord(t *testing.T) {
	s := createTestStore(t)

	obj, err := s.Load(context.Background(), "never-written")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if obj != nil {
		t.Errorf("expected nil object for absent record, got %v", obj)
	}
}

func TestSaveLoad_RoundTripPreservesBytes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	src := `{"b":1.50,"a":{"nested":[null,true,"s"]},"c":"<kept>"}`
	if err := s.Save(ctx, "ext-1", value.MustParseObject(src)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	obj, err := s.Load(ctx, "ext-1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if obj == nil {
		t.Fatal("Load() returned nil for a saved record")
	}
	out, err := value.Encode(obj)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if string(out) != src {
		t.Errorf("round trip changed bytes:\n got %s\nwant %s", out, src)
	}
}

func TestSave_ReplacesPriorRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "ext-1", value.MustParseObject(`{"old":1}`)); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	if err := s.Save(ctx, "ext-1", value.MustParseObject(`{"new":2}`)); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	obj, err := s.Load(ctx, "ext-1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, ok := obj.Get("old"); ok {
		t.Error("replaced record still contains old key")
	}
	if _, ok := obj.Get("new"); !ok {
		t.Error("replaced record missing new key")
	}
}

func TestSave_EmptyObjectIsAPresentRecord(t *testing.T) {
	// Remove relies on this: an emptied storage area is still a record,
	// distinct from no record at all.
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "ext-1", value.NewObject()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	obj, err := s.Load(ctx, "ext-1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if obj == nil {
		t.Fatal("empty record should load as a present, empty object")
	}
	if obj.Len() != 0 {
		t.Errorf("expected empty object, got %d keys", obj.Len())
	}
}

func TestDelete_RemovesRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "ext-1", value.MustParseObject(`{"k":"v"}`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Delete(ctx, "ext-1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	obj, err := s.Load(ctx, "ext-1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if obj != nil {
		t.Error("record still present after Delete()")
	}
}

func TestDelete_AbsentRecordIsNotAnError(t *testing.T) {
	s := createTestStore(t)

	if err := s.Delete(context.Background(), "ghost"); err != nil {
		t.Errorf("Delete() of absent record failed: %v", err)
	}
}

func TestLoad_CorruptRecordDegradesToAbsent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	cases := map[string]string{
		"garbage":     `{{{not json`,
		"truncated":   `{"k":"v`,
		"non-object":  `["top","level","array"]`,
		"bare-scalar": `42`,
		"empty":       ``,
	}
	for name, data := range cases {
		insertRawRecord(t, s, name, data)
		obj, err := s.Load(ctx, name)
		if err != nil {
			t.Errorf("%s: Load() should not error on corrupt data: %v", name, err)
		}
		if obj != nil {
			t.Errorf("%s: corrupt record should read as absent, got %v", name, obj)
		}
	}
}

func TestRecords_IsolatedByExtensionID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "one", value.MustParseObject(`{"k":"one"}`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Save(ctx, "two", value.MustParseObject(`{"k":"two"}`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Delete(ctx, "one"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	obj, err := s.Load(ctx, "two")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if obj == nil {
		t.Fatal("deleting one extension's record removed another's")
	}
}
