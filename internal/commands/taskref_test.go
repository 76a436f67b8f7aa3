package commands

import (
	"errors"
	"path/filepath"
	"testing"

	"todo/internal/store"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRef  TaskRef
		wantRest int
		wantErr  error
	}{
		{"number", []string{"3"}, TaskRef{Num: 3}, 0, nil},
		{"number with text", []string{"12", "Buy", "eggs"}, TaskRef{Num: 12}, 2, nil},
		{"zero parses", []string{"0"}, TaskRef{Num: 0}, 0, nil},
		{"digit-only prefix is a number", []string{"1234"}, TaskRef{Num: 1234}, 0, nil},
		{"id prefix", []string{"a1b2"}, TaskRef{ID: "a1b2"}, 0, nil},
		{"id prefix is lowercased", []string{"A1B2C3"}, TaskRef{ID: "a1b2c3"}, 0, nil},
		{"full uuid", []string{"0f8fad5b-d9cb-469f-a165-70867728950e"}, TaskRef{ID: "0f8fad5b-d9cb-469f-a165-70867728950e"}, 0, nil},
		{"no args", nil, TaskRef{}, 0, ErrTaskRefRequired},
		{"blank", []string{"  "}, TaskRef{}, 0, ErrTaskRefRequired},
		{"prefix too short", []string{"abc"}, TaskRef{}, 0, ErrInvalidTaskRef},
		{"not hex", []string{"milk"}, TaskRef{}, 0, ErrInvalidTaskRef},
		{"negative", []string{"-1"}, TaskRef{}, 0, ErrInvalidTaskRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, rest, err := ParseTaskRef(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref != tt.wantRef {
				t.Errorf("expected %+v, got %+v", tt.wantRef, ref)
			}
			if len(rest) != tt.wantRest {
				t.Errorf("expected %d remaining args, got %d", tt.wantRest, len(rest))
			}
		})
	}
}

func TestParseTaskRef_InvalidMessage(t *testing.T) {
	_, _, err := ParseTaskRef([]string{"milk"})
	if err == nil || err.Error() != "invalid task reference: milk" {
		t.Errorf("expected 'invalid task reference: milk', got %v", err)
	}
}

func TestTaskRefIndex(t *testing.T) {
	ids := []string{"aaaa1111", "bbbb2222"}
	n := 0
	st, err := store.Open(filepath.Join(t.TempDir(), "todos.json"),
		store.WithIDGenerator(func() string { id := ids[n]; n++; return id }))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, text := range []string{"one", "two"} {
		if _, err := st.Add(text); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	tests := []struct {
		ref  TaskRef
		want int
	}{
		{TaskRef{Num: 1}, 0},
		{TaskRef{Num: 2}, 1},
		{TaskRef{Num: 9}, 8},
		{TaskRef{ID: "bbbb"}, 1},
	}
	for _, tt := range tests {
		got, err := tt.ref.Index(st)
		if err != nil {
			t.Errorf("%+v: unexpected error: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v: expected %d, got %d", tt.ref, tt.want, got)
		}
	}

	if _, err := (TaskRef{ID: "cccc"}).Index(st); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
