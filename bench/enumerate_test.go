package bench

import (
	"errors"
	"testing"

	"github.com/mzbench/mzbench/config"
	"github.com/mzbench/mzbench/model"
)

func TestEnumerate(t *testing.T) {
	specs, err := Enumerate([]string{"m1", "m2"}, []string{"n8", "n10", "n12"}, 2)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if len(specs) != 12 {
		t.Fatalf("expected 12 specs, got %d", len(specs))
	}

	// Nested order: model outer, instance middle, repetition inner.
	want := []model.RunSpec{
		{Seq: 0, Model: "m1", Instance: "n8", Repetition: 1},
		{Seq: 1, Model: "m1", Instance: "n8", Repetition: 2},
		{Seq: 2, Model: "m1", Instance: "n10", Repetition: 1},
		{Seq: 3, Model: "m1", Instance: "n10", Repetition: 2},
		{Seq: 4, Model: "m1", Instance: "n12", Repetition: 1},
		{Seq: 5, Model: "m1", Instance: "n12", Repetition: 2},
		{Seq: 6, Model: "m2", Instance: "n8", Repetition: 1},
	}
	for i, w := range want {
		if specs[i] != w {
			t.Errorf("specs[%d] = %+v, want %+v", i, specs[i], w)
		}
	}
}

func TestEnumerate_NoDuplicatesWithoutRepetition(t *testing.T) {
	specs, err := Enumerate([]string{"m1", "m2", "m3"}, []string{"n8", "n10"}, 1)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	seen := map[string]bool{}
	for _, spec := range specs {
		key := spec.Model + "/" + spec.Instance
		if seen[key] {
			t.Errorf("duplicate spec %s", key)
		}
		seen[key] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 unique specs, got %d", len(seen))
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	a, err := Enumerate([]string{"m1", "m2"}, []string{"n8"}, 3)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	b, err := Enumerate([]string{"m1", "m2"}, []string{"n8"}, 3)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("enumeration not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEnumerate_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		models      []string
		instances   []string
		repetitions int
	}{
		{name: "no models", models: nil, instances: []string{"n8"}, repetitions: 1},
		{name: "no instances", models: []string{"m1"}, instances: nil, repetitions: 1},
		{name: "zero repetitions", models: []string{"m1"}, instances: []string{"n8"}, repetitions: 0},
		{name: "negative repetitions", models: []string{"m1"}, instances: []string{"n8"}, repetitions: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Enumerate(tt.models, tt.instances, tt.repetitions)
			var cfgErr *config.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigurationError, got %v", err)
			}
		})
	}
}
