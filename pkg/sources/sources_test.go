package sources_test

import (
	"testing"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/sources"
)

func TestHierarchyIsPermutation(t *testing.T) {
	hierarchy := sources.Hierarchy()
	ids := sources.IDs()

	if len(hierarchy) != len(ids) {
		t.Fatalf("hierarchy has %d entries, want %d", len(hierarchy), len(ids))
	}

	seen := make(map[sources.ID]int)
	for _, id := range hierarchy {
		seen[id]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("source %s appears %d times in hierarchy, want exactly once", id, seen[id])
		}
	}

	if err := sources.ValidateHierarchy(hierarchy); err != nil {
		t.Errorf("canonical hierarchy failed validation: %v", err)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		id   sources.ID
		want int
	}{
		{sources.FSIN, 0},
		{sources.Rosstat, 1},
		{sources.AuditRu, 2},
		{sources.ManualConfirmed, 3},
		{sources.ManualUnconfirmed, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, err := sources.Rank(tt.id)
			if err != nil {
				t.Fatalf("Rank(%s) error: %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("Rank(%s) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestRankUnknownSource(t *testing.T) {
	_, err := sources.Rank(sources.ID("egrul"))
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
	if !errors.IsUnknownSource(err) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b sources.ID
		want int
	}{
		{"more trusted first", sources.FSIN, sources.Rosstat, -1},
		{"less trusted first", sources.ManualUnconfirmed, sources.AuditRu, 1},
		{"same source", sources.Rosstat, sources.Rosstat, 0},
		{"extremes", sources.FSIN, sources.ManualUnconfirmed, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sources.Compare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Compare(%s, %s) error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	ids := sources.IDs()
	for _, a := range ids {
		for _, b := range ids {
			ab, err := sources.Compare(a, b)
			if err != nil {
				t.Fatalf("Compare(%s, %s) error: %v", a, b, err)
			}
			ba, err := sources.Compare(b, a)
			if err != nil {
				t.Fatalf("Compare(%s, %s) error: %v", b, a, err)
			}
			if ab != -ba {
				t.Errorf("Compare(%s, %s) = %d but Compare(%s, %s) = %d", a, b, ab, b, a, ba)
			}
			if a == b && ab != 0 {
				t.Errorf("Compare(%s, %s) = %d, want 0 for identical sources", a, b, ab)
			}
			if a != b && ab == 0 {
				t.Errorf("Compare(%s, %s) = 0 for distinct sources; ranks must be unique", a, b)
			}
		}
	}
}

func TestCompareUnknownSource(t *testing.T) {
	if _, err := sources.Compare(sources.ID("bogus"), sources.FSIN); !errors.IsUnknownSource(err) {
		t.Errorf("expected ErrUnknownSource for first argument, got %v", err)
	}
	if _, err := sources.Compare(sources.FSIN, sources.ID("bogus")); !errors.IsUnknownSource(err) {
		t.Errorf("expected ErrUnknownSource for second argument, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	for _, id := range sources.IDs() {
		if !id.IsValid() {
			t.Errorf("expected %s to be valid", id)
		}
	}
	if sources.ID("nalog").IsValid() {
		t.Error("expected foreign ID to be invalid")
	}
}

func TestValidateHierarchy(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		err := sources.ValidateHierarchy([]sources.ID{sources.FSIN, sources.Rosstat})
		if !errors.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate source", func(t *testing.T) {
		err := sources.ValidateHierarchy([]sources.ID{
			sources.FSIN, sources.FSIN, sources.AuditRu,
			sources.ManualConfirmed, sources.ManualUnconfirmed,
		})
		if !errors.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("foreign source", func(t *testing.T) {
		err := sources.ValidateHierarchy([]sources.ID{
			sources.FSIN, sources.Rosstat, sources.AuditRu,
			sources.ManualConfirmed, sources.ID("nalog"),
		})
		if !errors.IsUnknownSource(err) {
			t.Errorf("expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("reordering is allowed", func(t *testing.T) {
		err := sources.ValidateHierarchy([]sources.ID{
			sources.ManualUnconfirmed, sources.ManualConfirmed, sources.AuditRu,
			sources.Rosstat, sources.FSIN,
		})
		if err != nil {
			t.Errorf("reordered permutation should validate, got %v", err)
		}
	})
}

func TestName(t *testing.T) {
	if got := sources.FSIN.Name(); got != "FSIN registry" {
		t.Errorf("Name() = %q", got)
	}
	// Unknown IDs fall back to the raw tag so log output stays useful.
	if got := sources.ID("nalog").Name(); got != "nalog" {
		t.Errorf("Name() fallback = %q", got)
	}
}
