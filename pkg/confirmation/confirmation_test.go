package confirmation_test

import (
	"testing"

	"github.com/agentstation/factmap/pkg/confirmation"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/sources"
)

func TestMapIsTotal(t *testing.T) {
	// Every source in the hierarchy must have a status; the canonical map
	// must pass its own validation.
	if err := confirmation.ValidateMap(confirmation.Map()); err != nil {
		t.Fatalf("canonical map failed validation: %v", err)
	}

	for _, id := range sources.IDs() {
		status, err := confirmation.Of(id)
		if err != nil {
			t.Errorf("Of(%s) error: %v", id, err)
			continue
		}
		if !status.IsValid() {
			t.Errorf("Of(%s) = %q, not a defined status", id, status)
		}
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		src  sources.ID
		want confirmation.Status
	}{
		{sources.FSIN, confirmation.Confirmed},
		{sources.Rosstat, confirmation.Confirmed},
		{sources.AuditRu, confirmation.Confirmed},
		{sources.ManualConfirmed, confirmation.ManualConfirmed},
		{sources.ManualUnconfirmed, confirmation.ManualUnconfirmed},
	}

	for _, tt := range tests {
		t.Run(string(tt.src), func(t *testing.T) {
			got, err := confirmation.Of(tt.src)
			if err != nil {
				t.Fatalf("Of(%s) error: %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("Of(%s) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestOfUnmappedSource(t *testing.T) {
	_, err := confirmation.Of(sources.ID("egrul"))
	if !errors.IsUnmappedSource(err) {
		t.Errorf("expected ErrUnmappedSource, got %v", err)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		status confirmation.Status
		want   int
	}{
		{confirmation.Confirmed, 0},
		{confirmation.ManualConfirmed, 1},
		{confirmation.ManualUnconfirmed, 2},
	}

	for _, tt := range tests {
		got, err := confirmation.Rank(tt.status)
		if err != nil {
			t.Fatalf("Rank(%s) error: %v", tt.status, err)
		}
		if got != tt.want {
			t.Errorf("Rank(%s) = %d, want %d", tt.status, got, tt.want)
		}
	}

	if _, err := confirmation.Rank(confirmation.Status("pending")); !errors.IsValidationError(err) {
		t.Errorf("expected validation error for undefined status, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b confirmation.Status
		want int
	}{
		{"confirmed beats manual confirmed", confirmation.Confirmed, confirmation.ManualConfirmed, -1},
		{"manual confirmed beats unconfirmed", confirmation.ManualConfirmed, confirmation.ManualUnconfirmed, -1},
		{"reversed", confirmation.ManualUnconfirmed, confirmation.Confirmed, 1},
		{"equal", confirmation.Confirmed, confirmation.Confirmed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := confirmation.Compare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Compare(%s, %s) error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValidateMap(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		m := confirmation.Map()
		delete(m, sources.Rosstat)
		if err := confirmation.ValidateMap(m); !errors.IsUnmappedSource(err) {
			t.Errorf("expected ErrUnmappedSource, got %v", err)
		}
	})

	t.Run("foreign source", func(t *testing.T) {
		m := confirmation.Map()
		m[sources.ID("egrul")] = confirmation.Confirmed
		if err := confirmation.ValidateMap(m); !errors.IsUnknownSource(err) {
			t.Errorf("expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("undefined status", func(t *testing.T) {
		m := confirmation.Map()
		m[sources.FSIN] = confirmation.Status("pending")
		if err := confirmation.ValidateMap(m); !errors.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestMapReturnsCopy(t *testing.T) {
	m := confirmation.Map()
	m[sources.FSIN] = confirmation.ManualUnconfirmed

	got, err := confirmation.Of(sources.FSIN)
	if err != nil {
		t.Fatalf("Of error: %v", err)
	}
	if got != confirmation.Confirmed {
		t.Error("mutating the copy returned by Map() must not affect the canonical mapping")
	}
}
