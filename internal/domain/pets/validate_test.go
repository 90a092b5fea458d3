package pets

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidateRequest_Create(t *testing.T) {
	valid := func() createPetRequest {
		return createPetRequest{
			Name:   "Rex",
			Age:    intPtr(3),
			Weight: floatPtr(12.5),
			Group:  &groupPayload{ScientificName: "Canis lupus"},
			Traits: []traitPayload{{Name: "Loyal"}},
		}
	}

	if err := validateRequest(valid()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*createPetRequest)
		want   map[string][]string
	}{
		{
			name:   "missing required",
			mutate: func(r *createPetRequest) { r.Name = ""; r.Age = nil; r.Group = nil },
			want: map[string][]string{
				"name":  {"This field is required."},
				"age":   {"This field is required."},
				"group": {"This field is required."},
			},
		},
		{
			name:   "group name too long",
			mutate: func(r *createPetRequest) { r.Group.ScientificName = strings.Repeat("a", 51) },
			want:   map[string][]string{"group.scientific_name": {"Ensure this field has no more than 50 characters."}},
		},
		{
			name:   "trait name too long",
			mutate: func(r *createPetRequest) { r.Traits = []traitPayload{{Name: "ok"}, {Name: strings.Repeat("x", 21)}} },
			want:   map[string][]string{"traits[1].name": {"Ensure this field has no more than 20 characters."}},
		},
		{
			name:   "negative weight",
			mutate: func(r *createPetRequest) { r.Weight = floatPtr(-1) },
			want:   map[string][]string{"weight": {"Ensure this value is greater than or equal to 0."}},
		},
		{
			name:   "invalid sex",
			mutate: func(r *createPetRequest) { r.Sex = "Unknown" },
			want:   map[string][]string{"sex": {`"Unknown" is not a valid choice.`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validateRequest(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ValidationError should match ErrInvalidInput")
			}
			if diff := cmp.Diff(tt.want, verr.Fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateRequest_UpdateAllowsOmittedFields(t *testing.T) {
	if err := validateRequest(updatePetRequest{}); err != nil {
		t.Fatalf("empty patch should be valid, got %v", err)
	}

	empty := []traitPayload{}
	if err := validateRequest(updatePetRequest{Traits: &empty}); err != nil {
		t.Fatalf("empty traits list should be valid, got %v", err)
	}

	blank := ""
	err := validateRequest(updatePetRequest{Name: &blank})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"name": {"This field may not be blank."}}, verr.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
