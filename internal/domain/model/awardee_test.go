package model

import (
	"strings"
	"testing"
)

func validCreateAwardee() CreateAwardeeRequest {
	return CreateAwardeeRequest{
		Slug:       "jane-doe",
		FullName:   "Jane Doe",
		CohortYear: 2024,
		Category:   AwardeeCategoryLeadership,
		Citation:   "For outstanding community leadership.",
	}
}

func TestCreateAwardeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateAwardeeRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*CreateAwardeeRequest) {}},
		{
			name:    "slug normalized",
			mutate:  func(r *CreateAwardeeRequest) { r.Slug = "  Jane-Doe  " },
			wantErr: "", // mixed case is lowered before the shape check
		},
		{
			name:    "bad slug",
			mutate:  func(r *CreateAwardeeRequest) { r.Slug = "jane doe!" },
			wantErr: "slug",
		},
		{
			name:    "missing name",
			mutate:  func(r *CreateAwardeeRequest) { r.FullName = "   " },
			wantErr: "full_name",
		},
		{
			name:    "name too long",
			mutate:  func(r *CreateAwardeeRequest) { r.FullName = strings.Repeat("x", 256) },
			wantErr: "full_name",
		},
		{
			name:    "cohort year too early",
			mutate:  func(r *CreateAwardeeRequest) { r.CohortYear = 1979 },
			wantErr: "cohort_year",
		},
		{
			name:    "unknown category",
			mutate:  func(r *CreateAwardeeRequest) { r.Category = "athletics" },
			wantErr: "category",
		},
		{
			name:    "missing citation",
			mutate:  func(r *CreateAwardeeRequest) { r.Citation = "" },
			wantErr: "citation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateAwardee()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateAwardeeRequest_CategoryNormalized(t *testing.T) {
	req := validCreateAwardee()
	req.Category = " Innovation "
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if req.Category != AwardeeCategoryInnovation {
		t.Fatalf("category = %q, want innovation", req.Category)
	}
}

func TestUpdateAwardeeRequest_RequiresChanges(t *testing.T) {
	var req UpdateAwardeeRequest
	if err := req.Validate(); err == nil {
		t.Fatalf("empty update must fail validation")
	}

	name := "New Name"
	req.FullName = &name
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
