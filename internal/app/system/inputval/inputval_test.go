package inputval

import "testing"

type sample struct {
	Username string `validate:"required,min=3,max=8" label:"Username"`
	Role     int    `validate:"oneof=2 3 4" label:"User type"`
	Note     string `validate:"omitempty,printascii"`
}

func TestValidate_OK(t *testing.T) {
	r := Validate(sample{Username: "ravi", Role: 3})
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %+v", r.Errors)
	}
	if r.First() != "" {
		t.Errorf("First: got %q", r.First())
	}
}

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{"required", sample{Role: 2}, "Username is required."},
		{"min", sample{Username: "ab", Role: 2}, "Username must be at least 3 characters."},
		{"max", sample{Username: "abcdefghij", Role: 2}, "Username must be at most 8 characters."},
		{"oneof", sample{Username: "ravi", Role: 9}, "User type must be one of: 2, 3, 4."},
		{"no label", sample{Username: "ravi", Role: 2, Note: "naïve"}, "Note contains characters that are not allowed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.in)
			if !r.HasErrors() {
				t.Fatal("expected errors")
			}
			if got := r.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate_CollectsEveryField(t *testing.T) {
	r := Validate(sample{Role: 0})
	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %+v", r.Errors)
	}
	if r.Errors[0].Field != "Username" || r.Errors[1].Field != "User type" {
		t.Errorf("unexpected fields %+v", r.Errors)
	}
}
