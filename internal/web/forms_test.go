package web

import "testing"

func TestLoginFormValidation(t *testing.T) {
	cases := []struct {
		name      string
		form      LoginForm
		wantField string
	}{
		{"missing email", LoginForm{Password: "secret99"}, "email"},
		{"bad email", LoginForm{Email: "not-an-email", Password: "secret99"}, "email"},
		{"missing password", LoginForm{Email: "a@b.com"}, "password"},
		{"short password", LoginForm{Email: "a@b.com", Password: "short"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if errs[tc.wantField] == "" {
				t.Fatalf("expected error on %s, got %v", tc.wantField, errs)
			}
		})
	}

	if errs := (LoginForm{Email: "a@b.com", Password: "secret99"}).Validate(); len(errs) != 0 {
		t.Fatalf("expected clean form, got %v", errs)
	}
}

func TestSignupFormValidation(t *testing.T) {
	base := SignupForm{
		FullName:        "Ada Obi",
		Email:           "ada@example.com",
		Level:           "300",
		Password:        "secret99",
		ConfirmPassword: "secret99",
	}
	if errs := base.Validate(); len(errs) != 0 {
		t.Fatalf("expected clean form, got %v", errs)
	}

	mismatch := base
	mismatch.ConfirmPassword = "different"
	if errs := mismatch.Validate(); errs["confirm_password"] == "" {
		t.Fatal("expected mismatch error")
	}

	noName := base
	noName.FullName = "   "
	if errs := noName.Validate(); errs["full_name"] == "" {
		t.Fatal("expected full name error")
	}
}

func TestTaskFormValidation(t *testing.T) {
	form := TaskForm{Title: "Finish lab", TaskType: "assignment", Priority: "high"}
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected clean form, got %v", errs)
	}

	form.DueDate = "31/12/2026"
	if errs := form.Validate(); errs["due_date"] == "" {
		t.Fatal("expected due date format error")
	}
	form.DueDate = "2026-12-31"
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid due date, got %v", errs)
	}

	bad := TaskForm{Title: "x", TaskType: "homework", Priority: "urgent"}
	errs := bad.Validate()
	if errs["task_type"] == "" || errs["priority"] == "" {
		t.Fatalf("expected enum errors, got %v", errs)
	}
}
