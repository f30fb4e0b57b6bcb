package web

import (
	"regexp"
	"strings"
	"time"

	"campulse/internal/model"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// LoginForm carries the login fields. Validation runs before any backend
// call; a form with field errors never reaches the network.
type LoginForm struct {
	Email    string
	Password string
}

// Validate returns field-level error messages, empty when the form is clean.
func (f LoginForm) Validate() map[string]string {
	errs := make(map[string]string)
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

// SignupForm carries the account creation fields.
type SignupForm struct {
	FullName        string
	Email           string
	Level           string
	Password        string
	ConfirmPassword string
}

// Validate returns field-level error messages, empty when the form is clean.
func (f SignupForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}

// TaskForm carries the create/edit task fields.
type TaskForm struct {
	Title       string
	Description string
	TaskType    string
	Priority    string
	DueDate     string
}

func validTaskType(t string) bool {
	return t == model.TaskAssignment || t == model.TaskTest || t == model.TaskClass
}

func validPriority(p string) bool {
	return p == model.PriorityLow || p == model.PriorityMedium || p == model.PriorityHigh
}

// Validate returns field-level error messages, empty when the form is clean.
func (f TaskForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if !validTaskType(f.TaskType) {
		errs["task_type"] = "Choose a task type"
	}
	if !validPriority(f.Priority) {
		errs["priority"] = "Choose a priority"
	}
	if f.DueDate != "" {
		if _, err := time.Parse("2006-01-02", f.DueDate); err != nil {
			errs["due_date"] = "Due date must be YYYY-MM-DD"
		}
	}
	return errs
}
