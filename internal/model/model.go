package model

// User is the profile returned by the backend after login, signup, or a
// current-user lookup. The client only displays it; the backend owns it.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Level    string `json:"level"`
}

// Task types understood by the planner.
const (
	TaskAssignment = "assignment"
	TaskTest       = "test"
	TaskClass      = "class"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a planner item. Dates travel as plain YYYY-MM-DD strings because
// the client never does date arithmetic on them.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TaskType    string `json:"task_type"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	IsDone      bool   `json:"is_done"`
}

// DueDateLabel returns the due date or a placeholder for tasks without one.
func (t Task) DueDateLabel() string {
	if t.DueDate == "" {
		return "No due date"
	}
	return t.DueDate
}

// Opportunity categories.
const (
	CategoryGig         = "gig"
	CategoryScholarship = "scholarship"
	CategoryDeal        = "deal"
)

// Opportunity is a gig, scholarship, or deal listed on the opportunities page.
type Opportunity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Deadline    string `json:"deadline,omitempty"`
	Link        string `json:"link,omitempty"`
}

// DeadlineLabel returns the deadline or a placeholder when there is none.
func (o Opportunity) DeadlineLabel() string {
	if o.Deadline == "" {
		return "No deadline"
	}
	return o.Deadline
}

// Tutor is a peer tutor listed in the directory.
type Tutor struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Courses    []string `json:"courses"`
	Rating     *float64 `json:"rating,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Experience string   `json:"experience,omitempty"`
	WhatsApp   string   `json:"whatsapp"`
}
