package record

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

type Assignment struct {
	RegistrationID  int          `json:"registration_id" validate:"gt=0"`
	AssignmentNo    int          `json:"assignment_no" validate:"gt=0"`
	StudentName     null.String  `json:"student_name"`
	AssignmentTitle null.String  `json:"assignment_title"`
	AssignedDate    null.String  `json:"assigned_date"`
	DueDate         null.String  `json:"due_date"`
	SubmissionLink  null.String  `json:"submission_link"`
	Status          null.String  `json:"status"`
	Marks           null.Float64 `json:"marks"`
}

func (Assignment) Kind() Kind { return Assignments }

func (a Assignment) Key() []string {
	return []string{strconv.Itoa(a.RegistrationID), strconv.Itoa(a.AssignmentNo)}
}

var AssignmentFields = []Field{
	{Name: "registration_id", Label: "Registration ID", Type: "number", Key: true},
	{Name: "assignment_no", Label: "Assignment No", Type: "number", Key: true},
	{Name: "student_name", Label: "Student Name", Type: "text"},
	{Name: "assignment_title", Label: "Title", Type: "text"},
	{Name: "assigned_date", Label: "Assigned Date", Type: "date"},
	{Name: "due_date", Label: "Due Date", Type: "date"},
	{Name: "submission_link", Label: "Submission Link", Type: "text", Placeholder: "https://"},
	{Name: "status", Label: "Status", Type: "text", Placeholder: "pending"},
	{Name: "marks", Label: "Marks", Type: "number"},
}

type AssignmentForm struct {
	RegistrationID  string `schema:"registration_id" validate:"required,number"`
	AssignmentNo    string `schema:"assignment_no" validate:"required,number"`
	StudentName     string `schema:"student_name"`
	AssignmentTitle string `schema:"assignment_title"`
	AssignedDate    string `schema:"assigned_date"`
	DueDate         string `schema:"due_date"`
	SubmissionLink  string `schema:"submission_link"`
	Status          string `schema:"status"`
	Marks           string `schema:"marks" validate:"omitempty,numeric"`
}

func NewAssignmentForm(a Assignment) AssignmentForm {
	return AssignmentForm{
		RegistrationID:  idString(a.RegistrationID),
		AssignmentNo:    idString(a.AssignmentNo),
		StudentName:     a.StudentName.String,
		AssignmentTitle: a.AssignmentTitle.String,
		AssignedDate:    a.AssignedDate.String,
		DueDate:         a.DueDate.String,
		SubmissionLink:  a.SubmissionLink.String,
		Status:          a.Status.String,
		Marks:           numberString(a.Marks),
	}
}

func (f AssignmentForm) WithKey(key []string) AssignmentForm {
	f.RegistrationID = keyAt(key, 0)
	f.AssignmentNo = keyAt(key, 1)
	return f
}

func (f AssignmentForm) Record() (Assignment, error) {
	var c coercer
	a := Assignment{
		RegistrationID:  c.id("registration_id", f.RegistrationID),
		AssignmentNo:    c.id("assignment_no", f.AssignmentNo),
		StudentName:     text(f.StudentName),
		AssignmentTitle: text(f.AssignmentTitle),
		AssignedDate:    text(f.AssignedDate),
		DueDate:         text(f.DueDate),
		SubmissionLink:  text(f.SubmissionLink),
		Status:          text(f.Status),
		Marks:           c.number("marks", f.Marks),
	}
	return a, c.err()
}
