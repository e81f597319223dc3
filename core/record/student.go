package record

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

type Student struct {
	RegistrationID int          `json:"registration_id" validate:"gt=0"`
	Name           null.String  `json:"name"`
	Email          null.String  `json:"email"`
	Contact        null.String  `json:"contact"`
	Degree         null.String  `json:"degree"`
	Specialization null.String  `json:"specialization"`
	BatchID        null.String  `json:"batch_id"`
	Fees           null.Float64 `json:"fees"`
	FeesPaid       null.Float64 `json:"fees_paid"`
	FeesPending    null.Float64 `json:"fees_pending"`
	Placed         Scalar       `json:"placed"`
	LinkedIn       null.String  `json:"linkedin"`
	GitHub         null.String  `json:"github"`
	Resume         null.String  `json:"resume"`
}

func (Student) Kind() Kind { return Students }

func (s Student) Key() []string { return []string{strconv.Itoa(s.RegistrationID)} }

// DisplayName is the student's name, or "Student <id>" when unnamed.
func (s Student) DisplayName() string {
	if s.Name.String != "" {
		return s.Name.String
	}
	return "Student " + strconv.Itoa(s.RegistrationID)
}

var StudentFields = []Field{
	{Name: "registration_id", Label: "Registration ID", Type: "number", Key: true},
	{Name: "name", Label: "Name", Type: "text"},
	{Name: "email", Label: "Email", Type: "email"},
	{Name: "contact", Label: "Contact", Type: "text"},
	{Name: "degree", Label: "Degree", Type: "text"},
	{Name: "specialization", Label: "Specialization", Type: "text"},
	{Name: "batch_id", Label: "Batch ID", Type: "text"},
	{Name: "fees", Label: "Fees", Type: "number"},
	{Name: "fees_paid", Label: "Fees Paid", Type: "number"},
	{Name: "fees_pending", Label: "Fees Pending", Type: "number"},
	{Name: "placed", Label: "Placed", Type: "text"},
	{Name: "linkedin", Label: "LinkedIn", Type: "text", Placeholder: "https://"},
	{Name: "github", Label: "GitHub", Type: "text", Placeholder: "https://"},
	{Name: "resume", Label: "Resume", Type: "text", Placeholder: "https://"},
}

type StudentForm struct {
	RegistrationID string `schema:"registration_id" validate:"required,number"`
	Name           string `schema:"name"`
	Email          string `schema:"email"`
	Contact        string `schema:"contact"`
	Degree         string `schema:"degree"`
	Specialization string `schema:"specialization"`
	BatchID        string `schema:"batch_id"`
	Fees           string `schema:"fees" validate:"omitempty,numeric"`
	FeesPaid       string `schema:"fees_paid" validate:"omitempty,numeric"`
	FeesPending    string `schema:"fees_pending" validate:"omitempty,numeric"`
	Placed         string `schema:"placed"`
	LinkedIn       string `schema:"linkedin"`
	GitHub         string `schema:"github"`
	Resume         string `schema:"resume"`
}

func NewStudentForm(s Student) StudentForm {
	return StudentForm{
		RegistrationID: idString(s.RegistrationID),
		Name:           s.Name.String,
		Email:          s.Email.String,
		Contact:        s.Contact.String,
		Degree:         s.Degree.String,
		Specialization: s.Specialization.String,
		BatchID:        s.BatchID.String,
		Fees:           numberString(s.Fees),
		FeesPaid:       numberString(s.FeesPaid),
		FeesPending:    numberString(s.FeesPending),
		Placed:         s.Placed.String(),
		LinkedIn:       s.LinkedIn.String,
		GitHub:         s.GitHub.String,
		Resume:         s.Resume.String,
	}
}

func (f StudentForm) WithKey(key []string) StudentForm {
	f.RegistrationID = keyAt(key, 0)
	return f
}

func (f StudentForm) Record() (Student, error) {
	var c coercer
	s := Student{
		RegistrationID: c.id("registration_id", f.RegistrationID),
		Name:           text(f.Name),
		Email:          text(f.Email),
		Contact:        text(f.Contact),
		Degree:         text(f.Degree),
		Specialization: text(f.Specialization),
		BatchID:        text(f.BatchID),
		Fees:           c.number("fees", f.Fees),
		FeesPaid:       c.number("fees_paid", f.FeesPaid),
		FeesPending:    c.number("fees_pending", f.FeesPending),
		Placed:         scalarText(f.Placed),
		LinkedIn:       text(f.LinkedIn),
		GitHub:         text(f.GitHub),
		Resume:         text(f.Resume),
	}
	return s, c.err()
}
