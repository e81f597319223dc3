package record

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

// Mock interview outcomes.
const (
	MockPass    = "pass"
	MockFail    = "fail"
	MockPending = "pending"
)

type Mock struct {
	MockID         string       `json:"mock_id" validate:"required,keyseg"`
	RegistrationID int          `json:"registration_id" validate:"gt=0"`
	BatchID        null.String  `json:"batch_id"`
	Interviewer    null.String  `json:"interviewer"`
	Score          null.Float64 `json:"score"`
	Feedback       null.String  `json:"feedback"`
	Status         null.String  `json:"status"`
	// Result is an older outcome field some records still carry. It is read-only here and
	// omitted on writes so an update never clears it.
	Result         *string      `json:"result,omitempty"`
}

func (Mock) Kind() Kind { return Mocks }

func (m Mock) Key() []string {
	return []string{m.MockID, strconv.Itoa(m.RegistrationID)}
}

// Outcome is the raw status, else the raw result, else "pending".
func (m Mock) Outcome() string {
	if m.Status.String != "" {
		return m.Status.String
	}
	if m.Result != nil && *m.Result != "" {
		return *m.Result
	}
	return MockPending
}

var MockFields = []Field{
	{Name: "mock_id", Label: "Mock ID", Type: "text", Key: true},
	{Name: "registration_id", Label: "Registration ID", Type: "number", Key: true},
	{Name: "batch_id", Label: "Batch ID", Type: "text"},
	{Name: "interviewer", Label: "Interviewer", Type: "text"},
	{Name: "score", Label: "Score", Type: "number"},
	{Name: "feedback", Label: "Feedback", Type: "text"},
	{Name: "status", Label: "Status", Type: "text", Placeholder: "pass / fail / pending"},
}

type MockForm struct {
	MockID         string `schema:"mock_id" validate:"required,keyseg"`
	RegistrationID string `schema:"registration_id" validate:"required,number"`
	BatchID        string `schema:"batch_id"`
	Interviewer    string `schema:"interviewer"`
	Score          string `schema:"score" validate:"omitempty,numeric"`
	Feedback       string `schema:"feedback"`
	Status         string `schema:"status"`
}

func NewMockForm(m Mock) MockForm {
	return MockForm{
		MockID:         m.MockID,
		RegistrationID: idString(m.RegistrationID),
		BatchID:        m.BatchID.String,
		Interviewer:    m.Interviewer.String,
		Score:          numberString(m.Score),
		Feedback:       m.Feedback.String,
		Status:         m.Status.String,
	}
}

func (f MockForm) WithKey(key []string) MockForm {
	f.MockID = keyAt(key, 0)
	f.RegistrationID = keyAt(key, 1)
	return f
}

func (f MockForm) Record() (Mock, error) {
	var c coercer
	m := Mock{
		MockID:         c.key("mock_id", f.MockID),
		RegistrationID: c.id("registration_id", f.RegistrationID),
		BatchID:        text(f.BatchID),
		Interviewer:    text(f.Interviewer),
		Score:          c.number("score", f.Score),
		Feedback:       text(f.Feedback),
		Status:         text(f.Status),
	}
	return m, c.err()
}
