package record

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

type Contest struct {
	ContestID      string       `json:"contest_id" validate:"required,keyseg"`
	RegistrationID int          `json:"registration_id" validate:"gt=0"`
	BatchID        null.String  `json:"batch_id"`
	ContestName    null.String  `json:"contest_name"`
	Date           null.String  `json:"date"`
	Score          null.Float64 `json:"score"`
	Rank           null.Int     `json:"rank"`
	Remark         null.String  `json:"remark"`
}

func (Contest) Kind() Kind { return Contests }

func (c Contest) Key() []string {
	return []string{c.ContestID, strconv.Itoa(c.RegistrationID)}
}

var ContestFields = []Field{
	{Name: "contest_id", Label: "Contest ID", Type: "text", Key: true},
	{Name: "registration_id", Label: "Registration ID", Type: "number", Key: true},
	{Name: "batch_id", Label: "Batch ID", Type: "text"},
	{Name: "contest_name", Label: "Contest Name", Type: "text"},
	{Name: "date", Label: "Date", Type: "date"},
	{Name: "score", Label: "Score", Type: "number"},
	{Name: "rank", Label: "Rank", Type: "number"},
	{Name: "remark", Label: "Remark", Type: "text"},
}

type ContestForm struct {
	ContestID      string `schema:"contest_id" validate:"required,keyseg"`
	RegistrationID string `schema:"registration_id" validate:"required,number"`
	BatchID        string `schema:"batch_id"`
	ContestName    string `schema:"contest_name"`
	Date           string `schema:"date"`
	Score          string `schema:"score" validate:"omitempty,numeric"`
	Rank           string `schema:"rank" validate:"omitempty,number"`
	Remark         string `schema:"remark"`
}

func NewContestForm(c Contest) ContestForm {
	return ContestForm{
		ContestID:      c.ContestID,
		RegistrationID: idString(c.RegistrationID),
		BatchID:        c.BatchID.String,
		ContestName:    c.ContestName.String,
		Date:           c.Date.String,
		Score:          numberString(c.Score),
		Rank:           intString(c.Rank),
		Remark:         c.Remark.String,
	}
}

func (f ContestForm) WithKey(key []string) ContestForm {
	f.ContestID = keyAt(key, 0)
	f.RegistrationID = keyAt(key, 1)
	return f
}

func (f ContestForm) Record() (Contest, error) {
	var c coercer
	rec := Contest{
		ContestID:      c.key("contest_id", f.ContestID),
		RegistrationID: c.id("registration_id", f.RegistrationID),
		BatchID:        text(f.BatchID),
		ContestName:    text(f.ContestName),
		Date:           text(f.Date),
		Score:          c.number("score", f.Score),
		Rank:           c.integer("rank", f.Rank),
		Remark:         text(f.Remark),
	}
	return rec, c.err()
}
