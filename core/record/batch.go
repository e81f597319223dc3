package record

import "github.com/volatiletech/null/v8"

type Batch struct {
	BatchID       string       `json:"batch_id" validate:"required,keyseg"`
	StartDate     null.String  `json:"start_date"`
	EndDate       null.String  `json:"end_date"`
	MeetingLink   null.String  `json:"meeting_link"`
	Fees          null.Float64 `json:"fees"`
	TotalStudents null.Int     `json:"total_students"`
}

func (Batch) Kind() Kind { return Batches }

func (b Batch) Key() []string { return []string{b.BatchID} }

var BatchFields = []Field{
	{Name: "batch_id", Label: "Batch ID", Type: "text", Key: true},
	{Name: "start_date", Label: "Start Date", Type: "date"},
	{Name: "end_date", Label: "End Date", Type: "date"},
	{Name: "meeting_link", Label: "Meeting Link", Type: "text", Placeholder: "https://"},
	{Name: "fees", Label: "Fees", Type: "number"},
	{Name: "total_students", Label: "Total Students", Type: "number"},
}

type BatchForm struct {
	BatchID       string `schema:"batch_id" validate:"required,keyseg"`
	StartDate     string `schema:"start_date"`
	EndDate       string `schema:"end_date"`
	MeetingLink   string `schema:"meeting_link"`
	Fees          string `schema:"fees" validate:"omitempty,numeric"`
	TotalStudents string `schema:"total_students" validate:"omitempty,number"`
}

func NewBatchForm(b Batch) BatchForm {
	return BatchForm{
		BatchID:       b.BatchID,
		StartDate:     b.StartDate.String,
		EndDate:       b.EndDate.String,
		MeetingLink:   b.MeetingLink.String,
		Fees:          numberString(b.Fees),
		TotalStudents: intString(b.TotalStudents),
	}
}

func (f BatchForm) WithKey(key []string) BatchForm {
	f.BatchID = keyAt(key, 0)
	return f
}

func (f BatchForm) Record() (Batch, error) {
	var c coercer
	b := Batch{
		BatchID:       c.key("batch_id", f.BatchID),
		StartDate:     text(f.StartDate),
		EndDate:       text(f.EndDate),
		MeetingLink:   text(f.MeetingLink),
		Fees:          c.number("fees", f.Fees),
		TotalStudents: c.integer("total_students", f.TotalStudents),
	}
	return b, c.err()
}
