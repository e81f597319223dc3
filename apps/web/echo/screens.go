package echoweb

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/table"
)

var (
	studentColumns = []table.Column[record.Student]{
		{Key: "registration_id", Label: "Reg ID", Value: func(s record.Student) interface{} { return s.RegistrationID }},
		{Key: "name", Label: "Name", Value: func(s record.Student) interface{} { return s.Name }},
		{Key: "email", Label: "Email", Value: func(s record.Student) interface{} { return s.Email }},
		{Key: "contact", Label: "Contact", Value: func(s record.Student) interface{} { return s.Contact }},
		{Key: "degree", Label: "Degree", Value: func(s record.Student) interface{} { return s.Degree }},
		{Key: "specialization", Label: "Specialization", Value: func(s record.Student) interface{} { return s.Specialization }},
		{Key: "batch_id", Label: "Batch ID", Value: func(s record.Student) interface{} { return s.BatchID }},
		{
			Key: "fees", Label: "Fees",
			Value:  func(s record.Student) interface{} { return s.Fees },
			Render: func(s record.Student) interface{} { return money(s.Fees) },
		},
		{
			Key: "fees_paid", Label: "Fees Paid",
			Value:  func(s record.Student) interface{} { return s.FeesPaid },
			Render: func(s record.Student) interface{} { return money(s.FeesPaid) },
		},
		{
			Key: "fees_pending", Label: "Fees Pending",
			Value:  func(s record.Student) interface{} { return s.FeesPending },
			Render: func(s record.Student) interface{} { return money(s.FeesPending) },
		},
		{Key: "placed", Label: "Placed", Value: func(s record.Student) interface{} { return s.Placed }},
		{
			Key: "linkedin", Label: "LinkedIn",
			Value:  func(s record.Student) interface{} { return s.LinkedIn },
			Render: func(s record.Student) interface{} { return link(s.LinkedIn) },
		},
		{
			Key: "github", Label: "GitHub",
			Value:  func(s record.Student) interface{} { return s.GitHub },
			Render: func(s record.Student) interface{} { return link(s.GitHub) },
		},
		{
			Key: "resume", Label: "Resume",
			Value:  func(s record.Student) interface{} { return s.Resume },
			Render: func(s record.Student) interface{} { return link(s.Resume) },
		},
	}

	batchColumns = []table.Column[record.Batch]{
		{Key: "batch_id", Label: "Batch ID", Value: func(b record.Batch) interface{} { return b.BatchID }},
		{Key: "start_date", Label: "Start Date", Value: func(b record.Batch) interface{} { return b.StartDate }},
		{Key: "end_date", Label: "End Date", Value: func(b record.Batch) interface{} { return b.EndDate }},
		{
			Key: "meeting_link", Label: "Meeting Link",
			Value:  func(b record.Batch) interface{} { return b.MeetingLink },
			Render: func(b record.Batch) interface{} { return link(b.MeetingLink) },
		},
		{
			Key: "fees", Label: "Fees",
			Value:  func(b record.Batch) interface{} { return b.Fees },
			Render: func(b record.Batch) interface{} { return money(b.Fees) },
		},
		{Key: "total_students", Label: "Total Students", Value: func(b record.Batch) interface{} { return b.TotalStudents }},
	}

	assignmentColumns = []table.Column[record.Assignment]{
		{Key: "registration_id", Label: "Reg ID", Value: func(a record.Assignment) interface{} { return a.RegistrationID }},
		{Key: "student_name", Label: "Student Name", Value: func(a record.Assignment) interface{} { return a.StudentName }},
		{Key: "assignment_title", Label: "Title", Value: func(a record.Assignment) interface{} { return a.AssignmentTitle }},
		{Key: "assignment_no", Label: "Assignment #", Value: func(a record.Assignment) interface{} { return a.AssignmentNo }},
		{Key: "assigned_date", Label: "Assigned Date", Value: func(a record.Assignment) interface{} { return a.AssignedDate }},
		{Key: "due_date", Label: "Due Date", Value: func(a record.Assignment) interface{} { return a.DueDate }},
		{
			Key: "submission_link", Label: "Submission Link",
			Value:  func(a record.Assignment) interface{} { return a.SubmissionLink },
			Render: func(a record.Assignment) interface{} { return link(a.SubmissionLink) },
		},
		{
			Key: "status", Label: "Status",
			Value:  func(a record.Assignment) interface{} { return a.Status },
			Render: assignmentStatus,
		},
		{Key: "marks", Label: "Marks", Value: func(a record.Assignment) interface{} { return a.Marks }},
	}

	contestColumns = []table.Column[record.Contest]{
		{Key: "contest_id", Label: "Contest ID", Value: func(c record.Contest) interface{} { return c.ContestID }},
		{Key: "registration_id", Label: "Reg ID", Value: func(c record.Contest) interface{} { return c.RegistrationID }},
		{Key: "batch_id", Label: "Batch ID", Value: func(c record.Contest) interface{} { return c.BatchID }},
		{Key: "contest_name", Label: "Contest Name", Value: func(c record.Contest) interface{} { return c.ContestName }},
		{Key: "date", Label: "Date", Value: func(c record.Contest) interface{} { return c.Date }},
		{Key: "score", Label: "Score", Value: func(c record.Contest) interface{} { return c.Score }},
		{
			Key: "rank", Label: "Rank",
			Value:  func(c record.Contest) interface{} { return c.Rank },
			Render: func(c record.Contest) interface{} { return rank(c.Rank) },
		},
		{Key: "remark", Label: "Remark", Value: func(c record.Contest) interface{} { return c.Remark }},
	}

	mockColumns = []table.Column[record.Mock]{
		{Key: "mock_id", Label: "Mock ID", Value: func(m record.Mock) interface{} { return m.MockID }},
		{Key: "registration_id", Label: "Reg ID", Value: func(m record.Mock) interface{} { return m.RegistrationID }},
		{Key: "batch_id", Label: "Batch ID", Value: func(m record.Mock) interface{} { return m.BatchID }},
		{Key: "interviewer", Label: "Interviewer", Value: func(m record.Mock) interface{} { return m.Interviewer }},
		{Key: "score", Label: "Score", Value: func(m record.Mock) interface{} { return m.Score }},
		{Key: "feedback", Label: "Feedback", Value: func(m record.Mock) interface{} { return m.Feedback }},
		{
			Key: "status", Label: "Status",
			Value:  func(m record.Mock) interface{} { return m.Status },
			Render: mockStatus,
		},
	}
)

func assignmentStatus(a record.Assignment) interface{} {
	switch a.Status.String {
	case "completed", "graded":
		return badge(a.Status.String, "success")
	case "":
		return badge("pending", "warning")
	}
	return badge(a.Status.String, "warning")
}

func mockStatus(m record.Mock) interface{} {
	switch s := m.Outcome(); s {
	case record.MockPass:
		return badge(s, "success")
	case record.MockFail:
		return badge(s, "destructive")
	default:
		return badge(s, "warning")
	}
}

func (s *Server) registerScreens(g *echo.Group) {
	pageSize := s.conf.Table.PageSize
	if pageSize <= 0 {
		pageSize = table.DefaultPageSize
	}

	(&screen[record.Student, record.StudentForm]{
		slug: "students", title: "Students", heading: "Student", kind: record.Students,
		repo: s.store.Students(), columns: studentColumns, fields: record.StudentFields,
		formOf: record.NewStudentForm, pageSize: pageSize,
		validate: s.validate, translator: s.translator, log: s.log,
	}).register(g)

	(&screen[record.Batch, record.BatchForm]{
		slug: "batches", title: "Batches", heading: "Batch", kind: record.Batches,
		repo: s.store.Batches(), columns: batchColumns, fields: record.BatchFields,
		formOf: record.NewBatchForm, pageSize: pageSize,
		validate: s.validate, translator: s.translator, log: s.log,
	}).register(g)

	(&screen[record.Assignment, record.AssignmentForm]{
		slug: "assignments", title: "Assignments", heading: "Assignment", kind: record.Assignments,
		repo: s.store.Assignments(), columns: assignmentColumns, fields: record.AssignmentFields,
		formOf: record.NewAssignmentForm, pageSize: pageSize,
		validate: s.validate, translator: s.translator, log: s.log,
	}).register(g)

	(&screen[record.Mock, record.MockForm]{
		slug: "mock-interviews", title: "Mock Interviews", heading: "Mock Interview", kind: record.Mocks,
		repo: s.store.Mocks(), columns: mockColumns, fields: record.MockFields,
		formOf: record.NewMockForm, pageSize: pageSize,
		validate: s.validate, translator: s.translator, log: s.log,
	}).register(g)

	(&screen[record.Contest, record.ContestForm]{
		slug: "coding-contests", title: "Coding Contests", heading: "Contest Entry", kind: record.Contests,
		repo: s.store.Contests(), columns: contestColumns, fields: record.ContestFields,
		formOf: record.NewContestForm, pageSize: pageSize,
		validate: s.validate, translator: s.translator, log: s.log,
	}).register(g)
}
