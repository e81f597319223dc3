package echoweb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/table"
)

const (
	dashboardAssignments = 10
	dashboardContests    = 8
	dashboardStudents    = 5
)

type (
	statView struct {
		Title string
		Value string
	}

	pointView struct {
		Label string
		Value string
	}

	studentView struct {
		Initial string
		Name    string
		ID      int
	}

	dashboardView struct {
		Stats            []statView
		AssignmentScores []pointView
		ContestScores    []pointView
		MockResults      []pointView
		RecentStudents   []studentView
	}
)

// dashboard fetches four resources concurrently; a failing resource is shown as empty
// without affecting the others.
func (s *Server) dashboard(ctx echo.Context) error {
	rctx := requestContext(ctx)

	var (
		students    []record.Student
		assignments []record.Assignment
		contests    []record.Contest
		mocks       []record.Mock
		errs        [4]error
		g           errgroup.Group
	)
	g.Go(func() error {
		students, errs[0] = s.store.Students().List(rctx)
		return nil
	})
	g.Go(func() error {
		assignments, errs[1] = s.store.Assignments().List(rctx)
		return nil
	})
	g.Go(func() error {
		contests, errs[2] = s.store.Contests().List(rctx)
		return nil
	})
	g.Go(func() error {
		mocks, errs[3] = s.store.Mocks().List(rctx)
		return nil
	})
	_ = g.Wait()

	for i, kind := range []record.Kind{record.Students, record.Assignments, record.Contests, record.Mocks} {
		if errs[i] != nil {
			s.log.Warn("dashboard: listing "+string(kind), errs[i], getSession(ctx).Profile)
			flashNow(ctx, errorFlash("Failed to load "+kind.Plural()))
		}
	}

	return render(ctx, http.StatusOK, "dashboard", "Dashboard", newDashboardView(students, assignments, contests, mocks))
}

func newDashboardView(
	students []record.Student,
	assignments []record.Assignment,
	contests []record.Contest,
	mocks []record.Mock,
) dashboardView {
	v := dashboardView{
		Stats: []statView{
			{Title: "Total Students", Value: humanize.Comma(int64(len(students)))},
			{Title: "Assignments", Value: humanize.Comma(int64(len(assignments)))},
			{Title: "Contests", Value: humanize.Comma(int64(len(contests)))},
			{Title: "Mock Interviews", Value: humanize.Comma(int64(len(mocks)))},
		},
	}

	for i, a := range assignments {
		if i == dashboardAssignments {
			break
		}
		no := a.AssignmentNo
		if no == 0 {
			no = i + 1
		}
		v.AssignmentScores = append(v.AssignmentScores, pointView{
			Label: "A" + strconv.Itoa(no),
			Value: orMissing(a.Marks),
		})
	}

	for i, c := range contests {
		if i == dashboardContests {
			break
		}
		label := c.ContestID
		if label == "" {
			label = "C" + strconv.Itoa(i+1)
		}
		v.ContestScores = append(v.ContestScores, pointView{Label: label, Value: orMissing(c.Score)})
	}

	var passed, failed, pending int
	for _, m := range mocks {
		switch m.Outcome() {
		case record.MockPass:
			passed++
		case record.MockFail:
			failed++
		case record.MockPending:
			pending++
		}
	}
	v.MockResults = []pointView{
		{Label: "Passed", Value: strconv.Itoa(passed)},
		{Label: "Failed", Value: strconv.Itoa(failed)},
		{Label: "Pending", Value: strconv.Itoa(pending)},
	}

	for i, st := range students {
		if i == dashboardStudents {
			break
		}
		initial := "S"
		if r := []rune(st.Name.String); len(r) > 0 {
			initial = strings.ToUpper(string(r[0]))
		}
		v.RecentStudents = append(v.RecentStudents, studentView{
			Initial: initial,
			Name:    st.DisplayName(),
			ID:      st.RegistrationID,
		})
	}
	return v
}

func orMissing(v interface{}) string {
	if v = table.Normalize(v); v == nil {
		return missing
	}
	return table.String(v)
}
