package echoweb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/spms/core/placement"
	"github.com/trezcool/spms/storage/recordstore"
)

type placementView struct {
	RegID     string
	Error     string
	Status    *placement.Status
	Ready     bool
	StudentID string
}

func (s *Server) placement(ctx echo.Context) error {
	regID := strings.TrimSpace(ctx.QueryParam("reg_id"))
	view := placementView{RegID: regID}
	if regID == "" {
		return render(ctx, http.StatusOK, "placement", "Placement Readiness", view)
	}

	id, err := strconv.Atoi(regID)
	if err != nil {
		view.Error = "Registration ID must be a number"
		return render(ctx, http.StatusBadRequest, "placement", "Placement Readiness", view)
	}

	st, err := s.store.Placement(requestContext(ctx), id)
	if err != nil {
		s.log.Warn("fetching placement status", err, getSession(ctx).Profile)
		flashNow(ctx, errorFlash(recordstore.Detail(err, "Failed to fetch placement status")))
		return render(ctx, http.StatusOK, "placement", "Placement Readiness", view)
	}

	view.Status = st
	view.Ready = st.Ready()
	view.StudentID = st.RegistrationID(regID)
	return render(ctx, http.StatusOK, "placement", "Placement Readiness", view)
}
