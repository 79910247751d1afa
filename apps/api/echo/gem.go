package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/gem"
	metricsvc "github.com/ttgamma/gemportal/services/metrics"
)

type gemApi struct {
	svc *gem.Service
}

func registerGemAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *gem.Service) {
	api := gemApi{svc: svc}

	gg := g.Group("/gem", jwt)
	gg.GET("/status", api.status)
	gg.PATCH("/status", api.updateGrade, privilegedMiddleware())
	gg.GET("/grade", api.grade)
	gg.POST("/remind", api.remind, privilegedMiddleware())
}

// Handlers

func (api *gemApi) status(ctx echo.Context) error {
	viewer, err := getContextViewer(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context viewer")
	}

	var query standingQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to standingQuery")
	}
	filter, err := query.filter()
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metricsvc.ReportDuration)
	rep, err := api.svc.Report(ctx.Request().Context(), viewer, filter)
	timer.ObserveDuration()
	if err != nil {
		return errors.Wrap(err, "computing standing report")
	}
	metricsvc.ReportsComputed.Inc()

	return ctx.JSON(http.StatusOK, rep)
}

func (api *gemApi) updateGrade(ctx echo.Context) error {
	viewer, err := getContextViewer(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context viewer")
	}

	var data gem.GradeUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeUpdate")
	}

	rec, err := api.svc.SetGrade(ctx.Request().Context(), viewer, data)
	if err != nil {
		return errors.Wrap(err, "setting grade")
	}
	metricsvc.GradeUpserts.Inc()

	return ctx.JSON(http.StatusOK, rec)
}

func (api *gemApi) grade(ctx echo.Context) error {
	viewer, err := getContextViewer(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context viewer")
	}

	rec, err := api.svc.Grade(ctx.Request().Context(), viewer, ctx.QueryParam("member_id"), ctx.QueryParam("semester"))
	if err != nil {
		return errors.Wrap(err, "getting grade")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *gemApi) remind(ctx echo.Context) error {
	viewer, err := getContextViewer(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context viewer")
	}

	var query standingQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to standingQuery")
	}
	filter, err := query.filter()
	if err != nil {
		return err
	}

	sent, err := api.svc.RemindIncomplete(ctx.Request().Context(), viewer, filter)
	if err != nil {
		return errors.Wrap(err, "sending reminders")
	}
	metricsvc.RemindersSent.Add(float64(sent))

	return ctx.JSON(http.StatusOK, RemindResponse{Sent: sent})
}

type (
	standingQuery struct {
		Start    string `query:"start"`
		End      string `query:"end"`
		Semester string `query:"semester"`
		MemberID string `query:"member_id"`
	}

	RemindResponse struct {
		Sent int `json:"sent"`
	}
)

func (q standingQuery) filter() (gem.Filter, error) {
	f := gem.Filter{
		Semester: core.CleanString(q.Semester),
		MemberID: core.CleanString(q.MemberID),
	}
	if q.Start != "" {
		t, err := parseTimestamp(q.Start)
		if err != nil {
			return f, core.NewValidationError(nil, core.FieldError{Field: "start", Error: "invalid timestamp"})
		}
		f.Start = &t
	}
	if q.End != "" {
		t, err := parseTimestamp(q.End)
		if err != nil {
			return f, core.NewValidationError(nil, core.FieldError{Field: "end", Error: "invalid timestamp"})
		}
		f.End = &t
	}
	return f, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
