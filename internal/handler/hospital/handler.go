// Package hospital exposes hospital registration and roster management.
package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	hospitalSvc "github.com/jwalitptl/opd-booking/internal/service/hospital"
	"github.com/jwalitptl/opd-booking/internal/session"
	"github.com/jwalitptl/opd-booking/internal/view"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	svc     *hospitalSvc.Service
	sess    *session.Session
	nav     *navigation.Navigator
	metrics *metrics.Metrics
}

func NewHandler(svc *hospitalSvc.Service, sess *session.Session, nav *navigation.Navigator, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, sess: sess, nav: nav, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.POST("", h.Register)
		hospitals.POST("/doctors", h.AddDoctor)
		hospitals.GET("/doctors", h.Roster)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterHospitalRequest
	if err := c.ShouldBind(&req); err != nil {
		h.metrics.Registrations.WithLabelValues("hospital", "failure").Inc()
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	hospital, err := h.svc.Register(h.sess, &req)
	if err != nil {
		h.metrics.Registrations.WithLabelValues("hospital", "failure").Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.Registrations.WithLabelValues("hospital", "success").Inc()
	h.nav.NavigateTo(navigation.PageHospitalDash)
	c.JSON(http.StatusCreated, handler.NewAckResponse("Hospital registered successfully!", gin.H{
		"code": hospital.Code,
	}))
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req model.AddDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	doctor, err := h.svc.AddDoctor(h.sess, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewAckResponse("Doctor added successfully!", gin.H{
		"doctor": doctor,
	}))
}

// Roster renders the logged-in hospital's doctor cards.
func (h *Handler) Roster(c *gin.Context) {
	doctors, err := h.svc.Roster(h.sess)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":    len(doctors),
		"fragment": view.DoctorCards(doctors),
	}))
}
