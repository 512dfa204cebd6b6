// Package patient exposes patient registration, the profile page and
// profile editing.
package patient

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	bookingSvc "github.com/jwalitptl/opd-booking/internal/service/booking"
	patientSvc "github.com/jwalitptl/opd-booking/internal/service/patient"
	"github.com/jwalitptl/opd-booking/internal/session"
	"github.com/jwalitptl/opd-booking/internal/view"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	svc      *patientSvc.Service
	bookings *bookingSvc.Service
	sess     *session.Session
	nav      *navigation.Navigator
	metrics  *metrics.Metrics
}

func NewHandler(svc *patientSvc.Service, bookings *bookingSvc.Service, sess *session.Session, nav *navigation.Navigator, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, bookings: bookings, sess: sess, nav: nav, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Register)
		patients.GET("/profile", h.Profile)
		patients.PUT("/profile", h.UpdateProfile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBind(&req); err != nil {
		h.metrics.Registrations.WithLabelValues("patient", "failure").Inc()
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	patient, err := h.svc.Register(h.sess, &req)
	if err != nil {
		h.metrics.Registrations.WithLabelValues("patient", "failure").Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.Registrations.WithLabelValues("patient", "success").Inc()
	h.nav.NavigateTo(navigation.PageHome)
	c.JSON(http.StatusCreated, handler.NewAckResponse("Patient registered successfully!", gin.H{
		"username": patient.Username,
	}))
}

// Profile shows the logged-in patient's display fields and their
// bookings split into current and past.
func (h *Handler) Profile(c *gin.Context) {
	patient := h.sess.Patient()
	if patient == nil {
		handler.RespondError(c, apperrors.Unauthorized("log in as a patient to view the profile"))
		return
	}

	bookings, err := h.bookings.ListForPatient(h.sess)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	current, past := view.SplitBookings(bookings, time.Now())

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"profile":         view.PatientProfile(patient),
		"currentFragment": view.BookingCards(current),
		"pastFragment":    view.BookingCards(past),
		"currentCount":    len(current),
		"pastCount":       len(past),
	}))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	patient, err := h.svc.UpdateProfile(h.sess, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewAckResponse("Profile updated successfully!", gin.H{
		"profile": view.PatientProfile(patient),
	}))
}
