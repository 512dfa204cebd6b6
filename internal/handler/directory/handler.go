// Package directory exposes hospital browsing: listing, search, and
// selecting a hospital or doctor on the way to a booking.
package directory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	directorySvc "github.com/jwalitptl/opd-booking/internal/service/directory"
	"github.com/jwalitptl/opd-booking/internal/session"
	"github.com/jwalitptl/opd-booking/internal/view"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
)

type Handler struct {
	svc  *directorySvc.Service
	sess *session.Session
	nav  *navigation.Navigator
}

func NewHandler(svc *directorySvc.Service, sess *session.Session, nav *navigation.Navigator) *Handler {
	return &Handler{svc: svc, sess: sess, nav: nav}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", h.List)
		hospitals.POST("/:code/select", h.SelectHospital)
	}
	r.POST("/doctors/:id/select", h.SelectDoctor)
}

// List renders hospital cards, filtered by the q query when present.
func (h *Handler) List(c *gin.Context) {
	hospitals, err := h.svc.Search(c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":    len(hospitals),
		"fragment": view.HospitalCards(hospitals),
	}))
}

// SelectHospital records the selection and shows the hospital details
// page with its doctor cards.
func (h *Handler) SelectHospital(c *gin.Context) {
	hospital, err := h.svc.Get(c.Param("code"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.sess.SelectHospital(hospital)
	h.nav.NavigateTo(navigation.PageHospitalDetails)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"name":     hospital.Name,
		"location": hospital.Location,
		"fragment": view.DoctorCards(hospital.Doctors),
	}))
}

// SelectDoctor records the doctor selection on the selected hospital and
// moves to the booking form.
func (h *Handler) SelectDoctor(c *gin.Context) {
	hospital := h.sess.SelectedHospital()
	if hospital == nil {
		handler.RespondError(c, apperrors.MissingSelection("select a hospital first"))
		return
	}

	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RespondError(c, apperrors.Validation("doctor id must be numeric"))
		return
	}

	doctor, err := h.svc.FindDoctor(hospital, doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.sess.SelectDoctor(doctor)
	h.nav.NavigateTo(navigation.PageBookingForm)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"doctor": doctor,
	}))
}
