// Package pages exposes the navigation controller: which page is active,
// moving forward, and going back.
package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	"github.com/jwalitptl/opd-booking/internal/service/hospital"
	"github.com/jwalitptl/opd-booking/internal/service/patient"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	nav         *navigation.Navigator
	sess        *session.Session
	patientSvc  *patient.Service
	hospitalSvc *hospital.Service
	metrics     *metrics.Metrics
}

func NewHandler(nav *navigation.Navigator, sess *session.Session, patientSvc *patient.Service, hospitalSvc *hospital.Service, m *metrics.Metrics) *Handler {
	return &Handler{nav: nav, sess: sess, patientSvc: patientSvc, hospitalSvc: hospitalSvc, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	pages := r.Group("/pages")
	{
		pages.GET("/current", h.Current)
		pages.POST("/goto", h.Goto)
		pages.POST("/back", h.Back)
	}
}

type pageState struct {
	Page  navigation.Page `json:"page"`
	Depth int             `json:"depth"`
	// options-page visibility flags
	LoggedIn     bool   `json:"logged_in"`
	IdentityType string `json:"identity_type,omitempty"`
	HasPatients  bool   `json:"has_patients"`
	HasHospitals bool   `json:"has_hospitals"`
}

func (h *Handler) state() pageState {
	state := pageState{
		Page:         h.nav.Current(),
		Depth:        h.nav.Depth(),
		LoggedIn:     h.sess.Identity() != nil,
		HasPatients:  h.patientSvc.HasAny(),
		HasHospitals: h.hospitalSvc.HasAny(),
	}
	if identity := h.sess.Identity(); identity != nil {
		state.IdentityType = string(identity.Type)
	}
	return state
}

func (h *Handler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.state()))
}

type gotoRequest struct {
	Page string `form:"page" json:"page" binding:"required"`
}

func (h *Handler) Goto(c *gin.Context) {
	var req gotoRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	page := navigation.Page(req.Page)
	if !navigation.Valid(page) {
		handler.RespondError(c, apperrors.NotFound("page", nil))
		return
	}

	h.nav.NavigateTo(page)
	h.metrics.PageViews.WithLabelValues(req.Page).Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.state()))
}

func (h *Handler) Back(c *gin.Context) {
	page := h.nav.Back()
	h.metrics.PageViews.WithLabelValues(string(page)).Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.state()))
}
