// Package auth exposes login, logout and password change for both roles.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	authSvc "github.com/jwalitptl/opd-booking/internal/service/auth"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	svc     *authSvc.Service
	sess    *session.Session
	nav     *navigation.Navigator
	metrics *metrics.Metrics
}

func NewHandler(svc *authSvc.Service, sess *session.Session, nav *navigation.Navigator, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, sess: sess, nav: nav, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/patient/login", h.LoginPatient)
		auth.POST("/hospital/login", h.LoginHospital)
		auth.POST("/password", h.ChangePassword)
		auth.POST("/logout", h.Logout)
	}
}

func (h *Handler) LoginPatient(c *gin.Context) {
	var req model.LoginPatientRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	patient, err := h.svc.LoginPatient(h.sess, &req)
	if err != nil {
		h.metrics.Logins.WithLabelValues("patient", loginOutcome(err)).Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.Logins.WithLabelValues("patient", "success").Inc()
	h.nav.NavigateTo(navigation.PagePatientProfile)
	c.JSON(http.StatusOK, handler.NewAckResponse("Logged in successfully!", gin.H{
		"username": patient.Username,
	}))
}

func (h *Handler) LoginHospital(c *gin.Context) {
	var req model.LoginHospitalRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	hospital, err := h.svc.LoginHospital(h.sess, &req)
	if err != nil {
		h.metrics.Logins.WithLabelValues("hospital", loginOutcome(err)).Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.Logins.WithLabelValues("hospital", "success").Inc()
	h.nav.NavigateTo(navigation.PageHospitalDash)
	c.JSON(http.StatusOK, handler.NewAckResponse("Logged in successfully!", gin.H{
		"code": hospital.Code,
	}))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := h.svc.ChangePassword(h.sess, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewAckResponse("Password updated successfully!", nil))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.svc.Logout(h.sess); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.nav.Reset()
	c.JSON(http.StatusOK, handler.NewAckResponse("Logged out successfully", nil))
}

func loginOutcome(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return "not_found"
	case apperrors.ErrInvalidCredential:
		return "invalid_credential"
	default:
		return "failure"
	}
}
