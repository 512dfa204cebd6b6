// Package booking exposes the booking form submission and payment
// confirmation steps.
package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	bookingSvc "github.com/jwalitptl/opd-booking/internal/service/booking"
	"github.com/jwalitptl/opd-booking/internal/session"
	"github.com/jwalitptl/opd-booking/internal/view"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	svc     *bookingSvc.Service
	sess    *session.Session
	nav     *navigation.Navigator
	metrics *metrics.Metrics
}

func NewHandler(svc *bookingSvc.Service, sess *session.Session, nav *navigation.Navigator, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, sess: sess, nav: nav, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Submit)
		bookings.POST("/confirm", h.Confirm)
	}
}

// Submit builds the booking draft and shows the payment page.
func (h *Handler) Submit(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	draft, err := h.svc.Draft(h.sess, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.nav.NavigateTo(navigation.PagePayment)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"bookingId": draft.BookingID,
		"amount":    draft.Fees,
		"helpline":  draft.Helpline,
		"fragment":  view.PaymentSummary(draft),
	}))
}

// Confirm persists the draft and shows the success page.
func (h *Handler) Confirm(c *gin.Context) {
	booking, err := h.svc.Confirm(h.sess)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.BookingsConfirmed.Inc()
	h.nav.NavigateTo(navigation.PageSuccess)
	c.JSON(http.StatusCreated, handler.NewAckResponse("Booking confirmed!", gin.H{
		"bookingId": booking.BookingID,
		"status":    booking.Status,
		"fragment":  view.BookingSuccess(booking),
	}))
}
