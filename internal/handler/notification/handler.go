// Package notification exposes the hospital's send-notification command.
package notification

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/opd-booking/internal/handler"
	"github.com/jwalitptl/opd-booking/internal/model"
	notificationSvc "github.com/jwalitptl/opd-booking/internal/service/notification"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

type Handler struct {
	svc     *notificationSvc.Service
	sess    *session.Session
	metrics *metrics.Metrics
}

func NewHandler(svc *notificationSvc.Service, sess *session.Session, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, sess: sess, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/notifications", h.Send)
}

func (h *Handler) Send(c *gin.Context) {
	var req model.SendNotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error()))
		return
	}

	notification, err := h.svc.Send(h.sess, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.NotificationsSent.Inc()
	message := fmt.Sprintf("Notification sent to %s", notification.PatientMobile)
	c.JSON(http.StatusOK, handler.NewAckResponse(message, nil))
}
