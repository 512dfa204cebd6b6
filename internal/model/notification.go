package model

import "time"

// Notification is a status message a hospital sends to a patient. Nothing
// is persisted; delivery is fire-and-forget.
type Notification struct {
	PatientMobile string    `json:"patientMobile"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
}

type SendNotificationRequest struct {
	PatientMobile string `form:"patient_mobile" json:"patient_mobile" binding:"required"`
	Status        string `form:"status" json:"status" binding:"required"`
	Message       string `form:"message" json:"message" binding:"required"`
}
