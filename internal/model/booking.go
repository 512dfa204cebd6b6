package model

import "time"

// BookingStatus of a confirmed appointment. There is no cancellation or
// failure flow, so "successful" is the only persisted status.
type BookingStatus string

const BookingStatusSuccessful BookingStatus = "successful"

// BookingIDPrefix starts every booking identifier.
const BookingIDPrefix = "OPB"

// AppointmentDateLayout is the wire format of appointment dates.
const AppointmentDateLayout = "2006-01-02"

// Booking is a denormalized appointment snapshot. Hospital and doctor
// fields are copied at creation time so later roster edits never change a
// historical booking. Stored in the append-only list under
// bookings_<username>.
type Booking struct {
	BookingID        string        `json:"bookingId"`
	PatientName      string        `json:"patientName"`
	PatientAge       int           `json:"patientAge"`
	PatientGender    string        `json:"patientGender"`
	PatientMobile    string        `json:"patientMobile"`
	AppointmentDate  string        `json:"appointmentDate"`
	Hospital         string        `json:"hospital"`
	HospitalLocation string        `json:"hospitalLocation"`
	Doctor           string        `json:"doctor"`
	Specialization   string        `json:"specialization"`
	Fees             float64       `json:"fees"`
	Helpline         string        `json:"helpline"`
	Status           BookingStatus `json:"status,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
}

type BookingRequest struct {
	PatientName     string `form:"patient_name" json:"patient_name" binding:"required"`
	PatientAge      int    `form:"patient_age" json:"patient_age" binding:"required"`
	PatientGender   string `form:"patient_gender" json:"patient_gender" binding:"required"`
	PatientMobile   string `form:"patient_mobile" json:"patient_mobile" binding:"required"`
	AppointmentDate string `form:"appointment_date" json:"appointment_date" binding:"required"`
}
