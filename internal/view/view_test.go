package view

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/opd-booking/internal/model"
)

func TestHospitalCards(t *testing.T) {
	out := HospitalCards([]*model.Hospital{
		{Name: "City General Hospital", Code: "CGH001", Location: "Downtown", Rating: 4.8},
		{Name: "Lakeside Clinic", Code: "LSC002", Location: "Lakeside"},
	})
	assert.Contains(t, out, "City General Hospital")
	assert.Contains(t, out, "Lakeside Clinic")
	assert.Contains(t, out, `data-code="CGH001"`)
	// cards keep list order
	assert.Less(t, strings.Index(out, "City General"), strings.Index(out, "Lakeside"))
}

func TestHospitalCardsEmpty(t *testing.T) {
	assert.Equal(t, noHospitalsPlaceholder, HospitalCards(nil))
}

func TestDoctorCards(t *testing.T) {
	out := DoctorCards([]model.Doctor{
		{ID: 101, Name: "Dr. Sarah Johnson", Degree: "MBBS, MD", Specialization: "Cardiology", Fees: 800},
	})
	assert.Contains(t, out, "Dr. Sarah Johnson")
	assert.Contains(t, out, "Cardiology")
}

func TestDoctorCardsEmpty(t *testing.T) {
	assert.Equal(t, noDoctorsPlaceholder, DoctorCards(nil))
}

func TestPatientProfile(t *testing.T) {
	profile := PatientProfile(&model.Patient{
		Name: "Asha", Age: 30, Gender: "female", Mobile: "9876543210", Username: "asha01",
	})
	assert.Equal(t, "Female", profile.Gender)
	assert.Equal(t, "@asha01", profile.Username)
	assert.Equal(t, 30, profile.Age)
}

func TestPatientProfileGenderTitleCaseIsRuneSafe(t *testing.T) {
	profile := PatientProfile(&model.Patient{Gender: "ženské", Username: "u1"})
	assert.Equal(t, "Ženské", profile.Gender)
	assert.True(t, utf8.ValidString(profile.Gender))

	empty := PatientProfile(&model.Patient{Username: "u1"})
	assert.Equal(t, "", empty.Gender)
}

func TestSplitBookingsTodayIsCurrent(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.Local)
	bookings := []model.Booking{
		{BookingID: "OPB1", AppointmentDate: "2026-08-31"},
		{BookingID: "OPB2", AppointmentDate: "2026-08-30"},
		{BookingID: "OPB3", AppointmentDate: "2026-09-02"},
	}

	current, past := SplitBookings(bookings, now)
	require.Len(t, current, 2)
	require.Len(t, past, 1)
	assert.Equal(t, "OPB1", current[0].BookingID)
	assert.Equal(t, "OPB3", current[1].BookingID)
	assert.Equal(t, "OPB2", past[0].BookingID)
}

func TestSplitBookingsUnparseableDateIsPast(t *testing.T) {
	_, past := SplitBookings([]model.Booking{{AppointmentDate: "someday"}}, time.Now())
	assert.Len(t, past, 1)
}

func TestBookingCardsEmpty(t *testing.T) {
	assert.Equal(t, noBookingsPlaceholder, BookingCards(nil))
}

func TestBookingCards(t *testing.T) {
	out := BookingCards([]model.Booking{{
		BookingID:       "OPB1756",
		Hospital:        "City General Hospital",
		Doctor:          "Dr. Sarah Johnson",
		AppointmentDate: "2026-09-02",
		Specialization:  "Cardiology",
		Status:          model.BookingStatusSuccessful,
		Timestamp:       time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local),
	}})
	assert.Contains(t, out, "OPB1756")
	assert.Contains(t, out, "SUCCESSFUL")
}

func TestPaymentSummaryAndSuccess(t *testing.T) {
	draft := &model.Booking{
		BookingID:       "OPB99",
		Hospital:        "City General Hospital",
		Doctor:          "Dr. Chen",
		Specialization:  "Orthopedics",
		AppointmentDate: "2026-09-05",
		PatientName:     "Asha",
		Fees:            700,
		Helpline:        "9876543210",
	}
	summary := PaymentSummary(draft)
	assert.Contains(t, summary, "Dr. Chen")
	assert.Contains(t, summary, "9876543210")

	success := BookingSuccess(draft)
	assert.Contains(t, success, "OPB99")
	assert.Contains(t, success, "Amount Paid")
}
