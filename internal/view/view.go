// Package view projects records into display fragments. Every function is
// a pure transform: records in, escaped markup or a viewmodel out. The
// presentation layer decides where the fragments land.
package view

import (
	"html/template"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jwalitptl/opd-booking/internal/model"
)

const (
	noBookingsPlaceholder  = `<div class="no-data-msg">no OPs</div>`
	noDoctorsPlaceholder   = `<p class="text-center">No doctors available for this hospital.</p>`
	noHospitalsPlaceholder = `<p class="text-center">No hospitals found.</p>`
)

var (
	hospitalCardTmpl = template.Must(template.New("hospital-card").Parse(`<div class="hospital-card" data-code="{{.Code}}">
  <h3>{{.Name}}</h3>
  <p>{{.Location}}</p>
  {{if .Rating}}<p>Rating: {{.Rating}}/5.0</p>{{end}}
</div>
`))

	doctorCardTmpl = template.Must(template.New("doctor-card").Parse(`<div class="doctor-card" data-id="{{.ID}}">
  <div class="doctor-info">
    <h3>{{.Name}}</h3>
    <p><strong>Degree:</strong> {{.Degree}}</p>
    <p><strong>Specialization:</strong> {{.Specialization}}</p>
    <p><strong>Contact:</strong> {{.ReceptionistContact}}</p>
  </div>
  <div class="doctor-fees">{{.Fees}}</div>
</div>
`))

	bookingCardTmpl = template.Must(template.New("booking-card").Parse(`<div class="booking-card">
  <div class="booking-header">
    <h3>{{.Hospital}}</h3>
    <span class="booking-id">{{.BookingID}}</span>
  </div>
  <div class="booking-body">
    <p><strong>Doctor:</strong> {{.Doctor}}</p>
    <p><strong>Date:</strong> {{.AppointmentDate}}</p>
    <p><strong>Specialization:</strong> {{.Specialization}}</p>
    <div class="booking-footer">
      <span class="booking-status {{.Status}}">{{.StatusUpper}}</span>
      <span class="booking-timestamp">{{.Timestamp}}</span>
    </div>
  </div>
</div>
`))

	paymentSummaryTmpl = template.Must(template.New("payment-summary").Parse(`<p><strong>Hospital:</strong> {{.Hospital}}</p>
<p><strong>Doctor:</strong> {{.Doctor}}</p>
<p><strong>Specialization:</strong> {{.Specialization}}</p>
<p><strong>Date:</strong> {{.AppointmentDate}}</p>
<p><strong>Patient:</strong> {{.PatientName}}</p>
<p><strong>Amount:</strong> {{.Fees}}</p>
<p><strong>Helpline:</strong> {{.Helpline}}</p>
`))

	bookingSuccessTmpl = template.Must(template.New("booking-success").Parse(`<h3>Booking Details</h3>
<p><strong>Booking ID:</strong> {{.BookingID}}</p>
<p><strong>Hospital:</strong> {{.Hospital}}</p>
<p><strong>Doctor:</strong> {{.Doctor}}</p>
<p><strong>Date:</strong> {{.AppointmentDate}}</p>
<p><strong>Patient:</strong> {{.PatientName}}</p>
<p><strong>Amount Paid:</strong> {{.Fees}}</p>
`))
)

// HospitalCards renders one card per hospital, in list order.
func HospitalCards(hospitals []*model.Hospital) string {
	if len(hospitals) == 0 {
		return noHospitalsPlaceholder
	}
	var sb strings.Builder
	for _, hospital := range hospitals {
		_ = hospitalCardTmpl.Execute(&sb, hospital)
	}
	return sb.String()
}

// DoctorCards renders one card per doctor, in roster order.
func DoctorCards(doctors []model.Doctor) string {
	if len(doctors) == 0 {
		return noDoctorsPlaceholder
	}
	var sb strings.Builder
	for _, doctor := range doctors {
		_ = doctorCardTmpl.Execute(&sb, doctor)
	}
	return sb.String()
}

// Profile is the display projection of a patient record.
type Profile struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Mobile   string `json:"mobile"`
	Username string `json:"username"`
}

// PatientProfile maps a patient record onto its display fields. Gender is
// title-cased and the username prefixed the way the profile card shows it.
func PatientProfile(patient *model.Patient) Profile {
	gender := patient.Gender
	if r, size := utf8.DecodeRuneInString(gender); size > 0 {
		gender = string(unicode.ToUpper(r)) + gender[size:]
	}
	return Profile{
		Name:     patient.Name,
		Age:      patient.Age,
		Gender:   gender,
		Mobile:   patient.Mobile,
		Username: "@" + patient.Username,
	}
}

// SplitBookings partitions bookings into current and past around today at
// local midnight. An appointment dated today is still current. Order
// within each part follows the underlying list. Unparseable dates land in
// past.
func SplitBookings(bookings []model.Booking, now time.Time) (current, past []model.Booking) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, booking := range bookings {
		date, err := time.ParseInLocation(model.AppointmentDateLayout, booking.AppointmentDate, now.Location())
		if err == nil && !date.Before(midnight) {
			current = append(current, booking)
		} else {
			past = append(past, booking)
		}
	}
	return current, past
}

// BookingCards renders one card per booking, in list order.
func BookingCards(bookings []model.Booking) string {
	if len(bookings) == 0 {
		return noBookingsPlaceholder
	}
	var sb strings.Builder
	for _, booking := range bookings {
		_ = bookingCardTmpl.Execute(&sb, bookingCard(booking))
	}
	return sb.String()
}

// PaymentSummary renders the pre-confirmation summary of a draft.
func PaymentSummary(draft *model.Booking) string {
	var sb strings.Builder
	_ = paymentSummaryTmpl.Execute(&sb, draft)
	return sb.String()
}

// BookingSuccess renders the post-confirmation details.
func BookingSuccess(booking *model.Booking) string {
	var sb strings.Builder
	_ = bookingSuccessTmpl.Execute(&sb, booking)
	return sb.String()
}

type bookingCardModel struct {
	model.Booking
	StatusUpper string
	Timestamp   string
}

func bookingCard(b model.Booking) bookingCardModel {
	return bookingCardModel{
		Booking:     b,
		StatusUpper: strings.ToUpper(string(b.Status)),
		Timestamp:   b.Timestamp.Format("02/01/2006, 15:04:05"),
	}
}
