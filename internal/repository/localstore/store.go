// Package localstore implements the typed repositories on top of the
// prefix-keyed key-value store. Key formats are part of the persisted
// contract and must not change:
//
//	user_<username>      patient record
//	hospital_<code>      hospital record
//	bookings_<username>  booking list
//	currentUser          session pointer
package localstore

const (
	patientKeyPrefix  = "user_"
	hospitalKeyPrefix = "hospital_"
	bookingKeyPrefix  = "bookings_"
	sessionKey        = "currentUser"
)

func patientKey(username string) string {
	return patientKeyPrefix + username
}

func hospitalKey(code string) string {
	return hospitalKeyPrefix + code
}

func bookingKey(username string) string {
	return bookingKeyPrefix + username
}
