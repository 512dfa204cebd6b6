package localstore

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
)

type bookingRepository struct {
	store *kvstore.Store
}

func NewBookingRepository(store *kvstore.Store) repository.BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) List(username string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.store.Get(bookingKey(username), &bookings)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return []model.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Append adds one booking to the patient's list. The list is append-only;
// existing entries are never rewritten.
func (r *bookingRepository) Append(username string, booking model.Booking) error {
	bookings, err := r.List(username)
	if err != nil {
		return fmt.Errorf("failed to load booking list: %w", err)
	}
	bookings = append(bookings, booking)
	if err := r.store.Put(bookingKey(username), bookings); err != nil {
		return fmt.Errorf("failed to store booking list: %w", err)
	}
	return nil
}
