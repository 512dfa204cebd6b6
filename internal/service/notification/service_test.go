package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository/localstore"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

type captureSender struct {
	sent []*model.Notification
}

func (s *captureSender) Send(n *model.Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

func newFixture(t *testing.T) (*Service, *session.Session, *captureSender) {
	t.Helper()
	store, err := kvstore.New("")
	require.NoError(t, err)
	log := logger.NewLogger(nil)
	sender := &captureSender{}
	sess := session.New(localstore.NewSessionRepository(store), log)
	return NewService(sender, log), sess, sender
}

func TestSendRequiresHospitalIdentity(t *testing.T) {
	svc, sess, sender := newFixture(t)

	_, err := svc.Send(sess, &model.SendNotificationRequest{
		PatientMobile: "9876543210", Status: "confirmed", Message: "see you at 10",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
	assert.Empty(t, sender.sent)
}

func TestSendDelivers(t *testing.T) {
	svc, sess, sender := newFixture(t)
	require.NoError(t, sess.SetIdentity(model.HospitalIdentity(&model.Hospital{Code: "LSC002"})))

	sent, err := svc.Send(sess, &model.SendNotificationRequest{
		PatientMobile: "9876543210", Status: "confirmed", Message: "see you at 10",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "9876543210", sent.PatientMobile)
	assert.False(t, sent.Timestamp.IsZero())
}
