package service

import (
	"testing"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupConnectionService(t *testing.T) (ConnectionService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewConnectionService(repository.NewConnectionRepository(db), repository.NewUserRepository(db))

	for i, name := range []string{"Asha", "Badal", "Chitra"} {
		require.NoError(t, db.Create(&domain.User{
			ID:       int64(i + 1),
			Name:     name,
			Email:    name + "@example.com",
			Password: "x",
			Role:     domain.RoleUser,
		}).Error)
	}
	return svc, db
}

func TestSendRequest_CreatesPending(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionPending, conn.Status)
	assert.Equal(t, int64(1), conn.RequesterID)
	assert.Equal(t, int64(2), conn.ReceiverID)
}

func TestSendRequest_ToSelf(t *testing.T) {
	svc, _ := setupConnectionService(t)

	_, err := svc.SendRequest(1, 1)

	assert.ErrorIs(t, err, common.ErrSelfConnection)
}

func TestSendRequest_UnknownReceiver(t *testing.T) {
	svc, _ := setupConnectionService(t)

	_, err := svc.SendRequest(1, 999)

	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestSendRequest_DuplicatePending(t *testing.T) {
	svc, _ := setupConnectionService(t)

	_, err := svc.SendRequest(1, 2)
	require.NoError(t, err)

	_, err = svc.SendRequest(1, 2)
	assert.ErrorIs(t, err, common.ErrRequestPending)

	// the reverse direction hits the same pending row
	_, err = svc.SendRequest(2, 1)
	assert.ErrorIs(t, err, common.ErrRequestPending)
}

func TestAcceptRequest_OnlyReceiver(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)

	_, err = svc.AcceptRequest(conn.ID, 1)
	assert.ErrorIs(t, err, common.ErrForbidden)

	accepted, err := svc.AcceptRequest(conn.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionAccepted, accepted.Status)
}

func TestAcceptRequest_NotPending(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(conn.ID, 2)
	require.NoError(t, err)

	_, err = svc.AcceptRequest(conn.ID, 2)
	assert.ErrorIs(t, err, common.ErrNotPending)
}

func TestRejectedPairMayRetry(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.RejectRequest(conn.ID, 2)
	require.NoError(t, err)

	retried, err := svc.SendRequest(2, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionPending, retried.Status)
	assert.Equal(t, int64(2), retried.RequesterID)
}

func TestSendRequest_AlreadyConnected(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(conn.ID, 2)
	require.NoError(t, err)

	_, err = svc.SendRequest(1, 2)
	assert.ErrorIs(t, err, common.ErrAlreadyConnected)
}

func TestBlockUser_OverridesExistingState(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(conn.ID, 2)
	require.NoError(t, err)

	blocked, err := svc.BlockUser(2, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionBlocked, blocked.Status)
	assert.Equal(t, int64(2), blocked.RequesterID)

	_, err = svc.SendRequest(1, 2)
	assert.ErrorIs(t, err, common.ErrUserBlocked)
}

func TestBlockUser_WithoutPriorConnection(t *testing.T) {
	svc, _ := setupConnectionService(t)

	blocked, err := svc.BlockUser(1, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionBlocked, blocked.Status)
}

func TestRemoveConnection_OnlyParticipants(t *testing.T) {
	svc, _ := setupConnectionService(t)

	conn, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(conn.ID, 2)
	require.NoError(t, err)

	err = svc.RemoveConnection(conn.ID, 3)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, svc.RemoveConnection(conn.ID, 1))

	status, err := svc.ConnectionStatus(1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionStatus("NONE"), status)
}

func TestConnectionListsAndCount(t *testing.T) {
	svc, _ := setupConnectionService(t)

	first, err := svc.SendRequest(1, 2)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(first.ID, 2)
	require.NoError(t, err)

	_, err = svc.SendRequest(1, 3)
	require.NoError(t, err)

	accepted, err := svc.ListConnections(1)
	require.NoError(t, err)
	assert.Len(t, accepted, 1)

	sent, err := svc.ListPendingSent(1)
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	received, err := svc.ListPendingReceived(3)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	count, err := svc.CountConnections(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
