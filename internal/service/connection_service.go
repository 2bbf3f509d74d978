package service

import (
	"errors"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
)

// ConnectionService runs the friend-connection state machine:
// PENDING -> ACCEPTED | REJECTED, plus BLOCKED which either side may
// set and which wins over everything else.
type ConnectionService interface {
	SendRequest(requesterID, receiverID int64) (*domain.Connection, error)
	AcceptRequest(connectionID, userID int64) (*domain.Connection, error)
	RejectRequest(connectionID, userID int64) (*domain.Connection, error)
	BlockUser(userID, targetID int64) (*domain.Connection, error)
	RemoveConnection(connectionID, userID int64) error

	ListConnections(userID int64) ([]*domain.Connection, error)
	ListPendingSent(userID int64) ([]*domain.Connection, error)
	ListPendingReceived(userID int64) ([]*domain.Connection, error)
	ConnectionStatus(userID, otherID int64) (domain.ConnectionStatus, error)
	CountConnections(userID int64) (int64, error)
}

type connectionService struct {
	connections repository.ConnectionRepository
	users       repository.UserRepository
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(connections repository.ConnectionRepository, users repository.UserRepository) ConnectionService {
	return &connectionService{connections: connections, users: users}
}

// SendRequest creates a pending connection. Duplicate requests, an
// existing connection and a block all refuse the new request.
func (s *connectionService) SendRequest(requesterID, receiverID int64) (*domain.Connection, error) {
	if requesterID == receiverID {
		return nil, common.ErrSelfConnection
	}
	if _, err := s.users.FindByID(receiverID); err != nil {
		return nil, err
	}

	existing, err := s.connections.FindBetweenUsers(requesterID, receiverID)
	if err != nil && !errors.Is(err, common.ErrConnectionNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.ConnectionPending:
			return nil, common.ErrRequestPending
		case domain.ConnectionAccepted:
			return nil, common.ErrAlreadyConnected
		case domain.ConnectionBlocked:
			return nil, common.ErrUserBlocked
		case domain.ConnectionRejected:
			// a rejected pair may try again; reuse the row
			existing.RequesterID = requesterID
			existing.ReceiverID = receiverID
			existing.Status = domain.ConnectionPending
			existing.UpdatedAt = time.Now()
			if err := s.connections.Save(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	now := time.Now()
	conn := &domain.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.ConnectionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.connections.Create(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// AcceptRequest moves a pending request to ACCEPTED; only the
// receiver may accept
func (s *connectionService) AcceptRequest(connectionID, userID int64) (*domain.Connection, error) {
	return s.resolveRequest(connectionID, userID, domain.ConnectionAccepted)
}

// RejectRequest moves a pending request to REJECTED; only the
// receiver may reject
func (s *connectionService) RejectRequest(connectionID, userID int64) (*domain.Connection, error) {
	return s.resolveRequest(connectionID, userID, domain.ConnectionRejected)
}

func (s *connectionService) resolveRequest(connectionID, userID int64, status domain.ConnectionStatus) (*domain.Connection, error) {
	conn, err := s.connections.FindByID(connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != userID {
		return nil, common.ErrForbidden
	}
	if conn.Status != domain.ConnectionPending {
		return nil, common.ErrNotPending
	}

	conn.Status = status
	conn.UpdatedAt = time.Now()
	if err := s.connections.Save(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// BlockUser blocks the target regardless of the current state of the
// pair; the block is recorded with the blocker as requester
func (s *connectionService) BlockUser(userID, targetID int64) (*domain.Connection, error) {
	if userID == targetID {
		return nil, common.ErrSelfConnection
	}
	if _, err := s.users.FindByID(targetID); err != nil {
		return nil, err
	}

	conn, err := s.connections.FindBetweenUsers(userID, targetID)
	if err != nil {
		if !errors.Is(err, common.ErrConnectionNotFound) {
			return nil, err
		}
		now := time.Now()
		conn = &domain.Connection{
			RequesterID: userID,
			ReceiverID:  targetID,
			Status:      domain.ConnectionBlocked,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.connections.Create(conn); err != nil {
			return nil, err
		}
		return conn, nil
	}

	conn.RequesterID = userID
	conn.ReceiverID = targetID
	conn.Status = domain.ConnectionBlocked
	conn.UpdatedAt = time.Now()
	if err := s.connections.Save(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// RemoveConnection deletes the connection; either participant may
// remove it
func (s *connectionService) RemoveConnection(connectionID, userID int64) error {
	conn, err := s.connections.FindByID(connectionID)
	if err != nil {
		return err
	}
	if conn.RequesterID != userID && conn.ReceiverID != userID {
		return common.ErrForbidden
	}
	return s.connections.Delete(connectionID)
}

func (s *connectionService) ListConnections(userID int64) ([]*domain.Connection, error) {
	return s.connections.ListAcceptedByUser(userID)
}

func (s *connectionService) ListPendingSent(userID int64) ([]*domain.Connection, error) {
	return s.connections.ListPendingSentByUser(userID)
}

func (s *connectionService) ListPendingReceived(userID int64) ([]*domain.Connection, error) {
	return s.connections.ListPendingReceivedByUser(userID)
}

// ConnectionStatus reports the state between two users; "NONE" when
// no row exists
func (s *connectionService) ConnectionStatus(userID, otherID int64) (domain.ConnectionStatus, error) {
	conn, err := s.connections.FindBetweenUsers(userID, otherID)
	if err != nil {
		if errors.Is(err, common.ErrConnectionNotFound) {
			return "NONE", nil
		}
		return "", err
	}
	return conn.Status, nil
}

func (s *connectionService) CountConnections(userID int64) (int64, error) {
	return s.connections.CountAcceptedByUser(userID)
}
