package repository

import (
	"errors"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// ConnectionRepository friend-connection storage
type ConnectionRepository interface {
	Create(conn *domain.Connection) error
	Save(conn *domain.Connection) error
	FindByID(id int64) (*domain.Connection, error)
	Delete(id int64) error

	// FindBetweenUsers matches the pair in either direction
	FindBetweenUsers(userA, userB int64) (*domain.Connection, error)
	ListAcceptedByUser(userID int64) ([]*domain.Connection, error)
	ListPendingSentByUser(userID int64) ([]*domain.Connection, error)
	ListPendingReceivedByUser(userID int64) ([]*domain.Connection, error)
	CountAcceptedByUser(userID int64) (int64, error)
	// AcceptedFriendIDs returns the user IDs connected to userID
	AcceptedFriendIDs(userID int64) ([]int64, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(conn *domain.Connection) error {
	return r.db.Create(conn).Error
}

func (r *connectionRepository) Save(conn *domain.Connection) error {
	return r.db.Save(conn).Error
}

func (r *connectionRepository) FindByID(id int64) (*domain.Connection, error) {
	var conn domain.Connection
	err := r.db.Preload("Requester").Preload("Receiver").First(&conn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) Delete(id int64) error {
	return r.db.Delete(&domain.Connection{}, id).Error
}

func (r *connectionRepository) FindBetweenUsers(userA, userB int64) (*domain.Connection, error) {
	var conn domain.Connection
	err := r.db.
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) ListAcceptedByUser(userID int64) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.
		Preload("Requester").Preload("Receiver").
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, domain.ConnectionAccepted).
		Order("updated_at DESC").
		Find(&conns).Error
	return conns, err
}

func (r *connectionRepository) ListPendingSentByUser(userID int64) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.
		Preload("Receiver").
		Where("requester_id = ? AND status = ?", userID, domain.ConnectionPending).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}

func (r *connectionRepository) ListPendingReceivedByUser(userID int64) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.
		Preload("Requester").
		Where("receiver_id = ? AND status = ?", userID, domain.ConnectionPending).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}

func (r *connectionRepository) CountAcceptedByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Connection{}).
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, domain.ConnectionAccepted).
		Count(&count).Error
	return count, err
}

func (r *connectionRepository) AcceptedFriendIDs(userID int64) ([]int64, error) {
	conns, err := r.ListAcceptedByUser(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(conns))
	for _, conn := range conns {
		if conn.RequesterID == userID {
			ids = append(ids, conn.ReceiverID)
		} else {
			ids = append(ids, conn.RequesterID)
		}
	}
	return ids, nil
}
