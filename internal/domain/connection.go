package domain

import "time"

// ConnectionStatus friend-connection state
type ConnectionStatus string

// Connection states
const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
	ConnectionBlocked  ConnectionStatus = "BLOCKED"
)

// Connection is a friend link between two users. The requester sent
// the request; only the receiver may accept or reject it.
type Connection struct {
	ID          int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RequesterID int64            `gorm:"column:requester_id;index;not null" json:"requester_id"`
	Requester   *User            `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	ReceiverID  int64            `gorm:"column:receiver_id;index;not null" json:"receiver_id"`
	Receiver    *User            `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Status      ConnectionStatus `gorm:"column:status;size:20;not null" json:"status"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (Connection) TableName() string {
	return "connections"
}

// ConnectionResponse API view of a connection
type ConnectionResponse struct {
	ID            int64            `json:"id"`
	RequesterID   int64            `json:"requester_id"`
	RequesterName string           `json:"requester_name,omitempty"`
	ReceiverID    int64            `json:"receiver_id"`
	ReceiverName  string           `json:"receiver_name,omitempty"`
	Status        ConnectionStatus `json:"status"`
	CreatedAt     string           `json:"created_at"`
}

// ToResponse converts a Connection (with users preloaded) to its API view
func (c *Connection) ToResponse() *ConnectionResponse {
	resp := &ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		ReceiverID:  c.ReceiverID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.Requester != nil {
		resp.RequesterName = c.Requester.Name
	}
	if c.Receiver != nil {
		resp.ReceiverName = c.Receiver.Name
	}
	return resp
}
