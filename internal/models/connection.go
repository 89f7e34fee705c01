package models

import "time"

// ConnectionStatus is the closed set of states a connection request moves
// through. Keeping it a typed tag lets the transition table be checked
// exhaustively instead of matching open strings.
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s ConnectionStatus) Terminal() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusRejected
}

// CanTransitionTo reports whether s -> next is an allowed transition.
// The only legal moves are pending -> accepted and pending -> rejected.
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	return s == ConnectionStatusPending &&
		(next == ConnectionStatusAccepted || next == ConnectionStatusRejected)
}

// Connection represents a connection request between two users. The record
// is created by the requester, resolved by the receiver and never deleted;
// rejection is a terminal state, not removal.
type Connection struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RequesterID uint             `json:"requesterId" gorm:"index"`
	ReceiverID  uint             `json:"receiverId" gorm:"index"`
	Status      ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ConnectionWithUser pairs a connection with the counterpart user, the shape
// the network endpoints return.
type ConnectionWithUser struct {
	Connection Connection  `json:"connection"`
	User       UserCompact `json:"user"`
}

// CreateConnectionRequest defines the request body for sending a connection request
type CreateConnectionRequest struct {
	ReceiverID uint `json:"receiverId" validate:"required"`
}

// UpdateConnectionRequest defines the request body for accepting/rejecting a connection request
type UpdateConnectionRequest struct {
	Status ConnectionStatus `json:"status" validate:"required,oneof=accepted rejected"`
}
