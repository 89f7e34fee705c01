package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the connection workflow.
const (
	NotificationTypeConnectionRequest  = "connection_request"
	NotificationTypeConnectionAccepted = "connection_accepted"
)

// Notification represents a user notification (MongoDB)
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"`
	ActorID     uint               `json:"actorId" bson:"actor_id"`
	RecipientID uint               `json:"recipientId" bson:"recipient_id"`
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"isRead" bson:"is_read"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}
