package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/HasanApplore/Harmony.AI/internal/repositories"
)

// ErrUnauthorized indicates the acting user may not perform the requested
// operation on the connection.
var ErrUnauthorized = errors.New("not authorized to act on this connection")

// ConnectionService enforces the business rules of the connection workflow
// above the store: identity checks, receiver-only transitions and the
// notifications emitted along the way.
type ConnectionService interface {
	SendRequest(ctx context.Context, actingUserID, requesterID, receiverID uint) (*models.Connection, error)
	RespondToRequest(ctx context.Context, connectionID, actingUserID uint, decision models.ConnectionStatus) (*models.Connection, error)
	ListConnections(userID uint) ([]models.ConnectionWithUser, error)
	ListPending(userID uint) ([]models.ConnectionWithUser, error)
}

type connectionService struct {
	connections   repositories.ConnectionRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	connectionRepo repositories.ConnectionRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ConnectionService {
	return &connectionService{
		connections:   connectionRepo,
		users:         userRepo,
		notifications: notificationRepo,
	}
}

// SendRequest creates a pending connection request from requester to receiver.
func (s *connectionService) SendRequest(ctx context.Context, actingUserID, requesterID, receiverID uint) (*models.Connection, error) {
	if actingUserID != requesterID {
		return nil, ErrUnauthorized
	}

	receiver, err := s.users.GetUserByID(receiverID)
	if err != nil {
		return nil, err
	}

	conn, err := s.connections.Create(requesterID, receiverID)
	if err != nil {
		return nil, err
	}

	if requester, err := s.users.GetUserByID(requesterID); err == nil {
		s.notify(ctx, &models.Notification{
			Type:        models.NotificationTypeConnectionRequest,
			ActorID:     requesterID,
			RecipientID: receiver.ID,
			Message:     fmt.Sprintf("%s wants to connect with you", requester.DisplayName()),
		})
	}
	return conn, nil
}

// RespondToRequest applies the receiver's accept/reject decision to a
// pending connection request.
func (s *connectionService) RespondToRequest(ctx context.Context, connectionID, actingUserID uint, decision models.ConnectionStatus) (*models.Connection, error) {
	conn, err := s.connections.GetByID(connectionID)
	if err != nil {
		return nil, err
	}

	// Only the receiver may resolve a request, regardless of decision value.
	if conn.ReceiverID != actingUserID {
		return nil, ErrUnauthorized
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, repositories.ErrInvalidTransition
	}

	updated, err := s.connections.UpdateStatus(connectionID, decision)
	if err != nil {
		return nil, err
	}

	if decision == models.ConnectionStatusAccepted {
		if receiver, err := s.users.GetUserByID(actingUserID); err == nil {
			s.notify(ctx, &models.Notification{
				Type:        models.NotificationTypeConnectionAccepted,
				ActorID:     actingUserID,
				RecipientID: conn.RequesterID,
				Message:     fmt.Sprintf("%s accepted your connection request", receiver.DisplayName()),
			})
		}
	}
	return updated, nil
}

// ListConnections returns the user's accepted connections, most recent first.
func (s *connectionService) ListConnections(userID uint) ([]models.ConnectionWithUser, error) {
	return s.connections.ListByUser(userID, models.ConnectionStatusAccepted)
}

// ListPending returns the pending requests directed at the user (incoming
// only; outgoing pending requests are not exposed).
func (s *connectionService) ListPending(userID uint) ([]models.ConnectionWithUser, error) {
	return s.connections.ListIncoming(userID, models.ConnectionStatusPending)
}

// notify stores a notification; failures are logged and swallowed, the
// notification is not critical to the mutation.
func (s *connectionService) notify(ctx context.Context, notification *models.Notification) {
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		log.Printf("Error creating %s notification for user %d: %v",
			notification.Type, notification.RecipientID, err)
	}
}
