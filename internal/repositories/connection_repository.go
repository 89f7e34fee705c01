package repositories

import (
	"errors"
	"fmt"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"gorm.io/gorm"
)

// Store-level failures of the connection workflow.
var (
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrDuplicateConnection = errors.New("an active connection already exists between these users")
	ErrSelfConnection      = errors.New("cannot send a connection request to yourself")
	ErrInvalidTransition   = errors.New("connection is not eligible for the requested status change")
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	Create(requesterID, receiverID uint) (*models.Connection, error)
	GetByID(id uint) (*models.Connection, error)
	ListByUser(userID uint, status models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	ListIncoming(userID uint, status models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	UpdateStatus(id uint, status models.ConnectionStatus) (*models.Connection, error)
}

// PostgresConnectionRepository implements ConnectionRepository for PostgreSQL
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// MigrateConnectionIndexes creates the partial unique index that enforces at
// most one non-rejected connection per unordered pair of users. Two creates
// racing past the duplicate pre-check settle on this index: the second insert
// fails and is surfaced as ErrDuplicateConnection.
func MigrateConnectionIndexes(db *gorm.DB) error {
	pair := "LEAST(requester_id, receiver_id), GREATEST(requester_id, receiver_id)"
	if db.Dialector.Name() == "sqlite" {
		pair = "MIN(requester_id, receiver_id), MAX(requester_id, receiver_id)"
	}
	stmt := fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_connections_active_pair
		ON connections (%s) WHERE status <> 'rejected'`, pair)
	return db.Exec(stmt).Error
}

// Create inserts a new pending connection request
func (r *PostgresConnectionRepository) Create(requesterID, receiverID uint) (*models.Connection, error) {
	if requesterID == receiverID {
		return nil, ErrSelfConnection
	}

	// Friendly pre-check; the partial unique index is the authoritative guard.
	var existing models.Connection
	err := r.db.Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
		requesterID, receiverID, receiverID, requesterID).
		Where("status <> ?", models.ConnectionStatusRejected).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateConnection
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conn := &models.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.ConnectionStatusPending,
	}
	if err := r.db.Create(conn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateConnection
		}
		return nil, err
	}
	return conn, nil
}

// GetByID retrieves a connection by ID
func (r *PostgresConnectionRepository) GetByID(id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

// ListByUser retrieves all connections where the user is requester or
// receiver, optionally filtered by status, most recent first, each joined
// with the counterpart user.
func (r *PostgresConnectionRepository) ListByUser(userID uint, status models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	q := r.db.Where("requester_id = ? OR receiver_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var conns []models.Connection
	if err := q.Order("created_at DESC").Find(&conns).Error; err != nil {
		return nil, err
	}
	return r.withCounterparts(userID, conns)
}

// ListIncoming retrieves connections directed at the user (user is the
// receiver), optionally filtered by status, most recent first.
func (r *PostgresConnectionRepository) ListIncoming(userID uint, status models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	q := r.db.Where("receiver_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var conns []models.Connection
	if err := q.Order("created_at DESC").Find(&conns).Error; err != nil {
		return nil, err
	}
	return r.withCounterparts(userID, conns)
}

// UpdateStatus applies a pending -> accepted/rejected transition. The guard
// lives in the WHERE clause, so of two concurrent responders exactly one
// wins and the other sees ErrInvalidTransition.
func (r *PostgresConnectionRepository) UpdateStatus(id uint, status models.ConnectionStatus) (*models.Connection, error) {
	if !models.ConnectionStatusPending.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	res := r.db.Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing record from one already resolved.
		var conn models.Connection
		if err := r.db.First(&conn, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConnectionNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return r.GetByID(id)
}

func (r *PostgresConnectionRepository) withCounterparts(userID uint, conns []models.Connection) ([]models.ConnectionWithUser, error) {
	result := make([]models.ConnectionWithUser, 0, len(conns))
	userCache := make(map[uint]models.UserCompact)

	for _, conn := range conns {
		counterpartID := conn.RequesterID
		if counterpartID == userID {
			counterpartID = conn.ReceiverID
		}

		compact, ok := userCache[counterpartID]
		if !ok {
			var user models.User
			if err := r.db.First(&user, counterpartID).Error; err != nil {
				return nil, fmt.Errorf("load counterpart user %d: %w", counterpartID, err)
			}
			compact = user.ToCompact()
			userCache[counterpartID] = compact
		}

		result = append(result, models.ConnectionWithUser{Connection: conn, User: compact})
	}
	return result, nil
}
