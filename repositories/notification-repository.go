package repositories

import (
	"context"
	"fmt"
	"os"
	"time"

	"lce-project/backend/models"

	"github.com/gocql/gocql"
	"github.com/sirupsen/logrus"
)

// CassandraNotificationRepository čuva obaveštenja (dodeljen zadatak, zahtev
// za potpis, HOD odobrenje, slanje klijentu) u Cassandra bazi.
type CassandraNotificationRepository struct {
	session *gocql.Session
	logger  *logrus.Logger
}

// NewCassandraNotificationRepository se povezuje na Cassandru i priprema
// keyspace i tabelu ako ne postoje.
func NewCassandraNotificationRepository(logger *logrus.Logger) (*CassandraNotificationRepository, error) {
	db := os.Getenv("CASS_DB")
	if db == "" {
		db = "127.0.0.1"
	}

	cluster := gocql.NewCluster(db)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %v", err)
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS lce_notifications
         WITH replication = {
             'class': 'SimpleStrategy',
             'replication_factor': 1
         }`).Exec()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create keyspace: %v", err)
	}
	session.Close()

	cluster.Keyspace = "lce_notifications"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to lce_notifications keyspace: %v", err)
	}

	repo := &CassandraNotificationRepository{session: session, logger: logger}
	if err := repo.createTable(); err != nil {
		session.Close()
		return nil, err
	}
	return repo, nil
}

func (r *CassandraNotificationRepository) createTable() error {
	err := r.session.Query(
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID,
			user_id TEXT,
			message TEXT,
			created_at TIMESTAMP,
			is_read BOOLEAN,
			PRIMARY KEY ((user_id), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		return fmt.Errorf("failed to create notifications table: %v", err)
	}
	return nil
}

func (r *CassandraNotificationRepository) Close() {
	r.session.Close()
	r.logger.Info("Event ID: CASSANDRA_SESSION_CLOSED, Description: Cassandra session closed.")
}

func (r *CassandraNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = gocql.TimeUUID().String()
	}

	err := r.session.Query(
		`INSERT INTO notifications (id, user_id, message, created_at, is_read)
		 VALUES (?, ?, ?, ?, ?)`,
		notification.ID, notification.UserID, notification.Message, notification.CreatedAt, notification.IsRead,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

func (r *CassandraNotificationRepository) FindByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, created_at, is_read
			  FROM notifications WHERE user_id = ?`

	iter := r.session.Query(query, userID).WithContext(ctx).Iter()
	var notifications []models.Notification
	var notification models.Notification

	for iter.Scan(&notification.ID, &notification.UserID, &notification.Message,
		&notification.CreatedAt, &notification.IsRead) {
		notifications = append(notifications, notification)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	return notifications, nil
}

func (r *CassandraNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	uuid, err := gocql.ParseUUID(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification id format: %v", err)
	}

	// created_at je deo primarnog ključa pa se prvo mora pročitati
	var createdAt time.Time
	lookup := `SELECT created_at FROM notifications WHERE user_id = ? AND id = ? ALLOW FILTERING`
	if err := r.session.Query(lookup, userID, uuid).WithContext(ctx).Scan(&createdAt); err != nil {
		if err == gocql.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to locate notification: %v", err)
	}

	query := `UPDATE notifications SET is_read = true WHERE user_id = ? AND created_at = ? AND id = ?`
	if err := r.session.Query(query, userID, createdAt, uuid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}
	return nil
}
