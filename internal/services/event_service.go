package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/blogit-be/internal/models"
)

// EventBroadcaster pushes activity events to connected feed clients.
type EventBroadcaster interface {
	BroadcastEvent(event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message, actor string, postID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	PruneEventsBefore(cutoff time.Time) (int64, error)
}

// EventService provides business logic for the activity log.
type EventService struct {
	db          *sql.DB
	broadcaster EventBroadcaster
}

// NewEventService creates a new EventService. The broadcaster may be nil
// when no live feed is attached.
func NewEventService(db *sql.DB, broadcaster EventBroadcaster) *EventService {
	return &EventService{db: db, broadcaster: broadcaster}
}

// CreateEvent logs a new event to the database and broadcasts it to any
// connected feed clients. Events must never contain credentials or tokens.
func (s *EventService) CreateEvent(eventType, level, message, actor string, postID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Actor:     actor,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, actor, post_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.Actor, event.PostID, event.CreatedAt)
	if err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, actor, post_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Actor, &event.PostID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneEventsBefore deletes events created before the cutoff and reports
// how many rows were removed.
func (s *EventService) PruneEventsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
