// package notifications stores per-user notices about their quota.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muneerali199/website-builder/internal/usage"
)

func New(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// creates the notifications table; users must already exist
func (s *Service) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, querySchema); err != nil {
		return fmt.Errorf("failed to create notifications schema: %w", err)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Notification, error) {
	var n Notification
	var dataJSON *string

	if req.Data != nil {
		bytes, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}

		str := string(bytes)
		dataJSON = &str
	}

	err := s.db.QueryRow(
		ctx,
		queryCreate,
		req.UserID,
		req.Type,
		req.Title,
		req.Body,
		dataJSON,
	).Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Body,
		&n.Read,
		&n.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	n.Data = req.Data
	return &n, nil
}

// raises a notice when an accepted submission left a free user low or empty
func (s *Service) NotifyUsage(ctx context.Context, userID string, record usage.Record) (*Notification, error) {
	req, ok := UsageNotice(userID, record)
	if !ok {
		return nil, nil
	}

	return s.Create(ctx, req)
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit, offset int, unreadOnly bool) ([]Notification, error) {
	query := queryListForUser
	if unreadOnly {
		query = queryListUnreadForUser
	}

	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	defer rows.Close()
	var notifications []Notification

	for rows.Next() {
		var n Notification
		var dataJSON []byte

		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Title,
			&n.Body,
			&dataJSON,
			&n.Read,
			&n.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				n.Data = nil // ignore malformed JSON
			}
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := s.db.Exec(ctx, queryMarkRead, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, queryMarkAllRead, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, queryUnreadCount, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// counts all notifications of a user, or only the unread ones
func (s *Service) CountForUser(ctx context.Context, userID string, unreadOnly bool) (int, error) {
	if unreadOnly {
		return s.GetUnreadCount(ctx, userID)
	}

	var count int
	if err := s.db.QueryRow(ctx, queryCountForUser, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// builds the notice for a free user's usage after a submission, if one is due
func UsageNotice(userID string, record usage.Record) (*CreateRequest, bool) {
	if !record.Enforced() {
		return nil, false
	}

	data := map[string]any{
		"tier":             string(record.Tier),
		"remaining_tokens": record.RemainingTokens,
	}

	switch {
	case record.Exhausted():
		return &CreateRequest{
			UserID: userID,
			Type:   TypeQuotaExhausted,
			Title:  "You've used all your free prompts",
			Body:   "Upgrade to keep building.",
			Data:   data,
		}, true

	case record.QuotaLow():
		return &CreateRequest{
			UserID: userID,
			Type:   TypeQuotaLow,
			Title:  "Free prompts running low",
			Body:   fmt.Sprintf("%d free prompt left. Upgrade for unlimited access.", record.RemainingTokens),
			Data:   data,
		}, true
	}

	return nil, false
}
