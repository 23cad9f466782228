package notifications

const querySchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	data JSONB,
	read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_created
	ON notifications (user_id, created_at DESC);
`

const queryCreate = `
INSERT INTO notifications (user_id, type, title, body, data)
VALUES ($1, $2, $3, $4, $5::jsonb)
RETURNING id, user_id, type, title, body, read, created_at
`

const queryListForUser = `
SELECT id, user_id, type, title, body, data, read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

const queryListUnreadForUser = `
SELECT id, user_id, type, title, body, data, read, created_at
FROM notifications
WHERE user_id = $1 AND read = FALSE
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

const queryMarkRead = `
UPDATE notifications SET read = TRUE
WHERE id = $1 AND user_id = $2
`

const queryMarkAllRead = `
UPDATE notifications SET read = TRUE
WHERE user_id = $1 AND read = FALSE
`

const queryUnreadCount = `
SELECT COUNT(*) FROM notifications
WHERE user_id = $1 AND read = FALSE
`

const queryCountForUser = `
SELECT COUNT(*) FROM notifications
WHERE user_id = $1
`
