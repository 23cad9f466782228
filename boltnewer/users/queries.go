package users

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL DEFAULT '',
			provider TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			tier TEXT NOT NULL DEFAULT 'free',
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (provider, provider_id)
		);
	`

	queryFindOrCreateByProvider = `
		INSERT INTO users (provider, provider_id, email, name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING id, email, provider, provider_id, name, avatar_url, tier, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, email, provider, provider_id, name, avatar_url, tier, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryGetMetadata = `
		SELECT metadata
		FROM users
		WHERE id = $1
	`

	// the tier column mirrors metadata.tier for reporting queries
	queryUpdateMetadata = `
		UPDATE users
		SET metadata = $1,
			tier = COALESCE(NULLIF($1::jsonb->>'tier', ''), tier),
			updated_at = NOW()
		WHERE id = $2
	`
)
