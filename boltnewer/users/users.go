package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muneerali199/website-builder/internal/usage"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the users table if it doesn't exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, querySchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name, avatarURL string,
) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		name,
		avatarURL,
	)

	return scanUser(row)
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	return user, err
}

// returns the user's metadata blob
func (r *Repository) GetMetadata(ctx context.Context, userID string) (map[string]any, error) {
	var raw []byte

	err := r.db.QueryRow(ctx, queryGetMetadata, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	metadata := map[string]any{}
	if len(raw) == 0 {
		return metadata, nil
	}

	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	return metadata, nil
}

// replaces the user's metadata blob
func (r *Repository) UpdateMetadata(ctx context.Context, userID string, metadata map[string]any) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tag, err := r.db.Exec(ctx, queryUpdateMetadata, string(raw), userID)
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// returns the user's metadata as a usage profile
func (r *Repository) Profile(userID string) *Profile {
	return &Profile{repo: r, userID: userID}
}

// returns a profile source for the usage resolver
func (r *Repository) ProfileSource() usage.ProfileSource {
	return func(userID string) usage.Profile {
		return r.Profile(userID)
	}
}

func (p *Profile) Metadata(ctx context.Context) (map[string]any, error) {
	return p.repo.GetMetadata(ctx, p.userID)
}

func (p *Profile) UpdateMetadata(ctx context.Context, metadata map[string]any) error {
	return p.repo.UpdateMetadata(ctx, p.userID, metadata)
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
