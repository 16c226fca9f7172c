package store

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/placerhq/placer-server/models"
)

// The users.places column is a uuid[] kept in sync with places.creator by
// the place repository's transactional writes. It is selected as a
// comma-joined string so that scanning stays driver-agnostic.
const (
	createUser = `INSERT INTO users (user_id, name, email, password_hash, image)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, name, email, password_hash, image, array_to_string(places, ','), created_at;`

	findUserByEmail = `SELECT user_id, name, email, password_hash, image, array_to_string(places, ','), created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, name, email, password_hash, image, array_to_string(places, ','), created_at
    FROM users
    WHERE user_id = $1;`

	getAllUsers = `SELECT user_id, name, email, password_hash, image, array_to_string(places, ','), created_at
    FROM users
    ORDER BY created_at;`

	createPlace = `INSERT INTO places (place_id, title, description, address, latitude, longitude, image, creator)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING place_id, title, description, address, latitude, longitude, image, creator, created_at;`

	appendUserPlace = `UPDATE users
    SET places = array_append(places, $1)
    WHERE user_id = $2;`

	removeUserPlace = `UPDATE users
    SET places = array_remove(places, $1)
    WHERE user_id = $2;`

	getPlaceByID = `SELECT place_id, title, description, address, latitude, longitude, image, creator, created_at
    FROM places
    WHERE place_id = $1;`

	getPlacesByCreator = `SELECT place_id, title, description, address, latitude, longitude, image, creator, created_at
    FROM places
    WHERE creator = $1
    ORDER BY created_at;`

	deletePlace = `DELETE FROM places
    WHERE place_id = $1;`
)

// buildUpdatePlaceQuery builds a partial UPDATE for the mutable place
// fields. Returns an error when the update carries nothing to change.
func buildUpdatePlaceQuery(update models.PlaceUpdate) (string, []any, error) {
	builder := squirrel.Update("places").PlaceholderFormat(squirrel.Dollar)

	changed := false
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
		changed = true
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
		changed = true
	}

	if !changed {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	builder = builder.
		Where(squirrel.Eq{"place_id": update.PlaceID}).
		Suffix("RETURNING place_id, title, description, address, latitude, longitude, image, creator, created_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// parseUUIDList parses a comma-joined list of UUIDs as produced by
// array_to_string. An empty input yields an empty slice.
func parseUUIDList(joined string) ([]uuid.UUID, error) {
	if joined == "" {
		return []uuid.UUID{}, nil
	}

	parts := strings.Split(joined, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q in list: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
