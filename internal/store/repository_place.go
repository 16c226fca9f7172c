package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/models"
)

// placeRepository is the PostgreSQL-backed implementation of
// [PlaceRepository]. Creation and deletion maintain the owning user's
// places collection inside the same transaction as the place row itself,
// so the two can never diverge.
type placeRepository struct {
	*DB
	logger *logger.Logger
}

// NewPlaceRepository constructs a [PlaceRepository] backed by the provided
// database connection and logger.
func NewPlaceRepository(db *DB, logger *logger.Logger) PlaceRepository {
	logger.Debug().Msg("PlaceRepository created")
	return &placeRepository{
		DB:     db,
		logger: logger,
	}
}

// CreatePlace inserts the place row and appends its identifier to the
// creator's places collection. Both writes commit together or not at all.
// Returns [ErrNoUserWasFound] when the creator does not exist.
func (r *placeRepository) CreatePlace(ctx context.Context, place models.Place) (models.Place, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.CreatePlace").
			Str("creator", place.Creator.String()).
			Msg("failed to begin transaction")
		return models.Place{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createPlace,
		place.PlaceID,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Latitude,
		place.Location.Longitude,
		place.Image,
		place.Creator,
	)

	created, err := scanPlace(row)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.CreatePlace").
			Str("creator", place.Creator.String()).
			Msg("failed to insert place")
		return models.Place{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, appendUserPlace, created.PlaceID, place.Creator)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.CreatePlace").
			Str("creator", place.Creator.String()).
			Msg("failed to append place to creator's collection")
		return models.Place{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Place{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "placeRepository.CreatePlace").
			Str("creator", place.Creator.String()).
			Msg("creator does not exist, rolling back place insert")
		return models.Place{}, ErrNoUserWasFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "placeRepository.CreatePlace").
			Str("place_id", created.PlaceID.String()).
			Msg("failed to commit transaction")
		return models.Place{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

// GetPlaceByID fetches a single place by its identifier.
// Returns [ErrNoPlaceWasFound] when no place matches.
func (r *placeRepository) GetPlaceByID(ctx context.Context, placeID uuid.UUID) (models.Place, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getPlaceByID, placeID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "placeRepository.GetPlaceByID").
			Str("place_id", placeID.String()).
			Msg("failed to query place")
		return models.Place{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	place, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Place{}, ErrNoPlaceWasFound
		}
		log.Err(err).
			Str("func", "placeRepository.GetPlaceByID").
			Str("place_id", placeID.String()).
			Msg("failed to scan place")
		return models.Place{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return place, nil
}

// GetPlacesByCreator fetches every place created by the given user in
// creation order. Returns an empty slice when the user has no places.
func (r *placeRepository) GetPlacesByCreator(ctx context.Context, creator uuid.UUID) ([]models.Place, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getPlacesByCreator, creator)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.GetPlacesByCreator").
			Str("creator", creator.String()).
			Msg("failed to query places")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	places := make([]models.Place, 0, 20)

	for rows.Next() {
		place, scanErr := scanPlace(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "placeRepository.GetPlacesByCreator").
				Str("creator", creator.String()).
				Msg("failed to scan place row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		places = append(places, place)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "placeRepository.GetPlacesByCreator").
			Str("creator", creator.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return places, nil
}

// UpdatePlace applies a partial update of the mutable place fields and
// returns the updated record. Returns [ErrNoPlaceWasFound] when the place
// does not exist.
func (r *placeRepository) UpdatePlace(ctx context.Context, update models.PlaceUpdate) (models.Place, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePlaceQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.UpdatePlace").
			Str("place_id", update.PlaceID.String()).
			Msg("failed to build update query")
		return models.Place{}, err
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	if rowErr := row.Err(); rowErr != nil {
		log.Err(rowErr).
			Str("func", "placeRepository.UpdatePlace").
			Str("place_id", update.PlaceID.String()).
			Msg("failed to execute update query")
		return models.Place{}, fmt.Errorf("%w: %w", ErrExecutingQuery, rowErr)
	}

	updated, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Place{}, ErrNoPlaceWasFound
		}
		log.Err(err).
			Str("func", "placeRepository.UpdatePlace").
			Str("place_id", update.PlaceID.String()).
			Msg("failed to scan updated place")
		return models.Place{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// DeletePlace removes the place row and pulls its identifier out of the
// creator's places collection. Both writes commit together or not at all.
// Returns [ErrNoPlaceWasFound] when the place does not exist.
func (r *placeRepository) DeletePlace(ctx context.Context, place models.Place) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.DeletePlace").
			Str("place_id", place.PlaceID.String()).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deletePlace, place.PlaceID)
	if err != nil {
		log.Err(err).
			Str("func", "placeRepository.DeletePlace").
			Str("place_id", place.PlaceID.String()).
			Msg("failed to delete place")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoPlaceWasFound
	}

	if _, err = tx.ExecContext(ctx, removeUserPlace, place.PlaceID, place.Creator); err != nil {
		log.Err(err).
			Str("func", "placeRepository.DeletePlace").
			Str("place_id", place.PlaceID.String()).
			Str("creator", place.Creator.String()).
			Msg("failed to remove place from creator's collection")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "placeRepository.DeletePlace").
			Str("place_id", place.PlaceID.String()).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func scanPlace(row rowScanner) (models.Place, error) {
	var place models.Place

	err := row.Scan(
		&place.PlaceID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Latitude,
		&place.Location.Longitude,
		&place.Image,
		&place.Creator,
		&place.CreatedAt,
	)
	if err != nil {
		return models.Place{}, err
	}

	return place, nil
}
