package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/models"
)

func newTestPlaceRepo(t *testing.T) (*placeRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &placeRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func placeColumns() []string {
	return []string{"place_id", "title", "description", "address", "latitude", "longitude", "image", "creator", "created_at"}
}

func testPlace() models.Place {
	return models.Place{
		PlaceID:     uuid.New(),
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    models.Location{Latitude: 40.7484, Longitude: -73.9857},
		Image:       "uploads/images/esb.jpg",
		Creator:     uuid.New(),
		CreatedAt:   time.Now(),
	}
}

func placeRow(p models.Place) *sqlmock.Rows {
	return sqlmock.NewRows(placeColumns()).
		AddRow(p.PlaceID.String(), p.Title, p.Description, p.Address, p.Location.Latitude, p.Location.Longitude, p.Image, p.Creator.String(), p.CreatedAt)
}

func TestCreatePlace_Success(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO places").
		WithArgs(place.PlaceID, place.Title, place.Description, place.Address,
			place.Location.Latitude, place.Location.Longitude, place.Image, place.Creator).
		WillReturnRows(placeRow(place))
	mock.ExpectExec("UPDATE users").
		WithArgs(place.PlaceID, place.Creator).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreatePlace(ctx, place)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PlaceID != place.PlaceID {
		t.Errorf("expected PlaceID=%s, got %s", place.PlaceID, created.PlaceID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Creating a place must never leave the place row behind when the owner's
// collection cannot be updated.
func TestCreatePlace_CollectionUpdateFails_RollsBack(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO places").
		WithArgs(place.PlaceID, place.Title, place.Description, place.Address,
			place.Location.Latitude, place.Location.Longitude, place.Image, place.Creator).
		WillReturnRows(placeRow(place))
	mock.ExpectExec("UPDATE users").
		WithArgs(place.PlaceID, place.Creator).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.CreatePlace(ctx, place)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreatePlace_MissingCreator_RollsBack(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO places").
		WithArgs(place.PlaceID, place.Title, place.Description, place.Address,
			place.Location.Latitude, place.Location.Longitude, place.Image, place.Creator).
		WillReturnRows(placeRow(place))
	mock.ExpectExec("UPDATE users").
		WithArgs(place.PlaceID, place.Creator).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CreatePlace(ctx, place)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreatePlace_InsertFails_RollsBack(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO places").
		WithArgs(place.PlaceID, place.Title, place.Description, place.Address,
			place.Location.Latitude, place.Location.Longitude, place.Image, place.Creator).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreatePlace(ctx, place)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPlaceByID_Success(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectQuery("SELECT (.+) FROM places").
		WithArgs(place.PlaceID).
		WillReturnRows(placeRow(place))

	found, err := repo.GetPlaceByID(ctx, place.PlaceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Title != place.Title {
		t.Errorf("expected title %q, got %q", place.Title, found.Title)
	}
	if found.Location != place.Location {
		t.Errorf("expected location %+v, got %+v", place.Location, found.Location)
	}
}

func TestGetPlaceByID_NotFound(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	placeID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM places").
		WithArgs(placeID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPlaceByID(ctx, placeID)
	if !errors.Is(err, ErrNoPlaceWasFound) {
		t.Fatalf("expected ErrNoPlaceWasFound, got %v", err)
	}
}

func TestGetPlacesByCreator_Success(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	creator := uuid.New()
	first := testPlace()
	first.Creator = creator
	second := testPlace()
	second.Creator = creator

	rows := sqlmock.NewRows(placeColumns()).
		AddRow(first.PlaceID.String(), first.Title, first.Description, first.Address,
			first.Location.Latitude, first.Location.Longitude, first.Image, first.Creator.String(), first.CreatedAt).
		AddRow(second.PlaceID.String(), second.Title, second.Description, second.Address,
			second.Location.Latitude, second.Location.Longitude, second.Image, second.Creator.String(), second.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM places").
		WithArgs(creator).
		WillReturnRows(rows)

	places, err := repo.GetPlacesByCreator(ctx, creator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
}

func TestGetPlacesByCreator_Empty(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	creator := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM places").
		WithArgs(creator).
		WillReturnRows(sqlmock.NewRows(placeColumns()))

	places, err := repo.GetPlacesByCreator(ctx, creator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 0 {
		t.Fatalf("expected no places, got %d", len(places))
	}
}

func TestUpdatePlace_Success(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()
	newTitle := "Updated title"
	newDescription := "Updated description"
	place.Title = newTitle
	place.Description = newDescription

	mock.ExpectQuery("UPDATE places SET").
		WithArgs(newTitle, newDescription, place.PlaceID).
		WillReturnRows(placeRow(place))

	updated, err := repo.UpdatePlace(ctx, models.PlaceUpdate{
		PlaceID:     place.PlaceID,
		Title:       &newTitle,
		Description: &newDescription,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, updated.Title)
	}
}

func TestUpdatePlace_NotFound(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	newTitle := "Updated title"

	mock.ExpectQuery("UPDATE places SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePlace(ctx, models.PlaceUpdate{
		PlaceID: uuid.New(),
		Title:   &newTitle,
	})
	if !errors.Is(err, ErrNoPlaceWasFound) {
		t.Fatalf("expected ErrNoPlaceWasFound, got %v", err)
	}
}

func TestUpdatePlace_NothingToUpdate(t *testing.T) {
	repo, _, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()

	_, err := repo.UpdatePlace(ctx, models.PlaceUpdate{PlaceID: uuid.New()})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}

func TestDeletePlace_Success(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM places").
		WithArgs(place.PlaceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(place.PlaceID, place.Creator).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeletePlace(ctx, place); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Deleting a place must never remove the row while leaving the identifier
// in the owner's collection.
func TestDeletePlace_CollectionUpdateFails_RollsBack(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM places").
		WithArgs(place.PlaceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(place.PlaceID, place.Creator).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.DeletePlace(ctx, place)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeletePlace_NotFound(t *testing.T) {
	repo, mock, db := newTestPlaceRepo(t)
	defer db.Close()

	ctx := context.Background()
	place := testPlace()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM places").
		WithArgs(place.PlaceID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeletePlace(ctx, place)
	if !errors.Is(err, ErrNoPlaceWasFound) {
		t.Fatalf("expected ErrNoPlaceWasFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
