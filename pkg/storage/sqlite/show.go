package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/seguido/seguido/pkg/storage"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/model"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/table"
)

// CreateShow stores a tracked show and its initial lifecycle transition
func (s SQLite) CreateShow(ctx context.Context, show storage.Show, initialState storage.LifecycleState) (int64, error) {
	if show.State == "" {
		show.State = storage.StateNew
	}

	err := show.Machine().ToState(initialState)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	// don't insert a zeroed ID or clobber timestamp defaults
	insertColumns := table.Show.MutableColumns
	if show.ID != 0 {
		insertColumns = table.Show.AllColumns
	}
	if show.Added == nil || show.Added.IsZero() {
		insertColumns = insertColumns.Except(table.Show.Added, table.Show.UpdatedAt)
	}

	stmt := table.Show.
		INSERT(insertColumns).
		MODEL(show.Show).
		RETURNING(table.Show.ID)

	result, err := stmt.ExecContext(ctx, tx)
	if err != nil {
		tx.Rollback()
		if isUniqueConstraintErr(err) {
			return 0, storage.ErrShowExists
		}
		return 0, err
	}

	inserted, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	transition := storage.ShowTransition{
		ShowID:     int32(inserted),
		ToState:    string(initialState),
		MostRecent: true,
		SortKey:    1,
	}

	transitionStmt := table.ShowTransition.
		INSERT(table.ShowTransition.AllColumns.
			Except(table.ShowTransition.ID, table.ShowTransition.CreatedAt, table.ShowTransition.UpdatedAt)).
		MODEL(transition)

	_, err = transitionStmt.ExecContext(ctx, tx)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	return inserted, nil
}

// GetShow looks for a show given a where condition
func (s SQLite) GetShow(ctx context.Context, where sqlite.BoolExpression) (*storage.Show, error) {
	stmt := table.Show.
		SELECT(
			table.Show.AllColumns,
			table.ShowTransition.AllColumns,
		).
		FROM(
			table.Show.
				INNER_JOIN(
					table.ShowTransition,
					table.Show.ID.EQ(table.ShowTransition.ShowID).
						AND(table.ShowTransition.MostRecent.EQ(sqlite.Bool(true)))),
		).
		WHERE(where)

	var show storage.Show
	err := stmt.QueryContext(ctx, s.db, &show)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	return &show, nil
}

// ListShows lists tracked shows, most recently updated first
func (s SQLite) ListShows(ctx context.Context, where ...sqlite.BoolExpression) ([]*storage.Show, error) {
	stmt := table.Show.
		SELECT(
			table.Show.AllColumns,
			table.ShowTransition.AllColumns,
		).
		FROM(
			table.Show.
				INNER_JOIN(
					table.ShowTransition,
					table.Show.ID.EQ(table.ShowTransition.ShowID).
						AND(table.ShowTransition.MostRecent.EQ(sqlite.Bool(true)))),
		).
		ORDER_BY(table.Show.UpdatedAt.DESC())

	for _, w := range where {
		stmt = stmt.WHERE(w)
	}

	shows := make([]*storage.Show, 0)
	err := stmt.QueryContext(ctx, s.db, &shows)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	return shows, nil
}

// UpdateShow writes the mutable columns of a show. The lifecycle state is not
// touched here; use UpdateShowState.
func (s SQLite) UpdateShow(ctx context.Context, show model.Show) error {
	if show.ID == 0 {
		return fmt.Errorf("show id is required for update")
	}

	stmt := table.Show.
		UPDATE(table.Show.MutableColumns.Except(table.Show.Added, table.Show.UpdatedAt)).
		MODEL(show).
		WHERE(table.Show.ID.EQ(sqlite.Int32(show.ID)))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to update show: %w", err)
	}

	return nil
}

// UpdateShowState appends a lifecycle transition for a show
func (s SQLite) UpdateShowState(ctx context.Context, id int64, state storage.LifecycleState) error {
	show, err := s.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	if err != nil {
		return err
	}

	err = show.Machine().ToState(state)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	previousTransitionStmt := table.ShowTransition.
		UPDATE().
		SET(
			table.ShowTransition.MostRecent.SET(sqlite.Bool(false))).
		WHERE(
			table.ShowTransition.ShowID.EQ(sqlite.Int(id)).
				AND(table.ShowTransition.MostRecent.EQ(sqlite.Bool(true)))).
		RETURNING(table.ShowTransition.AllColumns)

	var previousTransition storage.ShowTransition
	err = previousTransitionStmt.QueryContext(ctx, tx, &previousTransition)
	if err != nil {
		tx.Rollback()
		return err
	}

	transition := storage.ShowTransition{
		ShowID:     int32(id),
		ToState:    string(state),
		MostRecent: true,
		SortKey:    previousTransition.SortKey + 1,
	}

	newTransitionStmt := table.ShowTransition.
		INSERT(table.ShowTransition.AllColumns.
			Except(table.ShowTransition.ID, table.ShowTransition.CreatedAt, table.ShowTransition.UpdatedAt)).
		MODEL(transition)

	_, err = newTransitionStmt.ExecContext(ctx, tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DeleteShow removes a show by id; its transitions cascade
func (s SQLite) DeleteShow(ctx context.Context, id int64) error {
	stmt := table.Show.
		DELETE().
		WHERE(table.Show.ID.EQ(sqlite.Int64(id)))

	_, err := s.handleDelete(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}

	return nil
}
