package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/house-price-api/internal/model"
)

type PredictionRepo struct{ DB *sql.DB }

func NewPredictionRepo(db *sql.DB) *PredictionRepo { return &PredictionRepo{DB: db} }

// Create persists a new prediction for the user and returns its ID.  The
// payload is stored verbatim; the caller has already serialized it.
func (r *PredictionRepo) Create(ctx context.Context, userID uint64, inputData string, price float64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO predictions (user_id, input_data, price, favorite) VALUES (?,?,?,0)",
		userID, inputData, price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the user's predictions, newest first.
func (r *PredictionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Prediction, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,input_data,price,favorite,created_at FROM predictions WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Prediction
	for rows.Next() {
		var p model.Prediction
		if err := rows.Scan(&p.ID, &p.UserID, &p.InputData, &p.Price, &p.Favorite, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteOwned removes a prediction only when both id and owner match.  A
// record owned by someone else yields the same ErrPredictionNotFound as a
// nonexistent one.
func (r *PredictionRepo) DeleteOwned(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM predictions WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPredictionNotFound
	}
	return nil
}

// ToggleFavoriteOwned flips favorite with the same ownership scoping as
// DeleteOwned.  The single UPDATE serializes concurrent toggles on the
// row lock; the new value is read back afterwards.
func (r *PredictionRepo) ToggleFavoriteOwned(ctx context.Context, userID, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE predictions SET favorite = NOT favorite WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrPredictionNotFound
	}
	var fav bool
	err = r.DB.QueryRowContext(ctx,
		"SELECT favorite FROM predictions WHERE id=?", id).Scan(&fav)
	return fav, err
}

// ListAll returns every prediction, newest first, each annotated with the
// owning user's email.  Orphaned records (owner deleted) surface as
// "Unknown" via the LEFT JOIN.
func (r *PredictionRepo) ListAll(ctx context.Context) ([]model.PredictionWithOwner, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.input_data, p.price, p.favorite, p.created_at, u.email
		 FROM predictions p
		 LEFT JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PredictionWithOwner
	for rows.Next() {
		var (
			p     model.PredictionWithOwner
			email sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.InputData, &p.Price, &p.Favorite, &p.CreatedAt, &email); err != nil {
			return nil, err
		}
		p.OwnerEmail = "Unknown"
		if email.Valid {
			p.OwnerEmail = email.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes any prediction by id regardless of owner (admin path).
func (r *PredictionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM predictions WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPredictionNotFound
	}
	return nil
}

// Count returns the total number of predictions.
func (r *PredictionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions").Scan(&n)
	return n, err
}

// CountByUser returns how many predictions a given user owns.
func (r *PredictionRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM predictions WHERE user_id=?", userID).Scan(&n)
	return n, err
}

// Stats aggregates count and price figures in one query.  COALESCE keeps
// the aggregates at 0 when the table is empty, so there is no division
// by zero to special-case at this layer.
func (r *PredictionRepo) Stats(ctx context.Context) (model.PredictionStats, error) {
	var s model.PredictionStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(price),0), COALESCE(MIN(price),0), COALESCE(MAX(price),0)
		 FROM predictions`).
		Scan(&s.Total, &s.AvgPrice, &s.MinPrice, &s.MaxPrice)
	return s, err
}

// RecentCount returns how many of the newest predictions exist, capped at
// limit.
func (r *PredictionRepo) RecentCount(ctx context.Context, limit int) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM (SELECT id FROM predictions ORDER BY created_at DESC LIMIT ?) recent",
		limit).Scan(&n)
	return n, err
}
