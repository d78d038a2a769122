package model

import "time"

// Prediction records one inference call made by a user.  The submitted
// payload is kept verbatim as serialized JSON so history listings can
// return exactly what the client sent.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the record.  There is deliberately no foreign
//	            key constraint on this column: deleting a user leaves the
//	            user's predictions in place and admin listings surface
//	            the owner as "Unknown".
//	InputData – verbatim serialized request payload.
//	Price     – predicted price, rounded to 2 decimals.
//	Favorite  – user-toggled bookmark flag.
//	CreatedAt – timestamp of creation.
type Prediction struct {
	ID        uint64    // predictions.id
	UserID    uint64    // predictions.user_id
	InputData string    // predictions.input_data
	Price     float64   // predictions.price
	Favorite  bool      // predictions.favorite
	CreatedAt time.Time // predictions.created_at
}

// PredictionWithOwner augments a prediction with the owning user's email
// for admin listings.  OwnerEmail is "Unknown" when the owner row no
// longer exists.
type PredictionWithOwner struct {
	Prediction
	OwnerEmail string
}

// PredictionStats aggregates price figures across all stored predictions.
// All price fields are zero when Total is zero.
type PredictionStats struct {
	Total    int64
	AvgPrice float64
	MinPrice float64
	MaxPrice float64
}
