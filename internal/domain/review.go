package domain

import (
	"time"
)

type Review struct {
	ID          int64     `json:"id"`
	DoctorID    int64     `json:"doctor_id"`
	PatientID   int64     `json:"patient_id,omitempty"`
	PatientName string    `json:"patient_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateReviewDTO struct {
	DoctorID int64  `json:"doctor_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required"`
}

type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty"`
}

type ReviewFilter struct {
	DoctorID  *int64 `json:"doctor_id"`
	PatientID *int64 `json:"patient_id"`
	MinRating *int   `json:"min_rating"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}
