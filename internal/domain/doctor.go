package domain

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// WeeklyAvailability хранит слоты приема по названию дня недели
// ("Monday" ... "Sunday"), порядок слотов внутри дня сохраняется как задан.
type WeeklyAvailability map[string][]string

type Location struct {
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Postcode string  `json:"postcode"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Award struct {
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Year         string `json:"year"`
}

type Publication struct {
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Year    string `json:"year"`
}

type Doctor struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id,omitempty"`
	Name            string             `json:"name"`
	Specialty       string             `json:"specialty"`
	Hospital        string             `json:"hospital"`
	Experience      string             `json:"experience,omitempty"`
	Bio             string             `json:"bio,omitempty"`
	Rating          float64            `json:"rating"`
	ReviewCount     int                `json:"review_count"`
	Languages       []string           `json:"languages"`
	AvailableToday  bool               `json:"available_today"`
	ConsultationFee float64            `json:"consultation_fee"`
	PhotoURL        string             `json:"photo_url"`
	Verified        bool               `json:"verified"`
	Gender          Gender             `json:"gender"`
	Location        *Location          `json:"location,omitempty"`
	Education       []Education        `json:"education,omitempty"`
	Specializations []string           `json:"specializations,omitempty"`
	Services        []string           `json:"services,omitempty"`
	Awards          []Award            `json:"awards,omitempty"`
	Publications    []Publication      `json:"publications,omitempty"`
	AvailableDays   []string           `json:"available_days,omitempty"`
	TimeSlots       WeeklyAvailability `json:"time_slots,omitempty"`
	Reviews         []Review           `json:"reviews,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type CreateDoctorDTO struct {
	UserID          int64              `json:"user_id,omitempty"`
	Name            string             `json:"name" binding:"required"`
	Specialty       string             `json:"specialty" binding:"required"`
	Hospital        string             `json:"hospital" binding:"required"`
	Experience      string             `json:"experience"`
	Bio             string             `json:"bio"`
	Languages       []string           `json:"languages"`
	ConsultationFee float64            `json:"consultation_fee" binding:"min=0"`
	Gender          Gender             `json:"gender" binding:"required,oneof=male female"`
	Location        *Location          `json:"location"`
	AvailableDays   []string           `json:"available_days"`
	TimeSlots       WeeklyAvailability `json:"time_slots"`
	ProfilePhoto    []byte             `json:"-"`
}

type UpdateDoctorDTO struct {
	Name            *string             `json:"name"`
	Specialty       *string             `json:"specialty"`
	Hospital        *string             `json:"hospital"`
	Experience      *string             `json:"experience"`
	Bio             *string             `json:"bio"`
	Languages       *[]string           `json:"languages"`
	AvailableToday  *bool               `json:"available_today"`
	ConsultationFee *float64            `json:"consultation_fee" binding:"omitempty,min=0"`
	Verified        *bool               `json:"verified"`
	Location        *Location           `json:"location"`
	Specializations *[]string           `json:"specializations"`
	Services        *[]string           `json:"services"`
	AvailableDays   *[]string           `json:"available_days"`
	TimeSlots       *WeeklyAvailability `json:"time_slots"`
	ProfilePhoto    []byte              `json:"-"`
}
