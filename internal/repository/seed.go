package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/pkg/auth"
)

// Демо-данные для локальной разработки и превью: два пользователя
// (пациент и врач) и шесть профилей врачей с расписанием и отзывами.
// Наполнение выполняется только при пустой таблице users.

const demoPassword = "password123"

type demoUser struct {
	email       string
	displayName string
	role        domain.UserRole
}

var demoUsers = []demoUser{
	{email: "patient@example.com", displayName: "Test Patient", role: domain.UserRolePatient},
	{email: "doctor@example.com", displayName: "Dr. Anna de Vries", role: domain.UserRoleDoctor},
}

var demoDoctors = []domain.CreateDoctorDTO{
	{
		Name:            "Dr. Anna de Vries",
		Specialty:       "Cardiologist",
		Hospital:        "Amsterdam University Medical Center",
		Experience:      "15+ years",
		Bio:             "Dr. Anna de Vries is a senior cardiologist with over 15 years of experience in treating complex heart conditions. She specializes in preventive cardiology, heart failure management, and cardiac rehabilitation. Dr. de Vries is known for her compassionate patient care and has received multiple awards for her contribution to cardiovascular research.",
		Languages:       []string{"Dutch", "English", "German"},
		ConsultationFee: 80,
		Gender:          domain.GenderFemale,
		Location: &domain.Location{
			Address:  "Meibergdreef 9",
			City:     "Amsterdam",
			Postcode: "1105 AZ",
			Lat:      52.3080,
			Lng:      4.8974,
		},
		AvailableDays: []string{"Monday", "Tuesday", "Thursday", "Friday"},
		TimeSlots: domain.WeeklyAvailability{
			"Monday":   {"09:00", "10:00", "11:00", "14:00", "15:00"},
			"Tuesday":  {"10:00", "11:00", "13:00", "14:00"},
			"Thursday": {"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"},
			"Friday":   {"10:00", "11:00", "13:00", "14:00"},
		},
	},
	{
		Name:            "Dr. Jan van der Berg",
		Specialty:       "Neurologist",
		Hospital:        "Erasmus Medical Center",
		Languages:       []string{"Dutch", "English"},
		ConsultationFee: 95,
		Gender:          domain.GenderMale,
		AvailableDays:   []string{"Monday", "Wednesday", "Friday"},
		TimeSlots: domain.WeeklyAvailability{
			"Monday":    {"09:00", "10:00", "11:00", "14:00"},
			"Wednesday": {"10:00", "11:00", "14:00", "15:00"},
			"Friday":    {"09:00", "10:00", "14:00", "15:00"},
		},
	},
	{
		Name:            "Dr. Sophie Jansen",
		Specialty:       "Dermatologist",
		Hospital:        "University Medical Center Utrecht",
		Languages:       []string{"Dutch", "English", "French"},
		ConsultationFee: 75,
		Gender:          domain.GenderFemale,
		AvailableDays:   []string{"Monday", "Tuesday", "Thursday"},
		TimeSlots: domain.WeeklyAvailability{
			"Monday":   {"09:00", "10:00", "14:00", "15:00"},
			"Tuesday":  {"10:00", "11:00", "13:00", "14:00", "15:00"},
			"Thursday": {"09:00", "10:00", "11:00", "14:00", "15:00"},
		},
	},
	{
		Name:            "Dr. Thomas de Groot",
		Specialty:       "Orthopedic Surgeon",
		Hospital:        "Leiden University Medical Center",
		Languages:       []string{"Dutch", "English"},
		ConsultationFee: 110,
		Gender:          domain.GenderMale,
		AvailableDays:   []string{"Tuesday", "Wednesday", "Thursday"},
		TimeSlots: domain.WeeklyAvailability{
			"Tuesday":   {"09:00", "10:00", "11:00"},
			"Wednesday": {"13:00", "14:00", "15:00"},
			"Thursday":  {"09:00", "10:00", "14:00"},
		},
	},
	{
		Name:            "Dr. Maria Kuiper",
		Specialty:       "Endocrinologist",
		Hospital:        "Maastricht University Medical Center",
		Languages:       []string{"Dutch", "English", "Spanish"},
		ConsultationFee: 85,
		Gender:          domain.GenderFemale,
		AvailableDays:   []string{"Monday", "Wednesday", "Friday"},
		TimeSlots: domain.WeeklyAvailability{
			"Monday":    {"10:00", "11:00", "13:00"},
			"Wednesday": {"09:00", "10:00", "11:00", "14:00"},
			"Friday":    {"13:00", "14:00", "15:00"},
		},
	},
	{
		Name:            "Dr. Peter van Dijk",
		Specialty:       "Psychiatrist",
		Hospital:        "Amsterdam University Medical Center",
		Languages:       []string{"Dutch", "English", "German"},
		ConsultationFee: 95,
		Gender:          domain.GenderMale,
		AvailableDays:   []string{"Tuesday", "Thursday", "Friday"},
		TimeSlots: domain.WeeklyAvailability{
			"Tuesday":  {"09:00", "10:00", "14:00"},
			"Thursday": {"10:00", "11:00", "15:00"},
			"Friday":   {"09:00", "13:00", "14:00"},
		},
	},
}

type demoProfile struct {
	photoURL        string
	rating          float64
	reviewCount     int
	availableToday  bool
	verified        bool
	education       []domain.Education
	specializations []string
	services        []string
	awards          []domain.Award
	publications    []domain.Publication
}

var demoProfiles = []demoProfile{
	{
		photoURL:       "https://randomuser.me/api/portraits/women/45.jpg",
		rating:         4.8,
		reviewCount:    124,
		availableToday: true,
		verified:       true,
		education: []domain.Education{
			{Degree: "MD", Institution: "University of Amsterdam", Year: "2005"},
			{Degree: "PhD in Cardiology", Institution: "Erasmus University Rotterdam", Year: "2009"},
		},
		specializations: []string{
			"Coronary Artery Disease",
			"Heart Failure",
			"Cardiac Rehabilitation",
			"Preventive Cardiology",
			"Echocardiography",
		},
		services: []string{
			"Cardiac Consultation",
			"ECG Analysis",
			"Exercise Stress Test",
			"Heart Monitoring",
			"Cholesterol Management",
		},
		awards: []domain.Award{
			{Title: "Excellence in Cardiology Research", Year: "2018"},
			{Title: "Best Medical Professional", Organization: "Amsterdam Medical Society", Year: "2016"},
		},
		publications: []domain.Publication{
			{Title: "New Approaches to Heart Failure Management", Journal: "European Heart Journal", Year: "2019"},
			{Title: "Long-term Effects of Cardiovascular Rehabilitation", Journal: "Journal of Cardiology", Year: "2017"},
		},
	},
	{photoURL: "https://randomuser.me/api/portraits/men/32.jpg", rating: 4.6, reviewCount: 98, availableToday: false, verified: true},
	{photoURL: "https://randomuser.me/api/portraits/women/68.jpg", rating: 4.9, reviewCount: 156, availableToday: true, verified: true},
	{photoURL: "https://randomuser.me/api/portraits/men/76.jpg", rating: 4.7, reviewCount: 112, availableToday: false, verified: true},
	{photoURL: "https://randomuser.me/api/portraits/women/26.jpg", rating: 4.5, reviewCount: 89, availableToday: true, verified: false},
	{photoURL: "https://randomuser.me/api/portraits/men/67.jpg", rating: 4.4, reviewCount: 76, availableToday: true, verified: true},
}

type demoReview struct {
	patientName string
	rating      int
	date        string
	comment     string
}

var demoReviews = []demoReview{
	{patientName: "Joost Bakker", rating: 5, date: "2025-04-25", comment: "Dr. de Vries was incredibly thorough in explaining my condition and treatment options. She made me feel comfortable and heard. Highly recommend!"},
	{patientName: "Marieke van Dam", rating: 5, date: "2025-04-15", comment: "Excellent doctor who takes time to answer all questions. Very knowledgeable and compassionate."},
	{patientName: "Thomas Visser", rating: 4, date: "2025-03-28", comment: "Professional and thorough examination. Office was busy but the care was excellent."},
}

// SeedDemoData наполняет пустую базу демо-данными.
func SeedDemoData(ctx context.Context, repos *Repositories, logger *zap.Logger) error {
	count, err := repos.User.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("база пуста, выполняется демо-наполнение")

	passwordHash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("ошибка хеширования демо-пароля: %w", err)
	}

	userIDs := make(map[string]int64, len(demoUsers))
	for _, u := range demoUsers {
		id, err := repos.User.Create(ctx, domain.CreateUserDTO{
			Email:       u.email,
			DisplayName: u.displayName,
			Role:        u.role,
		}, passwordHash)
		if err != nil {
			return fmt.Errorf("ошибка создания демо-пользователя %s: %w", u.email, err)
		}
		userIDs[u.email] = id
	}

	for i, dto := range demoDoctors {
		if i == 0 {
			dto.UserID = userIDs["doctor@example.com"]
		}

		doctorID, err := repos.Doctor.Create(ctx, dto)
		if err != nil {
			return fmt.Errorf("ошибка создания демо-врача %s: %w", dto.Name, err)
		}

		profile := demoProfiles[i]
		if err := seedDoctorProfile(ctx, repos.Doctor.(*DoctorRepo), doctorID, profile); err != nil {
			return err
		}

		if i == 0 {
			patientID := userIDs["patient@example.com"]
			for _, rv := range demoReviews {
				if err := seedReview(ctx, repos.Review.(*ReviewRepo), doctorID, patientID, rv); err != nil {
					return err
				}
			}
		}
	}

	logger.Info("демо-наполнение завершено",
		zap.Int("users", len(demoUsers)),
		zap.Int("doctors", len(demoDoctors)),
	)

	return nil
}

func seedDoctorProfile(ctx context.Context, repo *DoctorRepo, doctorID int64, profile demoProfile) error {
	query := `
		UPDATE doctors
		SET photo_url = $1,
		    rating = $2,
		    review_count = $3,
		    available_today = $4,
		    is_verified = $5,
		    education = $6,
		    specializations = $7,
		    services = $8,
		    awards = $9,
		    publications = $10
		WHERE id = $11
	`

	specializations := profile.specializations
	if specializations == nil {
		specializations = []string{}
	}
	services := profile.services
	if services == nil {
		services = []string{}
	}

	educationJSON, err := marshalDemo(profile.education)
	if err != nil {
		return err
	}
	awardsJSON, err := marshalDemo(profile.awards)
	if err != nil {
		return err
	}
	publicationsJSON, err := marshalDemo(profile.publications)
	if err != nil {
		return err
	}

	_, err = repo.db.Exec(ctx, query,
		profile.photoURL,
		profile.rating,
		profile.reviewCount,
		profile.availableToday,
		profile.verified,
		educationJSON,
		specializations,
		services,
		awardsJSON,
		publicationsJSON,
		doctorID,
	)
	if err != nil {
		return fmt.Errorf("ошибка наполнения профиля врача: %w", err)
	}

	return nil
}

func marshalDemo(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case []domain.Education:
		if len(val) == 0 {
			return nil, nil
		}
	case []domain.Award:
		if len(val) == 0 {
			return nil, nil
		}
	case []domain.Publication:
		if len(val) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации демо-данных: %w", err)
	}
	return data, nil
}

func seedReview(ctx context.Context, repo *ReviewRepo, doctorID, patientID int64, rv demoReview) error {
	query := `
		INSERT INTO reviews (doctor_id, patient_id, patient_name, rating, comment, review_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`

	_, err := repo.db.Exec(ctx, query,
		doctorID,
		patientID,
		rv.patientName,
		rv.rating,
		rv.comment,
		rv.date,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания демо-отзыва: %w", err)
	}

	return nil
}
