package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
			auth.POST("/reset-password", h.resetPassword)
			auth.POST("/reset-password/confirm", h.confirmResetPassword)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.searchDoctors)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/:id/reviews", h.getDoctorReviews)
			doctors.GET("/:id/available-days", h.getDoctorAvailableDays)
			doctors.GET("/:id/slots", h.getDoctorSlots)
			doctors.GET("/me", h.authMiddleware(), h.getMyDoctorProfile)

			auth := doctors.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.adminMiddleware(), h.createDoctor)
				auth.PUT("/:id", h.updateDoctor)
				auth.DELETE("/:id", h.deleteDoctor)

				auth.POST("/:id/photo", h.uploadDoctorPhoto)
				auth.DELETE("/:id/photo", h.deleteDoctorPhoto)

				auth.GET("/:id/booking", h.startBooking)
				auth.POST("/:id/booking", h.confirmBooking)

				doctorRoutes := auth.Group("/me")
				doctorRoutes.Use(h.doctorMiddleware())
				{
					doctorRoutes.GET("/appointments", h.getDoctorAppointments)
				}
			}
		}

		appointments := api.Group("/appointments")
		{
			auth := appointments.Group("/")
			auth.Use(h.authMiddleware())
			{
				auth.POST("/", h.createAppointment)
				auth.GET("/", h.getAppointments)
				auth.GET("/dashboard", h.getDashboard)
				auth.GET("/:id", h.getAppointmentByID)
				auth.PUT("/:id", h.updateAppointment)
				auth.DELETE("/:id", h.cancelAppointment)
			}
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/:id", h.getReviewByID)

			auth := reviews.Group("/")
			auth.Use(h.authMiddleware())
			{
				auth.POST("/", h.createReview)
				auth.DELETE("/:id", h.deleteReview)
			}
		}
	}
}
