package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
)

type confirmBookingRequest struct {
	Date             string                  `json:"date" binding:"required"`
	TimeSlot         string                  `json:"time_slot" binding:"required"`
	ConsultationType domain.ConsultationType `json:"consultation_type" binding:"omitempty,oneof=video in-person"`
	Notes            string                  `json:"notes"`
	SecondOpinion    bool                    `json:"second_opinion"`
}

// @Summary Начать запись к врачу
// @Description Возвращает контекст мастера записи: профиль врача и ближайшие приемные дни
// @Tags Запись на прием
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param type query string false "Тип консультации (video, in-person)"
// @Success 200 {object} successResponseBody "Контекст записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id}/booking [get]
func (h *Handler) startBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	consultationType := domain.ConsultationType(c.DefaultQuery("type", string(domain.ConsultationVideo)))

	flow, err := h.services.Booking.StartFlow(c.Request.Context(), id, consultationType)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	days, err := h.services.Doctor.AvailableDays(c.Request.Context(), id, time.Now())
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"doctor":            flow.Doctor,
		"state":             flow.State,
		"consultation_type": flow.Selection.ConsultationType,
		"available_days":    days,
	})
}

// @Summary Подтвердить запись к врачу
// @Description Подтверждает выбор даты и слота, создает запись на прием
// @Tags Запись на прием
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body confirmBookingRequest true "Выбор пациента"
// @Success 201 {object} domain.BookingConfirmation "Подтверждение записи"
// @Failure 400 {object} errorResponseBody "Не выбраны дата и время"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Слот занят"
// @Failure 502 {object} errorResponseBody "Запись не сохранена"
// @Security ApiKeyAuth
// @Router /doctors/{id}/booking [post]
func (h *Handler) confirmBooking(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		domainErrorResponse(c, domain.ErrMissingSelection)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	consultationType := req.ConsultationType
	if consultationType == "" {
		consultationType = domain.ConsultationVideo
	}

	selection := domain.BookingSelection{
		Date:             &date,
		TimeSlot:         &req.TimeSlot,
		ConsultationType: consultationType,
		Notes:            req.Notes,
		SecondOpinion:    req.SecondOpinion,
	}

	confirmation, err := h.services.Booking.Confirm(c.Request.Context(), userID, doctorID, selection)
	if err != nil {
		h.logger.Warn("ошибка подтверждения записи", zap.Int64("doctorId", doctorID), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, confirmation)
}
