package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
)

// @Summary Создать запись на прием
// @Description Создает новую запись на прием к врачу
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} successResponseBody "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Слот занят"
// @Failure 502 {object} errorResponseBody "Запись не сохранена"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.logger.Warn("ошибка получения ID пользователя", zap.Error(err))
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Warn("ошибка создания записи на прием", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Получить запись по ID
// @Description Возвращает информацию о записи на прием по указанному ID
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Данные записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.logger.Warn("ошибка получения ID пользователя", zap.Error(err))
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Warn("неверный формат ID", zap.Error(err))
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	userRole, _ := getUserRole(c)
	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	isDoctor := err == nil && doctor != nil

	if appointment.PatientID != userID &&
		!(isDoctor && doctor.ID == appointment.DoctorID) &&
		userRole != domain.UserRoleAdmin {
		h.logger.Warn("попытка несанкционированного доступа", zap.Int64("userID", userID))
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Обновить запись
// @Description Обновляет статус, дату или заметки записи на прием
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Новые данные записи"
// @Success 204 {object} nil "Запись обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Warn("ошибка обновления записи", zap.Int64("id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Отменить запись
// @Description Переводит запись на прием в статус cancelled
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Success 204 {object} nil "Запись отменена"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	userRole, _ := getUserRole(c)
	if appointment.PatientID != userID && userRole != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), id); err != nil {
		h.logger.Warn("ошибка отмены записи", zap.Int64("id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Список записей текущего пользователя
// @Description Возвращает записи текущего пациента с фильтрацией по статусу и датам
// @Tags Записи
// @Accept json
// @Produce json
// @Param status query string false "Статус записи"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список записей"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	statusStr := c.DefaultQuery("status", "")
	var status *domain.AppointmentStatus
	if statusStr != "" {
		appStatus := domain.AppointmentStatus(statusStr)
		if !appStatus.IsValid() {
			badRequestResponse(c, "некорректный статус записи")
			return
		}
		status = &appStatus
	}

	var startDate *time.Time
	if dateFrom := c.DefaultQuery("date_from", ""); dateFrom != "" {
		parsedDate, err := time.Parse("2006-01-02", dateFrom)
		if err == nil {
			startDate = &parsedDate
		}
	}

	var endDate *time.Time
	if dateTo := c.DefaultQuery("date_to", ""); dateTo != "" {
		parsedDate, err := time.Parse("2006-01-02", dateTo)
		if err == nil {
			parsedDate = parsedDate.Add(24 * time.Hour).Add(-time.Second)
			endDate = &parsedDate
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{
		PatientID: &userID,
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
		Offset:    offset,
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении записей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Кабинет пациента
// @Description Возвращает предстоящие и прошедшие записи текущего пациента
// @Tags Записи
// @Accept json
// @Produce json
// @Success 200 {object} domain.PatientDashboard "Записи пациента"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	dashboard, err := h.services.Appointment.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении кабинета пациента", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, dashboard)
}

// @Summary Записи врача
// @Description Возвращает записи на прием к врачу текущего пользователя
// @Tags Записи
// @Accept json
// @Produce json
// @Param status query string false "Статус записи"
// @Param limit query int false "Лимит записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список записей"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Security ApiKeyAuth
// @Router /doctors/me/appointments [get]
func (h *Handler) getDoctorAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	statusStr := c.DefaultQuery("status", "")
	var status *domain.AppointmentStatus
	if statusStr != "" {
		appStatus := domain.AppointmentStatus(statusStr)
		status = &appStatus
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{
		DoctorID: &doctor.ID,
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении записей врача", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}
