package rest

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/internal/search"
)

// @Summary Поиск врачей
// @Description Возвращает список врачей, отфильтрованный и отсортированный по параметрам запроса
// @Tags Врачи
// @Accept json
// @Produce json
// @Param query query string false "Свободный текстовый поиск по имени и специальности"
// @Param specialty query string false "Специальность (подстрока, без учета регистра)"
// @Param language query []string false "Языки приема" collectionFormat(multi)
// @Param gender query string false "Пол врача (any, male, female)"
// @Param availability query string false "Доступность (any, today, this_week)"
// @Param rating query string false "Минимальный рейтинг (any, 3, 4, 4.5)"
// @Param minPrice query number false "Минимальная цена консультации"
// @Param maxPrice query number false "Максимальная цена консультации"
// @Param consultationType query []string false "Типы консультаций (video, in-person)" collectionFormat(multi)
// @Param verified query bool false "Только проверенные врачи"
// @Param sort query string false "Сортировка (relevance, rating, price_low, price_high)"
// @Success 200 {array} domain.Doctor "Список врачей"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors [get]
func (h *Handler) searchDoctors(c *gin.Context) {
	criteria := search.ParseQuery(c.Request.URL.Query())

	doctors, err := h.services.Doctor.Search(c.Request.Context(), criteria)
	if err != nil {
		h.logger.Error("ошибка при поиске врачей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"total":   len(doctors),
		"query":   search.EncodeQuery(criteria).Encode(),
	})
}

// @Summary Получить врача по ID
// @Description Возвращает полный профиль врача, включая расписание и отзывы
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	reviews, _, err := h.services.Review.GetByDoctorID(c.Request.Context(), id, 20, 0)
	if err == nil {
		doctor.Reviews = reviews
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Создать профиль врача
// @Description Создает новый профиль врача (только для администраторов)
// @Tags Врачи
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Данные врача"
// @Success 201 {object} successResponseBody "ID созданного врача"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var req domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании врача", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновить профиль врача
// @Description Обновляет данные профиля врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorDTO true "Новые данные врача"
// @Success 204 {object} nil "Профиль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении врача", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Удалить профиль врача
// @Description Удаляет профиль врача (только для администраторов)
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Профиль удален"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении врача", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Профиль врача текущего пользователя
// @Description Возвращает профиль врача, привязанный к текущему пользователю
// @Tags Врачи
// @Accept json
// @Produce json
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль не найден"
// @Security ApiKeyAuth
// @Router /doctors/me [get]
func (h *Handler) getMyDoctorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Приемные дни врача
// @Description Возвращает ближайшие приемные дни врача в пределах горизонта записи
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {array} schedule.AvailableDay "Приемные дни"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/available-days [get]
func (h *Handler) getDoctorAvailableDays(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	days, err := h.services.Doctor.AvailableDays(c.Request.Context(), id, time.Now())
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, days)
}

// @Summary Свободные слоты врача на дату
// @Description Возвращает свободные слоты врача на указанную дату
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param date query string true "Дата в формате YYYY-MM-DD"
// @Success 200 {array} string "Свободные слоты"
// @Failure 400 {object} errorResponseBody "Неверный формат даты"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/slots [get]
func (h *Handler) getDoctorSlots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	slots, err := h.services.Doctor.SlotsForDate(c.Request.Context(), id, date)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Загрузить фото врача
// @Description Загружает фото профиля врача в объектное хранилище
// @Tags Врачи
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID врача"
// @Param photo formData file true "Файл изображения"
// @Success 204 {object} nil "Фото загружено"
// @Failure 400 {object} errorResponseBody "Ошибка чтения файла"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл не найден в запросе")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		badRequestResponse(c, "ошибка чтения файла")
		return
	}

	if err := h.services.Doctor.UploadProfilePhoto(c.Request.Context(), id, data, header.Filename); err != nil {
		h.logger.Error("ошибка загрузки фото", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Удалить фото врача
// @Description Удаляет фото профиля врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Фото удалено"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.DeleteProfilePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления фото", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
