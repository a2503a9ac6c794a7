package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
)

// @Summary Создать отзыв
// @Description Создает отзыв пациента о враче и пересчитывает рейтинг
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param input body domain.CreateReviewDTO true "Данные отзыва"
// @Success 201 {object} successResponseBody "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Review.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Warn("ошибка создания отзыва", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Получить отзыв по ID
// @Description Возвращает отзыв по указанному ID
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} domain.Review "Данные отзыва"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/{id} [get]
func (h *Handler) getReviewByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, review)
}

// @Summary Удалить отзыв
// @Description Удаляет отзыв и пересчитывает рейтинг врача
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 204 {object} nil "Отзыв удален"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Security ApiKeyAuth
// @Router /reviews/{id} [delete]
func (h *Handler) deleteReview(c *gin.Context) {
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

	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	userRole, _ := getUserRole(c)
	if review.PatientID != userID && userRole != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Review.Delete(c.Request.Context(), id); err != nil {
		h.logger.Warn("ошибка удаления отзыва", zap.Int64("id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Отзывы о враче
// @Description Возвращает отзывы о враче с пагинацией
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param limit query int false "Лимит записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список отзывов"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors/{id}/reviews [get]
func (h *Handler) getDoctorReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	reviews, total, err := h.services.Review.GetByDoctorID(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.logger.Error("ошибка при получении отзывов", zap.Int64("doctorId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, reviews, total, page, limit)
}
