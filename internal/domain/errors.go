package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrEmailAlreadyInUse  = errors.New("пользователь с таким email уже существует")
	ErrAccountNotFound    = errors.New("аккаунт с таким email не найден")
	ErrNoActiveSession    = errors.New("пользователь не авторизован")
	ErrMissingSelection   = errors.New("не выбраны дата и время приема")
	ErrSlotUnavailable    = errors.New("выбранное время недоступно")
	ErrBookingFailed      = errors.New("не удалось сохранить запись на прием")
	ErrNotFound           = errors.New("запись не найдена")
)
