// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/validators"
)

var (
	ErrUserQuit = errors.New("вышел из программы")

	errCredentialMismatch = errors.New("значения не совпадают")
	errInvalidJSON        = errors.New("запись должна быть корректным JSON")
	errEmptyID            = errors.New("идентификатор обязателен")
)

var humanMessages = []struct {
	target error
	text   string
}{
	{service.ErrWrongCredential, "Неверный PIN или пароль"},
	{service.ErrWeakCredential, "PIN: 4-8 цифр, пароль: не короче 8 символов"},
	{service.ErrVaultLocked, "Хранилище заблокировано"},
	{service.ErrVaultAlreadyConfigured, "Хранилище уже создано"},
	{service.ErrVaultNotConfigured, "Хранилище ещё не создано"},
	{service.ErrIntegrity, "Запись повреждена или изменена вне приложения"},
	{store.ErrArchiveChecksum, "Контрольная сумма архива не совпадает"},
	{store.ErrArchiveVersion, "Неподдерживаемая версия архива"},
	{store.ErrArchiveMalformed, "Файл не является архивом OsteoVault"},
	{store.ErrArchiveTooLarge, "Архив слишком большой"},
	{validators.ErrInvalidID, "Недопустимый идентификатор"},
	{validators.ErrInvalidRecord, "Недопустимая запись"},
	{validators.ErrNegativeAmount, "Сумма счёта не может быть отрицательной"},
	{adapter.ErrTokenExpired, "Сессия на сервере истекла, войдите снова"},
	{adapter.ErrUnauthorized, "Сервер отклонил токен доступа"},
	{adapter.ErrNoRemoteConfigured, "Сервер не настроен"},
}

// humanizeError turns a service error into a message for the user.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range humanMessages {
		if errors.Is(err, m.target) {
			return m.text
		}
	}
	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if errors.Is(err, adapter.ErrRemoteUnavailable) ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
