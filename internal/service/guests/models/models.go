package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// Request модели

// CreateGuestRequest запрос на создание карточки гостя
type CreateGuestRequest struct {
	OwnerID int64    `json:"ownerId"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   *string  `json:"email,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

// Validate проверяет корректность запроса
func (r *CreateGuestRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return errors.New("phone is required")
	}
	return validateTags(r.Tags)
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateGuestRequest) ToDomain() *domain.Guest {
	return &domain.Guest{
		OwnerID: r.OwnerID,
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Email:   r.Email,
		Tags:    normalizeTags(r.Tags),
		Notes:   r.Notes,
	}
}

// UpdateGuestRequest запрос на обновление карточки гостя.
// Передаются только изменяемые поля, nil означает "не менять".
type UpdateGuestRequest struct {
	OwnerID int64     `json:"ownerId"`
	Name    *string   `json:"name,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Email   *string   `json:"email,omitempty"`
	Tags    *[]string `json:"tags,omitempty"` // Полная замена набора меток
	Notes   *string   `json:"notes,omitempty"`
}

// ListGuestsRequest запрос на получение списка гостей
type ListGuestsRequest struct {
	OwnerID int64   `json:"ownerId"`
	Tag     *string `json:"tag,omitempty"`    // Фильтр по метке (опционально)
	Search  *string `json:"search,omitempty"` // Поиск по имени/телефону (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListGuestsRequest) ToDomainFilter() domain.GuestsFilter {
	return domain.GuestsFilter{
		OwnerID: r.OwnerID,
		Tag:     r.Tag,
		Search:  r.Search,
	}
}

// Response модели

// GuestResponse ответ с данными гостя
type GuestResponse struct {
	ID      int64    `json:"id"`
	OwnerID int64    `json:"ownerId"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   *string  `json:"email,omitempty"`
	Tags    []string `json:"tags"`
	Notes   *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GuestListResponse ответ со списком гостей
type GuestListResponse struct {
	Guests []GuestResponse `json:"guests"`
}

// Методы конвертации

// FromDomainGuest конвертирует domain модель в DTO
func FromDomainGuest(g *domain.Guest) *GuestResponse {
	if g == nil {
		return nil
	}

	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}

	return &GuestResponse{
		ID:        g.ID,
		OwnerID:   g.OwnerID,
		Name:      g.Name,
		Phone:     g.Phone,
		Email:     g.Email,
		Tags:      tags,
		Notes:     g.Notes,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// FromDomainGuestList конвертирует список domain моделей в DTO
func FromDomainGuestList(guests []*domain.Guest) *GuestListResponse {
	resp := &GuestListResponse{
		Guests: make([]GuestResponse, 0, len(guests)),
	}

	for _, guest := range guests {
		if guestResp := FromDomainGuest(guest); guestResp != nil {
			resp.Guests = append(resp.Guests, *guestResp)
		}
	}

	return resp
}

// Вспомогательные функции

func validateTags(tags []string) error {
	if len(tags) > domain.MaxGuestTags {
		return fmt.Errorf("too many tags, max %d", domain.MaxGuestTags)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("tag must not be empty")
		}
		if len(tag) > domain.MaxGuestTagLength {
			return fmt.Errorf("tag %q is too long, max %d characters", tag, domain.MaxGuestTagLength)
		}
	}
	return nil
}

// normalizeTags убирает пробелы и дубликаты, сохраняя порядок
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}

	return normalized
}
