package upsert_rates

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/rates/models"
)

// UpsertRatesRequest HTTP request model.
// Элемент с пустыми price и minStay сбрасывает переопределение на дату.
type UpsertRatesRequest struct {
	Rates []models.RateItem `json:"rates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertRatesRequest) ToServiceRequest(ownerID int64) *models.BulkUpsertRequest {
	return &models.BulkUpsertRequest{
		OwnerID: ownerID,
		Rates:   r.Rates,
	}
}
