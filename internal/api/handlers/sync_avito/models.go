package sync_avito

import (
	syncAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/sync_avito"
)

// SyncAvitoRequest HTTP request model.
// Пустое тело означает синхронизацию на год вперед.
type SyncAvitoRequest struct {
	From string `json:"from,omitempty"` // "2026-08-01"
	To   string `json:"to,omitempty"`   // "2026-09-01", не включается
}

// SyncAvitoResponse HTTP response model
type SyncAvitoResponse struct {
	PropertyID int64  `json:"propertyId"`
	ListingID  int64  `json:"listingId"`
	From       string `json:"from"`
	To         string `json:"to"`
	PricesDays int    `json:"pricesDays"`
	BusyRanges int    `json:"busyRanges"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SyncAvitoRequest) ToUseCaseRequest(ownerID, propertyID int64) *syncAvito.Request {
	return &syncAvito.Request{
		OwnerID:    ownerID,
		PropertyID: propertyID,
		From:       r.From,
		To:         r.To,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncAvito.Response) *SyncAvitoResponse {
	return &SyncAvitoResponse{
		PropertyID: resp.PropertyID,
		ListingID:  resp.ListingID,
		From:       resp.From,
		To:         resp.To,
		PricesDays: resp.PricesDays,
		BusyRanges: resp.BusyRanges,
	}
}
