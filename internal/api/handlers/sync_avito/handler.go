package sync_avito

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
	syncAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/sync_avito"
)

const (
	msgInvalidPropertyID = "некорректный ID площадки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgPropertyNotFound  = "площадка не найдена"
	msgForbidden         = "доступ запрещен"
	msgNotLinked         = "площадка не привязана к объявлению Авито"
	msgNotConnected      = "аккаунт Авито не подключен"
	msgReconnectRequired = "не удалось обновить токен, переподключите аккаунт Авито"
	msgInvalidInput      = "некорректное окно синхронизации"
)

type Handler struct {
	useCase SyncAvitoUseCase
	logger  Logger
}

func NewHandler(useCase SyncAvitoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/avito/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/avito/sync - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /properties/{id}/avito/sync - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: по умолчанию синхронизируется год вперед
	var req SyncAvitoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /properties/{id}/avito/sync - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID, propertyID))
	if err != nil {
		var syncErr *avitoClient.SyncError

		switch {
		case errors.Is(err, syncAvito.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{id}/avito/sync - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, syncAvito.ErrAccessDenied):
			h.logger.Warn("POST /properties/{id}/avito/sync - Access denied: property_id=%d, owner_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, syncAvito.ErrNotLinked):
			h.logger.Warn("POST /properties/{id}/avito/sync - Not linked: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgNotLinked)

		case errors.Is(err, syncAvito.ErrNotConnected):
			h.logger.Warn("POST /properties/{id}/avito/sync - Account not connected: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgNotConnected)

		case errors.Is(err, syncAvito.ErrTokenRefreshFailed):
			h.logger.Warn("POST /properties/{id}/avito/sync - Token refresh failed: owner_id=%d", ownerID)
			handlers.RespondError(w, http.StatusUnauthorized, msgReconnectRequired)

		case errors.Is(err, syncAvito.ErrInvalidInput):
			h.logger.Warn("POST /properties/{id}/avito/sync - Invalid window: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.As(err, &syncErr):
			// Ошибка выгрузки на стороне Авито: отдаем рекомендацию владельцу
			h.logger.Warn("POST /properties/{id}/avito/sync - Avito rejected sync: property_id=%d, status=%d",
				propertyID, syncErr.StatusCode)
			handlers.RespondError(w, http.StatusBadGateway, syncErr.Recommendation)

		default:
			h.logger.Error("POST /properties/{id}/avito/sync - Failed to sync: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/avito/sync - Synced successfully: property_id=%d, listing_id=%d, prices=%d, busy=%d",
		result.PropertyID, result.ListingID, result.PricesDays, result.BusyRanges)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
