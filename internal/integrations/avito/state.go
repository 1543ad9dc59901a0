package avito

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// StatePayload содержимое параметра state OAuth-авторизации.
// Кодируется в base64(JSON) при редиректе на Авито и
// декодируется обратно в колбеке, привязывая код к владельцу.
type StatePayload struct {
	OwnerID int64  `json:"ownerId"`
	Nonce   string `json:"nonce"`
}

// EncodeState кодирует state для OAuth-редиректа
func EncodeState(payload StatePayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal state: %v", ErrInternal, err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeState декодирует state из OAuth-колбека
func DecodeState(state string) (StatePayload, error) {
	var payload StatePayload

	raw, err := base64.URLEncoding.DecodeString(state)
	if err != nil {
		return payload, fmt.Errorf("%w: failed to decode base64: %v", ErrInvalidState, err)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: failed to unmarshal payload: %v", ErrInvalidState, err)
	}

	if payload.OwnerID <= 0 {
		return payload, fmt.Errorf("%w: missing owner id", ErrInvalidState)
	}

	return payload, nil
}
