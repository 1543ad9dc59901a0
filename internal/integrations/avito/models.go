package avito

import "github.com/m0rven/STR-PropertyManager/pkg/types"

// TokenResponse ответ token-эндпоинта Авито
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Секунды до истечения access_token
	TokenType    string `json:"token_type"`
}

// DayPrice цена на конкретную дату для выгрузки в Авито
type DayPrice struct {
	Date  types.DateString `json:"date"`
	Price int64            `json:"price"` // Авито принимает цены в целых рублях
}

// BusyRange занятый интервал дат для выгрузки в Авито.
// DateTo не включается в интервал, как и check_out в бронировании.
type BusyRange struct {
	DateFrom types.DateString `json:"date_from"`
	DateTo   types.DateString `json:"date_to"`
}

// ErrorResponse модель ошибки от API Авито
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
