package domain

import "time"

// AvitoAccount OAuth-токены подключенного аккаунта Авито (по одному на владельца)
type AvitoAccount struct {
	OwnerID      int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsExpired returns true if the access token has expired by the given moment.
// Запас в минуту закрывает случай истечения токена во время запроса.
func (a *AvitoAccount) IsExpired(now time.Time) bool {
	return !now.Add(time.Minute).Before(a.ExpiresAt)
}
