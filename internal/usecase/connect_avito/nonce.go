package connect_avito

import (
	"sync"
	"time"
)

// stateTTL время жизни выданного state: владелец должен успеть
// пройти авторизацию на Авито и вернуться по колбеку
const stateTTL = 15 * time.Minute

// nonceStore одноразовые nonce выданных state.
// Хранится в памяти процесса: колбек возвращается на тот же инстанс,
// что выдал URL авторизации.
type nonceStore struct {
	mu     sync.Mutex
	issued map[string]time.Time
}

func newNonceStore() *nonceStore {
	return &nonceStore{issued: make(map[string]time.Time)}
}

// Issue запоминает выданный nonce
func (s *nonceStore) Issue(nonce string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[nonce] = now
	s.purge(now)
}

// Consume гасит nonce и возвращает true, если он был выдан
// и еще не истек. Повторный вызов с тем же nonce возвращает false.
func (s *nonceStore) Consume(nonce string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.issued[nonce]
	if !ok {
		return false
	}
	delete(s.issued, nonce)

	return now.Sub(issuedAt) <= stateTTL
}

// purge удаляет протухшие nonce; вызывается под мьютексом
func (s *nonceStore) purge(now time.Time) {
	for nonce, issuedAt := range s.issued {
		if now.Sub(issuedAt) > stateTTL {
			delete(s.issued, nonce)
		}
	}
}
