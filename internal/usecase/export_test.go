package usecase

import "time"

// SetClock: подмена часов и генератора id в тестах.
func (s *OrderService) SetClock(now func() time.Time, newID func() string) {
	s.now = now
	s.newID = newID
}
