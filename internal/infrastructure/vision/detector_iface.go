package vision

import "pore-bot/internal/domain/port"

// Проверка реализации интерфейса
var _ port.PoreDetector = (*GoCVDetector)(nil)
