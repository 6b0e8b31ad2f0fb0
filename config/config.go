package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Значения по умолчанию для эталонной пластины и группировки.
const (
	DefaultReferenceDiameterMm = 10.0
	DefaultGroupTolerancePx    = 1.0
)

type Config struct {
	TelegramToken string

	// Известный диаметр отверстий эталонной пластины, мм.
	ReferenceDiameterMm float64
	// Допуск группировки радиусов, в пикселях снимка.
	GroupTolerancePx float64

	// Разметка по умолчанию, если области не заданы в подписи к фото.
	// Формат области: "x,y,w,h"; зоны разделяются точкой с запятой.
	ReferenceRegion string
	MeasureRegions  string

	// Порог яркости для зон измерения: "auto" или число 0–255.
	// Фиксированный порог нужен зонам с мелкими бледными отверстиями,
	// которые автоматический порог сливает с фоном.
	ZoneThreshold string
	// Размер ядра морфологического открытия для зон измерения.
	ZoneOpenKernel int
	// Минимальный радиус отверстия в пикселях.
	MinRadiusPx float64
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		ReferenceDiameterMm: DefaultReferenceDiameterMm,
		GroupTolerancePx:    DefaultGroupTolerancePx,
		ReferenceRegion:     os.Getenv("REFERENCE_REGION"),
		MeasureRegions:      os.Getenv("MEASURE_REGIONS"),
		ZoneThreshold:       getEnvDefault("ZONE_THRESHOLD", "auto"),
		ZoneOpenKernel:      3,
		MinRadiusPx:         2.0,
	}

	var err error
	if cfg.ReferenceDiameterMm, err = getEnvFloat("REFERENCE_DIAMETER_MM", cfg.ReferenceDiameterMm); err != nil {
		return nil, err
	}
	if cfg.GroupTolerancePx, err = getEnvFloat("GROUP_TOLERANCE_PX", cfg.GroupTolerancePx); err != nil {
		return nil, err
	}
	if cfg.MinRadiusPx, err = getEnvFloat("MIN_RADIUS_PX", cfg.MinRadiusPx); err != nil {
		return nil, err
	}
	if cfg.ZoneOpenKernel, err = getEnvInt("ZONE_OPEN_KERNEL", cfg.ZoneOpenKernel); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}
