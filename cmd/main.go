package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"pore-bot/config"
	telegram "pore-bot/internal/api"
	"pore-bot/internal/container"
	"pore-bot/internal/domain/entity"
	"pore-bot/internal/infrastructure/storage"
	"pore-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище пользователей и детектор отверстий
	userRepo := storage.NewMemoryUserRepository()
	detector := vision.NewGoCVDetector()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detector, cfg.ReferenceDiameterMm, cfg.GroupTolerancePx)

	layout, err := defaultLayout(cfg)
	if err != nil {
		log.Fatalf("Failed to parse regions: %v", err)
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, layout)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}

// defaultLayout собирает разметку по умолчанию из настроек.
// Возвращает nil, если области не заданы — тогда их ждут в подписи к фото.
func defaultLayout(cfg *config.Config) (*entity.RegionLayout, error) {
	if cfg.ReferenceRegion == "" || cfg.MeasureRegions == "" {
		return nil, nil
	}

	ref, err := entity.ParseRect(cfg.ReferenceRegion)
	if err != nil {
		return nil, fmt.Errorf("REFERENCE_REGION: %w", err)
	}

	opts, err := zoneOptions(cfg)
	if err != nil {
		return nil, err
	}

	refOpts := entity.DefaultDetectionOptions()
	refOpts.MinRadiusPx = cfg.MinRadiusPx

	layout := &entity.RegionLayout{
		Reference:        ref,
		ReferenceOptions: refOpts,
	}
	for i, s := range strings.Split(cfg.MeasureRegions, ";") {
		rect, err := entity.ParseRect(s)
		if err != nil {
			return nil, fmt.Errorf("MEASURE_REGIONS[%d]: %w", i, err)
		}
		layout.Zones = append(layout.Zones, entity.MeasureZone{
			Name:    fmt.Sprintf("зона %d", i+1),
			Rect:    rect,
			Options: opts,
		})
	}

	return layout, nil
}

// zoneOptions переводит настройки порога в параметры детектора для зон.
func zoneOptions(cfg *config.Config) (entity.DetectionOptions, error) {
	opts := entity.DefaultDetectionOptions()
	opts.MinRadiusPx = cfg.MinRadiusPx
	opts.OpenKernelSize = cfg.ZoneOpenKernel

	if cfg.ZoneThreshold != "" && cfg.ZoneThreshold != "auto" {
		v, err := strconv.ParseFloat(cfg.ZoneThreshold, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid ZONE_THRESHOLD: %q", cfg.ZoneThreshold)
		}
		opts.Mode = entity.ThresholdFixed
		opts.FixedThreshold = v
	}

	return opts, nil
}
