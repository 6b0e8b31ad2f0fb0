package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "pore-bot/internal/application"
	"pore-bot/internal/container"
	"pore-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для измерения отверстий лейки душа по фотографии.

📸 Отправьте /measure, затем фото лицевой панели лейки — я посчитаю размеры отверстий.

📋 Команды:
/measure — начать измерение
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Сфотографируйте лейку сверху вместе с эталонной пластиной
2️⃣ Отправьте /measure, затем фото
3️⃣ Вы получите отчёт: масштаб, размеры и количество отверстий по зонам

💡 Области можно задать в подписи к фото:
ref:x,y,w,h zone:x,y,w,h zone:x,y,w,h
Без подписи используются области из настроек.

💡 Рекомендации:
• Снимайте строго сверху при хорошем освещении
• Эталонная пластина должна попадать в кадр целиком

📋 Команды:
/measure — начать измерение
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото лейки с эталонной пластиной."
	msgCancelled       = "❌ Операция отменена. Отправьте /measure для нового измерения."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото лейки для измерения отверстий."
	msgUseMeasure      = "ℹ️ Сначала отправьте /measure, затем пришлите фото."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoRegions       = "⚠️ Не заданы области измерения. Укажите их в подписи к фото: ref:x,y,w,h zone:x,y,w,h"
	msgBadCaption      = "⚠️ Не удалось разобрать области из подписи. Формат: ref:x,y,w,h zone:x,y,w,h"
	msgCalibration     = "⚠️ Калибровка не удалась: в эталонной области не найдено отверстий. Проверьте кадр и области."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api           *tgbotapi.BotAPI
	services      *container.Container
	defaultLayout *entity.RegionLayout
}

// NewBot создаёт нового бота. defaultLayout может быть nil — тогда области
// обязаны приходить в подписи к фото.
func NewBot(token string, services *container.Container, defaultLayout *entity.RegionLayout) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		services:      services,
		defaultLayout: defaultLayout,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if msg.Photo != nil && len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if _, err := b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "measure":
		if _, err := b.services.UserService.BeginMeasure(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		if _, err := b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	// Фото обрабатывается только после /measure.
	user, err := b.services.UserService.Get(ctx, userID, chatID)
	if err != nil {
		log.Printf("Error loading user: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	if !user.AwaitingPhoto() {
		b.sendMessage(chatID, msgUseMeasure)
		return
	}

	layout := b.defaultLayout
	if strings.TrimSpace(msg.Caption) != "" {
		parsed, err := ParseLayoutCaption(msg.Caption)
		if err != nil {
			b.sendMessage(chatID, msgBadCaption)
			return
		}
		layout = parsed
	}
	if layout == nil {
		b.sendMessage(chatID, msgNoRegions)
		return
	}

	if _, err := b.services.UserService.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		log.Printf("Error saving user: %v", err)
	}
	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.finishWithMessage(ctx, userID, chatID, msgProcessingError)
		return
	}

	out, err := b.services.MeasurementService.ProcessPhoto(ctx, imageData, *layout)
	if err != nil {
		log.Printf("Error processing photo: %v", err)
		if errors.Is(err, app.ErrCalibrationFailed) {
			b.finishWithMessage(ctx, userID, chatID, msgCalibration)
		} else {
			b.finishWithMessage(ctx, userID, chatID, msgProcessingError)
		}
		return
	}

	b.sendMessage(chatID, FormatReport(out.Result))
	if len(out.Highlighted) > 0 {
		b.sendPhoto(chatID, out.Highlighted)
	}

	if _, err := b.services.UserService.Cancel(ctx, userID, chatID); err != nil {
		log.Printf("Error saving user: %v", err)
	}
}

// finishWithMessage отправляет сообщение и возвращает пользователя в меню.
func (b *Bot) finishWithMessage(ctx context.Context, userID, chatID int64, text string) {
	b.sendMessage(chatID, text)
	if _, err := b.services.UserService.Cancel(ctx, userID, chatID); err != nil {
		log.Printf("Error saving user: %v", err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет картинку с подсветкой
func (b *Bot) sendPhoto(chatID int64, data []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "pores.jpg", Bytes: data})
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
