package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/studypay-service/internal/repository"
	"github.com/spec-kit/studypay-service/internal/service"
)

// ErrChatNotLinked is returned when no chat is registered for a telegram handle.
var ErrChatNotLinked = errors.New("telegram chat not linked")

// Bot bridges the service layer and the Telegram API. It records chat links
// on /start so later notifications can reach the user, and serves password
// resets via /resetpassword.
type Bot struct {
	api           *tgbotapi.BotAPI
	links         repository.ChatLinkRepository
	auth          *service.AuthService
	logger        *zap.Logger
	resetLinkBase string
}

func New(token string, links repository.ChatLinkRepository, authSvc *service.AuthService, logger *zap.Logger, resetLinkBase string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Bot{
		api:           api,
		links:         links,
		auth:          authSvc,
		logger:        logger,
		resetLinkBase: resetLinkBase,
	}, nil
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := b.api.GetUpdatesChan(updateCfg)

	b.logger.Info("telegram bot started", zap.String("username", b.api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "resetpassword":
		b.handleResetPassword(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Available: /start, /resetpassword")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	telegram := handleFromMessage(msg)
	if telegram == "" {
		b.reply(msg.Chat.ID, "Please set a Telegram username before linking your account.")
		return
	}
	link := &repository.ChatLink{Telegram: telegram, ChatID: msg.Chat.ID}
	if err := b.links.Upsert(ctx, link); err != nil {
		b.logger.Error("chat link upsert failed", zap.String("telegram", telegram), zap.Error(err))
		b.reply(msg.Chat.ID, "Something went wrong, please try again later.")
		return
	}
	b.reply(msg.Chat.ID, "Hello! Your chat is linked. You will receive order updates here.")
}

func (b *Bot) handleResetPassword(ctx context.Context, msg *tgbotapi.Message) {
	telegram := handleFromMessage(msg)
	if telegram == "" {
		b.reply(msg.Chat.ID, "Please set a Telegram username first.")
		return
	}
	token, _, err := b.auth.IssueResetToken(ctx, telegram)
	if err != nil {
		b.logger.Warn("reset token request failed", zap.String("telegram", telegram), zap.Error(err))
		b.reply(msg.Chat.ID, "No account is linked to this Telegram username.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("Follow this link to reset your password (valid for a few minutes): %s?token=%s", b.resetLinkBase, token))
}

// Notify sends a message to the chat linked to the telegram handle.
func (b *Bot) Notify(ctx context.Context, telegram, text string) error {
	link, err := b.links.GetByTelegram(ctx, telegram)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrChatNotLinked
		}
		return err
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(link.ChatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("telegram reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func handleFromMessage(msg *tgbotapi.Message) string {
	if msg.From == nil || msg.From.UserName == "" {
		return ""
	}
	return "@" + msg.From.UserName
}
