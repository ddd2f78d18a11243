package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
)

// TelegramBot answers report commands in chat and pushes scheduled reports to
// the configured chat.
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
	logger  *logging.Logger
}

func NewTelegramBot(token string, chatID int64, fantasyService *service.FantasyService, logger *logging.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}

	if logger == nil {
		logger = logging.Default()
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(fantasyService),
		chatID:  chatID,
		logger:  logger,
	}, nil
}

// Start long-polls for updates until ctx is cancelled. Only commands are
// answered; other messages are ignored.
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			t.handleUpdate(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	msg := t.handler.HandleCommand(ctx, update)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Error sending message", "error", err, "command", update.Message.Command(), "chat_id", msg.ChatID)
	}
}

// SendMessage posts an already formatted Markdown report to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		t.logger.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.bot.Send(msg)
	if err != nil {
		t.logger.Error("Error sending message", "error", err)
	}
	return err
}
