// Package notify pushes the finished slate to Telegram.
package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// Telegram caps a single message at 4096 chars; leave room for the header.
const maxGamesPerMessage = 60

// TelegramNotifier sends the daily consensus slate to a chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil when the bot cannot be reached, so a
// bad token degrades to a run without notifications.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// SendDailySlate posts the consensus predictions for a date, splitting
// into multiple messages when the slate is large.
func (n *TelegramNotifier) SendDailySlate(date time.Time, preds []models.ConsensusPrediction) error {
	if n == nil {
		return nil
	}
	if len(preds) == 0 {
		return n.send(fmt.Sprintf("🏀 *%s*\n\nNo games with usable predictions\\.",
			escapeMarkdown(date.Format("Monday, January 2"))))
	}

	for start := 0; start < len(preds); start += maxGamesPerMessage {
		end := start + maxGamesPerMessage
		if end > len(preds) {
			end = len(preds)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "🏀 *%s* \\(%d games\\)\n\n",
			escapeMarkdown(date.Format("Monday, January 2")), len(preds))

		for _, p := range preds[start:end] {
			b.WriteString(formatGame(p))
			b.WriteByte('\n')
		}

		if err := n.send(b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func formatGame(p models.ConsensusPrediction) string {
	home := escapeMarkdown(p.Matchup.HomeTeam)
	away := escapeMarkdown(p.Matchup.AwayTeam)

	switch p.Outcome() {
	case models.OutcomeHomeWin:
		return fmt.Sprintf("*%s %d* — %s %d", home, p.HomeScore, away, p.AwayScore)
	case models.OutcomeAwayWin:
		return fmt.Sprintf("%s %d — *%s %d*", home, p.HomeScore, away, p.AwayScore)
	default:
		return fmt.Sprintf("%s %d — %s %d \\(even\\)", home, p.HomeScore, away, p.AwayScore)
	}
}

// escapeMarkdown escapes MarkdownV2 special characters in dynamic text.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(s)
}
