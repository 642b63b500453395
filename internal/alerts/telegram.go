// Package alerts sends Telegram notifications when tracked teams go live.
// Delivery uses the Bot API with simple linear-backoff retries; a per-match
// cooldown prevents re-alerting the same fixture on every poll.
package alerts

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/models"
)

// Notifier sends live-match alerts to a Telegram chat.
type Notifier struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	cooldown       time.Duration
	log            *logger.Logger

	mu       sync.Mutex
	notified map[int64]time.Time // match ID -> last alert time
}

// NewNotifier creates a Telegram notifier.
func NewNotifier(botToken, chatID string, maxRetries int, retryDelayBase, cooldown time.Duration, log *logger.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}
	if cooldown <= 0 {
		cooldown = 3 * time.Hour
	}

	return &Notifier{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		cooldown:       cooldown,
		log:            log,
		notified:       make(map[int64]time.Time),
	}, nil
}

// NotifyLive alerts the chat about live matches not already alerted within the
// cooldown window. Delivery failures are logged, never propagated; alerting is
// best-effort and must not disturb the fetch path.
func (n *Notifier) NotifyLive(matches []models.Match) {
	fresh := n.filterFresh(matches, time.Now())
	if len(fresh) == 0 {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, formatLiveMessage(fresh))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < n.maxRetries; i++ {
		if _, err := n.bot.Send(msg); err == nil {
			n.recordNotified(fresh, time.Now())
			return
		} else {
			lastErr = err
		}
		time.Sleep(n.retryDelayBase * time.Duration(i+1))
	}

	n.log.Error("Failed to send live alert after %d retries: %v", n.maxRetries, lastErr)
}

// filterFresh returns the matches whose last alert is older than the cooldown.
func (n *Notifier) filterFresh(matches []models.Match, now time.Time) []models.Match {
	n.mu.Lock()
	defer n.mu.Unlock()

	var fresh []models.Match
	for _, m := range matches {
		if sentAt, ok := n.notified[m.ID]; ok && now.Sub(sentAt) < n.cooldown {
			continue
		}
		fresh = append(fresh, m)
	}
	return fresh
}

func (n *Notifier) recordNotified(matches []models.Match, now time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range matches {
		n.notified[m.ID] = now
	}
}

// formatLiveMessage renders the alert body in MarkdownV2.
func formatLiveMessage(matches []models.Match) string {
	message := "⚽ *Your squad is playing now\\!*\n\n"

	for _, m := range matches {
		score := ""
		if m.Score.Home != nil && m.Score.Away != nil {
			score = escapeMarkdownV2(fmt.Sprintf(" %d-%d", *m.Score.Home, *m.Score.Away))
		}
		message += fmt.Sprintf("🔴 %s vs %s%s\n",
			escapeMarkdownV2(m.HomeTeam), escapeMarkdownV2(m.AwayTeam), score)
		if m.Competition != "" {
			message += fmt.Sprintf("   🏆 %s\n", escapeMarkdownV2(m.Competition))
		}
	}

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
