// Package telegram delivers charts and exports to chats through the Telegram
// Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

const pollTimeout = 60

// Reporter is the subset of the report service the bot renders through.
type Reporter interface {
	Chart(ctx context.Context, kind report.ChartKind, w analytics.Window) (*render.Artifact, error)
	Export(ctx context.Context, format report.Format, dataset report.Dataset, w analytics.Window) (*render.Artifact, error)
	Now() time.Time
}

type Bot struct {
	api     *tgbotapi.BotAPI
	reports Reporter
	allowed map[int64]bool
}

// NewAPI connects to the Bot API. An empty endpoint selects the public one; a
// custom endpoint is a format string taking the token and the method name.
func NewAPI(token, endpoint string, client *http.Client) (*tgbotapi.BotAPI, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	if client == nil {
		client = &http.Client{Timeout: (pollTimeout + 10) * time.Second}
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return api, nil
}

// NewBot serves only the chats in allowedChats.
func NewBot(api *tgbotapi.BotAPI, reports Reporter, allowedChats []int64) *Bot {
	allowed := make(map[int64]bool, len(allowedChats))
	for _, id := range allowedChats {
		allowed[id] = true
	}

	return &Bot{api: api, reports: reports, allowed: allowed}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout

	updates := b.api.GetUpdatesChan(u)

	slog.Info("telegram bot started", "username", b.api.Self.UserName, "allowed_chats", len(b.allowed))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			b.Handle(ctx, update)
		}
	}
}

// Handle processes a single update.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	chatID, ok := chatOf(update)
	if !ok {
		return
	}

	if !b.allowed[chatID] {
		slog.Warn("telegram update from unknown chat", "chat_id", chatID)
		b.reply(chatID, "This chat is not authorized.")

		return
	}

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func chatOf(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	}

	return 0, false
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText)
	case "analytics":
		if kind := report.ChartKind(msg.CommandArguments()); kind.Valid() {
			b.sendMenu(chatID, "Choose a period for "+kind.Label()+":", timeframeKeyboard(chartPrefix+string(kind)))
			return
		}

		b.sendMenu(chatID, "📊 Let's analyse\n\nChoose a plot type:", chartKeyboard())
	case "exports":
		b.sendMenu(chatID, "📁 Choose export format:", formatKeyboard())
	case "budget":
		b.sendChart(ctx, chatID, report.ChartBudgetVsActual, analytics.TimeframeThisMonth)
	default:
		b.reply(chatID, "Unknown command. Try /help.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		slog.Warn("answering callback", "error", err)
	}

	chatID := cb.Message.Chat.ID

	a, err := parseAction(cb.Data)
	if err != nil {
		slog.Warn("unexpected callback", "data", cb.Data, "error", err)
		return
	}

	switch {
	case a.chart != "" && !a.hasTimeframe:
		b.sendMenu(chatID, "Choose a period for "+a.chart.Label()+":", timeframeKeyboard(chartPrefix+string(a.chart)))
	case a.chart != "":
		b.sendChart(ctx, chatID, a.chart, a.timeframe)
	case a.format == report.FormatCSV && a.dataset == "":
		b.sendMenu(chatID, "Choose data to export:", datasetKeyboard())
	default:
		b.sendExport(ctx, chatID, a.format, a.dataset)
	}
}

func (b *Bot) sendChart(ctx context.Context, chatID int64, kind report.ChartKind, tf analytics.Timeframe) {
	art, err := b.reports.Chart(ctx, kind, tf.Window(b.reports.Now()))
	if err != nil {
		b.fail(chatID, "Failed to generate "+kind.Label(), err)
		return
	}

	if err := b.SendArtifact(chatID, art); err != nil {
		slog.Error("sending chart", "kind", kind, "error", err)
	}
}

// Exports cover all recorded data.
func (b *Bot) sendExport(ctx context.Context, chatID int64, format report.Format, dataset report.Dataset) {
	art, err := b.reports.Export(ctx, format, dataset, analytics.Window{})
	if err != nil {
		b.fail(chatID, "Failed to generate export", err)
		return
	}

	if err := b.SendArtifact(chatID, art); err != nil {
		slog.Error("sending export", "format", format, "error", err)
	}
}

// SendArtifact posts art to chatID, as a photo for images and as a document
// otherwise.
func (b *Bot) SendArtifact(chatID int64, art *render.Artifact) error {
	file := tgbotapi.FileBytes{Name: art.Filename, Bytes: art.Data}

	var msg tgbotapi.Chattable = tgbotapi.NewDocument(chatID, file)
	if art.MIMEType == render.MIMEPNG {
		msg = tgbotapi.NewPhoto(chatID, file)
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("sending %s: %w", art.Filename, err)
	}

	return nil
}

// SendText posts a plain message to chatID.
func (b *Bot) SendText(chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	return nil
}

func (b *Bot) fail(chatID int64, what string, err error) {
	var verr *analytics.ValidationError

	switch {
	case errors.Is(err, analytics.ErrNoData):
		b.reply(chatID, "No expenses found for the selected period.")
	case errors.As(err, &verr):
		b.reply(chatID, "❌ "+verr.Error())
	default:
		slog.Error(what, "error", err)
		b.reply(chatID, "❌ "+what)
	}
}

func (b *Bot) sendMenu(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard

	if _, err := b.api.Send(msg); err != nil {
		slog.Error("sending menu", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.SendText(chatID, text); err != nil {
		slog.Error("sending reply", "chat_id", chatID, "error", err)
	}
}

const helpText = `Money Manager

/analytics - charts for a period
/budget - budget vs actual for this month
/exports - download your data as PDF, Excel or CSV`
