// Package bot binds the conversation engine to the Telegram API.
package bot

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/dkotenko/shopbot/internal/dialog"
)

const pollTimeout = 10 * time.Second

// Bot is the Telegram transport. All dialog logic lives in the engine; the
// bot only routes updates and renders replies.
type Bot struct {
	tb     *tele.Bot
	engine *dialog.Engine
}

// New creates a long-polling Telegram bot wired to the engine.
func New(token string, engine *dialog.Engine) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b := &Bot{tb: tb, engine: engine}
	b.registerHandlers()
	return b, nil
}

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", func(c tele.Context) error {
		return b.send(c, b.engine.Welcome(c.Sender().ID))
	})
	b.tb.Handle("/addshop", func(c tele.Context) error {
		return b.send(c, b.engine.StartAddShop(c.Sender().ID))
	})
	b.tb.Handle("/findshops", func(c tele.Context) error {
		return b.send(c, b.engine.StartFindShops(c.Sender().ID))
	})
	b.tb.Handle("/cancel", func(c tele.Context) error {
		return b.send(c, b.engine.CancelDialog(c.Sender().ID))
	})
	b.tb.Handle(tele.OnText, func(c tele.Context) error {
		reply, handled := b.engine.HandleText(context.Background(), c.Sender().ID, c.Text())
		if !handled {
			// Text outside any dialog is ignored.
			return nil
		}
		return b.send(c, reply)
	})
}

// send renders a reply, attaching a one-time keyboard when the engine
// suggests choices and clearing any previous keyboard otherwise.
func (b *Bot) send(c tele.Context, reply dialog.Reply) error {
	if len(reply.Choices) == 0 {
		return c.Send(reply.Text, &tele.ReplyMarkup{RemoveKeyboard: true})
	}

	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	row := tele.Row{}
	for _, choice := range reply.Choices {
		row = append(row, markup.Text(choice))
	}
	markup.Reply(row)
	return c.Send(reply.Text, markup)
}

// Start begins long polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.tb.Start()
}

// Stop terminates long polling.
func (b *Bot) Stop() {
	b.tb.Stop()
}
