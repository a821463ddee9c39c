package notifysvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	loansvc "elibrary/service/loan"
	"elibrary/util/httpx"
)

// LoanSource is the slice of the loan service the notifier needs.
type LoanSource interface {
	Overdue(ctx context.Context) ([]loansvc.OverdueRow, error)
}

// Notifier periodically reports overdue loans to a Telegram chat so the
// librarian can chase returns without watching the dashboard.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	loans  LoanSource
	log    *slog.Logger
}

func New(token string, chatID int64, loans LoanSource, log *slog.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpx.Client())
	if err != nil {
		return nil, fmt.Errorf("bot init: %w", err)
	}
	return &Notifier{api: api, chatID: chatID, loans: loans, log: log}, nil
}

// Run blocks until ctx is canceled, sending a digest every interval.
func (n *Notifier) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := n.notifyOnce(ctx); err != nil {
				n.log.Error("overdue digest failed", "err", err)
			}
		}
	}
}

func (n *Notifier) notifyOnce(ctx context.Context) error {
	rows, err := n.loans.Overdue(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overdue loans: %d\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(&b, "#%d %q by %s, due %s, %d day(s) late, fine %d\n",
			r.ID, r.BookTitle, r.Username, r.DueDate, r.DaysLate, r.ProjectedFine)
	}

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	n.log.Info("overdue digest sent", "loans", len(rows))
	return nil
}
