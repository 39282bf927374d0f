package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/conversation"
	"telegram-shift-bot/internal/handlers"
	"telegram-shift-bot/internal/schedule"
	"telegram-shift-bot/internal/scheduler"
	"telegram-shift-bot/internal/service"
	"telegram-shift-bot/internal/session"
	"telegram-shift-bot/internal/storage"
)

// httpTimeout bounds every Bot API call and must exceed the long-poll window.
const (
	pollTimeout = 60
	httpTimeout = (pollTimeout + 30) * time.Second
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll Telegram and announce shift changes",
	RunE:  runBot,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the stored schedule sorted by start time",
	RunE:  printSchedule,
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	store, closeStore, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint, newHTTPClient())
	if err != nil {
		return fmt.Errorf("telegram login: %w", err)
	}
	log.Info("bot authorized",
		zap.String("account", bot.Self.UserName),
		zap.Int64("group", cfg.GroupChatID),
		zap.Int("thread", cfg.ThreadID),
		zap.String("storage", cfg.Storage.Driver))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	notifier := scheduler.NewNotifier(store, scheduler.NewGroupAnnouncer(bot, cfg.GroupChatID, cfg.ThreadID), clock, log)
	sched, err := scheduler.Start(ctx, notifier, cfg.Scheduler.Interval, clock, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Warn("scheduler shutdown", zap.Error(err))
		}
	}()

	shifts := service.NewShifts(store, log)
	h := handlers.New(bot, conversation.New(session.NewMemory(), shifts, log), shifts, cfg.IsAdmin, log)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()

	h.Listen(ctx, updates)
	log.Info("shutting down")
	return nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

func printSchedule(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, closeStore, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	shifts, err := service.NewShifts(store, log).List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(shifts) == 0 {
		fmt.Fprintln(out, "schedule is empty")
		return nil
	}
	fmt.Fprintf(out, "%-4s %-12s %s\n", "ID", "TIME", "MANAGER")
	for _, s := range schedule.SortByStart(shifts) {
		fmt.Fprintf(out, "%-4d %-12s @%s\n", s.ID, s.Interval(), s.Username)
	}
	return nil
}
