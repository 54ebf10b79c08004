package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
)

// RegisterBirthdaySweeper runs the birthday greeting producer on a fixed
// interval until ctx is cancelled. The usecase dedupes by day, so a short
// interval only controls how soon after midnight greetings go out.
func RegisterBirthdaySweeper(ctx context.Context, cfg config.Config, routine *goroutine.Manager, uc ucBirthday) {
	interval := cfg.GetMinute("modules.notification.birthday_sweep_interval_minutes")
	if interval <= 0 {
		interval = time.Hour
	}

	routine.Go(ctx, func(gCtx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if err := uc.ProduceBirthdayGreetings(gCtx); err != nil {
					slog.ErrorContext(gCtx, "birthday sweep failed", "error", err)
				}
			}
		}
	})
}
