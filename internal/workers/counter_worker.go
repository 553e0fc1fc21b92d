package workers

import (
	"context"
	"time"

	celebrityPort "celebnetwork/internal/ports/celebrity"

	"go.uber.org/zap"
)

// CounterWorker شمارنده‌های denormalized را با منبع اصلی همگام نگه می‌دارد:
// بازدیدهای بافرشده در Redis را به دیتابیس منتقل می‌کند و followers_count را از جدول followings بازسازی می‌کند
type CounterWorker struct {
	CelebrityRepo celebrityPort.CelebrityRepository
	Views         celebrityPort.ViewCounter
	Cache         celebrityPort.FeaturedCache // اختیاری
	Interval      time.Duration
	Logger        *zap.Logger
}

func NewCounterWorker(
	celebrityRepo celebrityPort.CelebrityRepository,
	views celebrityPort.ViewCounter,
	cache celebrityPort.FeaturedCache,
	interval time.Duration,
	logger *zap.Logger,
) *CounterWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterWorker{
		CelebrityRepo: celebrityRepo,
		Views:         views,
		Cache:         cache,
		Interval:      interval,
		Logger:        logger,
	}
}

// Run تا لغو ctx هر Interval یک بار اجرا می‌شود
func (w *CounterWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 CounterWorker started", zap.Duration("interval", w.Interval))

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// بازدیدهای باقی‌مانده قبل از خروج منتقل شوند
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flushViews(flushCtx)
			cancel()
			w.Logger.Info("🛑 CounterWorker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce یک دور کامل؛ تعداد بازدیدهای منتقل‌شده و سطرهای اصلاح‌شده را برمی‌گرداند
func (w *CounterWorker) RunOnce(ctx context.Context) (int64, int64) {
	flushed := w.flushViews(ctx)

	fixed, err := w.CelebrityRepo.ReconcileFollowerCounts(ctx)
	if err != nil {
		w.Logger.Error("❌ Error reconciling follower counts", zap.Error(err))
	} else if fixed > 0 {
		w.Logger.Warn("⚠️ Follower counts drifted and were corrected", zap.Int64("rows", fixed))
	}

	if fixed > 0 && w.Cache != nil {
		if err := w.Cache.Invalidate(ctx); err != nil {
			w.Logger.Warn("⚠️ Could not invalidate featured cache", zap.Error(err))
		}
	}
	return flushed, fixed
}

func (w *CounterWorker) flushViews(ctx context.Context) int64 {
	if w.Views == nil {
		return 0
	}

	pending, err := w.Views.Drain(ctx)
	if err != nil {
		w.Logger.Error("❌ Error draining profile views", zap.Error(err))
	}

	var total int64
	for celebrityID, n := range pending {
		if err := w.CelebrityRepo.AddProfileViews(ctx, celebrityID, n); err != nil {
			w.Logger.Error("❌ Error adding profile views", zap.String("celebrityID", celebrityID), zap.Error(err))
			// برای دور بعد به Redis برمی‌گردند
			if rerr := w.Views.Restore(ctx, celebrityID, n); rerr != nil {
				w.Logger.Error("❌ Lost profile views", zap.String("celebrityID", celebrityID), zap.Int64("views", n), zap.Error(rerr))
			}
			continue
		}
		total += n
	}

	if total > 0 {
		w.Logger.Info("✅ Flushed profile views", zap.Int("celebrities", len(pending)), zap.Int64("views", total))
	}
	return total
}
