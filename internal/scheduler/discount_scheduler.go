package scheduler

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DiscountScheduler deactivates expired discount codes on a schedule so
// the back office list stays honest even for codes no cart touches.
type DiscountScheduler struct {
	cron            *cron.Cron
	discountService service.DiscountService
}

func NewDiscountScheduler(discountService service.DiscountService) *DiscountScheduler {
	return &DiscountScheduler{
		cron:            cron.New(),
		discountService: discountService,
	}
}

// Start registers the nightly sweep and runs one immediately so a restart
// never leaves stale codes active until midnight.
func (s *DiscountScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", s.sweep)
	if err != nil {
		logger.Error("Failed to register discount expiry job", err, nil)
		return err
	}

	go s.sweep()

	s.cron.Start()
	logger.Info("Discount expiry scheduler started (daily at 00:05)", nil)
	return nil
}

func (s *DiscountScheduler) sweep() {
	count, err := s.discountService.DeactivateExpired()
	if err != nil {
		logger.Error("Scheduled discount expiry sweep failed", err, nil)
		return
	}
	if count > 0 {
		logger.Info("Discount expiry sweep finished", map[string]interface{}{
			"deactivated": count,
		})
	}
}

func (s *DiscountScheduler) Stop() {
	logger.Info("Stopping discount expiry scheduler", nil)
	s.cron.Stop()
}
