package checkoutControllers

import (
	"errors"
	"log"
	"time"

	"github.com/Rajatkhanna801/store-backend/errs"
	"github.com/Rajatkhanna801/store-backend/metrics"
	"github.com/Rajatkhanna801/store-backend/models"
	"gorm.io/gorm"
)

// SweepExpiredCheckouts releases every active checkout past its deadline.
// Each checkout is released in its own transaction so a failure on one
// never aborts processing of the others. Returns how many were released
// and how many failed.
func SweepExpiredCheckouts(db *gorm.DB) (processed, failed int) {
	var ids []uint
	if err := db.Model(&models.Checkout{}).
		Where("status = ? AND expires_at < ?", models.CheckoutStatusActive, time.Now()).
		Pluck("id", &ids).Error; err != nil {
		log.Printf("❌ Sweeper: failed to query expired checkouts: %v", err)
		return 0, 0
	}
	if len(ids) == 0 {
		return 0, 0
	}

	log.Printf("⏳ Sweeper: found %d expired checkout(s)", len(ids))
	for _, id := range ids {
		if err := ReleaseCheckout(db, id); err != nil {
			// Someone else released or finalized it between the query and
			// now; nothing left to do for this checkout.
			if errors.Is(err, errs.ErrCheckoutNotActive) {
				continue
			}
			log.Printf("❌ Sweeper: failed to release checkout %d: %v", id, err)
			metrics.SweepFailures.Inc()
			failed++
			continue
		}
		processed++
	}
	log.Printf("✅ Sweeper: released %d expired checkout(s), %d failure(s)", processed, failed)
	return processed, failed
}

// StartCheckoutSweeper runs SweepExpiredCheckouts on a fixed cadence until
// the process exits. Run it in its own goroutine; failed checkouts are
// simply retried on the next tick.
func StartCheckoutSweeper(db *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		SweepExpiredCheckouts(db)
	}
}
