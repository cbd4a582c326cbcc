package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/upsight-uz/portal-api/model"
)

// CleanupExpiredTokens prunes blacklist entries whose tokens have
// expired on their own. Runs hourly.
func (m *CronManager) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "cleanup_expired_tokens"

	before, err := m.blacklist.GetBlacklistedTokenCount(ctx)
	if err != nil {
		log.Printf("[CRON] Failed to count blacklisted tokens: %v", err)
	}

	if err := m.blacklist.CleanupExpiredTokens(ctx); err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to prune token blacklist: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned expired tokens, %d active entries remain", before))
}

// CleanupOldData removes stale bookkeeping rows. Runs daily at 2 AM.
func (m *CronManager) CleanupOldData() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	jobName := "cleanup_old_data"

	totalCleaned := 0

	// 1. Blacklist rows long past expiry (older than 30 days)
	cutoffTokens := time.Now().Add(-30 * 24 * time.Hour)
	result := m.db.WithContext(ctx).
		Where("expires_at < ?", cutoffTokens).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean token blacklist: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d expired tokens", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	// 2. Old cron job logs (keep only last 90 days)
	cutoffLogs := time.Now().Add(-90 * 24 * time.Hour)
	result = m.db.WithContext(ctx).
		Where("created_at < ?", cutoffLogs).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean cron logs: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d old cron logs", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	m.logJobComplete(jobName, fmt.Sprintf("Cleaned up %d total records", totalCleaned))
}
