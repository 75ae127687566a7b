package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/livingprogress/mentorme-api/model"
)

// CleanupExpiredTokens purges blacklist entries whose tokens have expired.
// An expired token fails validation on its own, so the row only exists to
// block replay before expiry.
func (m *CronManager) CleanupExpiredTokens() {
	jobName := "cleanup_expired_tokens"

	result := m.db.Where("expires_at < ?", time.Now()).Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to clean token blacklist: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired tokens", result.RowsAffected))
}

// CleanupOldData removes old data to keep the database clean
// Runs daily at 2 AM
func (m *CronManager) CleanupOldData() {
	jobName := "cleanup_old_data"

	totalCleaned := 0

	// 1. Old cron job logs (keep only last 90 days)
	cutoffLogs := time.Now().Add(-90 * 24 * time.Hour)
	result := m.db.Unscoped().Where("created_at < ?", cutoffLogs).Delete(&model.CronJobLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean cron logs: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d old cron logs", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	// 2. Old admin audit logs (keep only last 180 days)
	cutoffAudit := time.Now().Add(-180 * 24 * time.Hour)
	result = m.db.Unscoped().Where("created_at < ?", cutoffAudit).Delete(&model.AdminAuditLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean audit logs: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d old audit logs", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	// 3. Soft-deleted institutions past the recovery window (30 days)
	cutoffDeleted := time.Now().Add(-30 * 24 * time.Hour)
	result = m.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoffDeleted).
		Delete(&model.Institution{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to purge deleted institutions: %v", result.Error)
	} else {
		log.Printf("[CRON] Purged %d deleted institutions", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	m.logJobComplete(jobName, fmt.Sprintf("Cleaned up %d total records", totalCleaned))
}
