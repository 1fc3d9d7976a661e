package sweeper

import (
	"fmt"
	"io"
	"os"
	"time"

	"gorm.io/gorm"

	"secrethouse/internal/metrics"
)

// Sweeper finds rows violating referential integrity: bookings whose user is
// gone, gifts whose user is gone, and bookings pointing at a gift that no
// longer exists. The first two are deleted in execute mode; the third is
// repaired by nulling gift_id.

const sampleLimit = 5

type Category struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	IDs   []int64 `json:"ids"` // first offenders, up to sampleLimit
}

type Report struct {
	OrphanBookings   Category `json:"orphan_bookings"`
	OrphanGifts      Category `json:"orphan_gifts"`
	DanglingGiftRefs Category `json:"dangling_gift_refs"`
}

func (r Report) Clean() bool {
	return r.OrphanBookings.Count == 0 && r.OrphanGifts.Count == 0 && r.DanglingGiftRefs.Count == 0
}

const (
	orphanBookingsWhere   = `user_id NOT IN (SELECT id FROM users)`
	orphanGiftsWhere      = `user_id NOT IN (SELECT id FROM users)`
	danglingGiftRefsWhere = `gift_id IS NOT NULL AND gift_id NOT IN (SELECT id FROM gifts)`
)

// Scan builds the report without touching any rows.
func Scan(db *gorm.DB) (*Report, error) {
	report := &Report{}

	var err error
	if report.OrphanBookings, err = scanCategory(db, "orphan_bookings", "bookings", orphanBookingsWhere); err != nil {
		return nil, err
	}
	if report.OrphanGifts, err = scanCategory(db, "orphan_gifts", "gifts", orphanGiftsWhere); err != nil {
		return nil, err
	}
	if report.DanglingGiftRefs, err = scanCategory(db, "dangling_gift_refs", "bookings", danglingGiftRefsWhere); err != nil {
		return nil, err
	}
	return report, nil
}

func scanCategory(db *gorm.DB, name, table, where string) (Category, error) {
	cat := Category{Name: name}

	if err := db.Raw(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table, where)).Scan(&cat.Count).Error; err != nil {
		return cat, fmt.Errorf("scan %s: %w", name, err)
	}
	if err := db.Raw(fmt.Sprintf(`SELECT id FROM %s WHERE %s ORDER BY id LIMIT %d`, table, where, sampleLimit)).Scan(&cat.IDs).Error; err != nil {
		return cat, fmt.Errorf("scan %s ids: %w", name, err)
	}
	return cat, nil
}

// Execute repairs everything the scan finds inside a single transaction and
// returns the pre-repair report. On any error nothing is committed.
func Execute(db *gorm.DB) (*Report, error) {
	report, err := Scan(db)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM bookings WHERE ` + orphanBookingsWhere).Error; err != nil {
			return fmt.Errorf("delete orphan bookings: %w", err)
		}
		if err := tx.Exec(`DELETE FROM gifts WHERE ` + orphanGiftsWhere).Error; err != nil {
			return fmt.Errorf("delete orphan gifts: %w", err)
		}
		if err := tx.Exec(`UPDATE bookings SET gift_id = NULL WHERE ` + danglingGiftRefsWhere).Error; err != nil {
			return fmt.Errorf("null dangling gift refs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SweeperRepairsTotal.WithLabelValues("orphan_bookings").Add(float64(report.OrphanBookings.Count))
	metrics.SweeperRepairsTotal.WithLabelValues("orphan_gifts").Add(float64(report.OrphanGifts.Count))
	metrics.SweeperRepairsTotal.WithLabelValues("dangling_gift_refs").Add(float64(report.DanglingGiftRefs.Count))
	return report, nil
}

// BackupFile copies the database file aside before a destructive run. The
// name pattern is <path>.backup_YYYYMMDD_HHMMSS.
func BackupFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.backup_%s", path, time.Now().Format("20060102_150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("copy backup: %w", err)
	}
	if err := dst.Sync(); err != nil {
		return "", fmt.Errorf("sync backup: %w", err)
	}
	return backupPath, nil
}
