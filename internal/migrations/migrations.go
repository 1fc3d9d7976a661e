package migrations

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"secrethouse/internal/database"
)

// The chain below is the full schema history. Revision IDs are opaque and
// append-only; never renumber or reorder released revisions.

func options() *gormigrate.Options {
	return &gormigrate.Options{
		TableName:      "schema_migrations",
		IDColumnName:   "id",
		IDColumnSize:   255,
		UseTransaction: true,
	}
}

// Migrate applies every pending revision in order. A failing revision rolls
// back its own transaction and leaves the history at the last good one.
func Migrate(db *gorm.DB) error {
	if err := gormigrate.New(db, options(), All()).Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// MigrateTo applies revisions up to and including the given one.
func MigrateTo(db *gorm.DB, revision string) error {
	if err := gormigrate.New(db, options(), All()).MigrateTo(revision); err != nil {
		return fmt.Errorf("migrate to %s: %w", revision, err)
	}
	return nil
}

// RollbackLast undoes the most recent applied revision.
func RollbackLast(db *gorm.DB) error {
	if err := gormigrate.New(db, options(), All()).RollbackLast(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// RollbackTo downgrades until the given revision is the newest applied one.
func RollbackTo(db *gorm.DB, revision string) error {
	if err := gormigrate.New(db, options(), All()).RollbackTo(revision); err != nil {
		return fmt.Errorf("rollback to %s: %w", revision, err)
	}
	return nil
}

func All() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		initSchema(),
		addBookingPreferences(),
		addFeedbackSubmitted(),
		moveChatIDToUsers(),
		retypeGiftDone(),
		addCompletedBookings(),
		resetSequences(),
	}
}

// --- c9a3f1b40d2e -----------------------------------------------------------

type initUser struct {
	ID        int64 `gorm:"primaryKey"`
	UserName  string
	Contact   *string
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (initUser) TableName() string { return "users" }

type initBooking struct {
	ID                  int64  `gorm:"primaryKey"`
	UserID              int64  `gorm:"not null;index"`
	GiftID              *int64 `gorm:"index"`
	ChatID              *int64 // historically lived here; moved to users in 3fd2c8a91be7
	Tariff              int    `gorm:"not null;default:1"`
	StartDate           time.Time
	EndDate             time.Time
	Amount              int64  `gorm:"not null;default:0"`
	CountPeople         int    `gorm:"not null;default:0"`
	IsSauna             bool   `gorm:"not null;default:false"`
	IsSecretRoom        bool   `gorm:"not null;default:false"`
	IsAdditionalBedroom bool   `gorm:"not null;default:false"`
	IsPhotoshoot        bool   `gorm:"not null;default:false"`
	Bedroom             string `gorm:"size:8;default:none"`
	Comment             string `gorm:"type:text"`
	IsDone              bool   `gorm:"not null;default:false"`
	IsCanceled          bool   `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (initBooking) TableName() string { return "bookings" }

type initGift struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	Code      string `gorm:"size:32;uniqueIndex"`
	Tariff    int    `gorm:"not null;default:6"`
	Amount    int64  `gorm:"not null;default:0"`
	IsDone    int    `gorm:"not null;default:0"` // retyped to boolean in a1e04f7d92cb
	IsSauna   bool   `gorm:"not null;default:false"`
	IsSecret  bool   `gorm:"not null;default:false"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (initGift) TableName() string { return "gifts" }

type initPromoCode struct {
	ID        int64  `gorm:"primaryKey"`
	Code      string `gorm:"size:64;uniqueIndex;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

func (initPromoCode) TableName() string { return "promocodes" }

func initSchema() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "c9a3f1b40d2e",
		Migrate: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&initUser{}, &initBooking{}, &initGift{}, &initPromoCode{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable("bookings", "gifts", "promocodes", "users")
		},
	}
}

// --- 5b7de1a9c0f4 -----------------------------------------------------------

type bookingPreferences struct {
	WinePreference  *string `gorm:"size:255"`
	TransferAddress *string `gorm:"size:255"`
}

func (bookingPreferences) TableName() string { return "bookings" }

func addBookingPreferences() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "5b7de1a9c0f4",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&bookingPreferences{}, "WinePreference"); err != nil {
				return err
			}
			return tx.Migrator().AddColumn(&bookingPreferences{}, "TransferAddress")
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&bookingPreferences{}, "TransferAddress"); err != nil {
				return err
			}
			return tx.Migrator().DropColumn(&bookingPreferences{}, "WinePreference")
		},
	}
}

// --- 86e9eed4ea92 -----------------------------------------------------------

type bookingFeedback struct {
	FeedbackSubmitted bool `gorm:"not null;default:false"`
}

func (bookingFeedback) TableName() string { return "bookings" }

// addFeedbackSubmitted tolerates the column already existing: some databases
// got it out-of-band before this revision shipped, so re-running must be a
// no-op rather than an error.
func addFeedbackSubmitted() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "86e9eed4ea92",
		Migrate: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&bookingFeedback{}, "FeedbackSubmitted") {
				return nil
			}
			return tx.Migrator().AddColumn(&bookingFeedback{}, "FeedbackSubmitted")
		},
		Rollback: func(tx *gorm.DB) error {
			if !tx.Migrator().HasColumn(&bookingFeedback{}, "FeedbackSubmitted") {
				return nil
			}
			return tx.Migrator().DropColumn(&bookingFeedback{}, "FeedbackSubmitted")
		},
	}
}

// --- 3fd2c8a91be7 -----------------------------------------------------------

type userChatColumns struct {
	ChatID        *int64 `gorm:"uniqueIndex"`
	HasBookings   bool   `gorm:"not null;default:false"`
	TotalBookings int    `gorm:"not null;default:0"`
}

func (userChatColumns) TableName() string { return "users" }

// moveChatIDToUsers relocates chat_id from bookings to users and introduces
// the booking counters. Order matters on both directions: add columns with
// safe defaults, backfill from the source rows, only then drop the source.
func moveChatIDToUsers() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "3fd2c8a91be7",
		Migrate: func(tx *gorm.DB) error {
			for _, col := range []string{"ChatID", "HasBookings", "TotalBookings"} {
				if err := tx.Migrator().AddColumn(&userChatColumns{}, col); err != nil {
					return err
				}
			}

			// newest booking wins when a user messaged from several chats
			if err := tx.Exec(`UPDATE users SET chat_id = (
					SELECT b.chat_id FROM bookings b
					WHERE b.user_id = users.id AND b.chat_id IS NOT NULL
					ORDER BY b.id DESC LIMIT 1)`).Error; err != nil {
				return err
			}
			if err := tx.Exec(`UPDATE users SET total_bookings =
					(SELECT COUNT(*) FROM bookings b WHERE b.user_id = users.id)`).Error; err != nil {
				return err
			}
			if err := tx.Exec(`UPDATE users SET has_bookings = (total_bookings > 0)`).Error; err != nil {
				return err
			}

			return tx.Migrator().DropColumn(&initBooking{}, "ChatID")
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&initBooking{}, "ChatID"); err != nil {
				return err
			}
			if err := tx.Exec(`UPDATE bookings SET chat_id =
					(SELECT u.chat_id FROM users u WHERE u.id = bookings.user_id)`).Error; err != nil {
				return err
			}
			for _, col := range []string{"TotalBookings", "HasBookings", "ChatID"} {
				if err := tx.Migrator().DropColumn(&userChatColumns{}, col); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// --- a1e04f7d92cb -----------------------------------------------------------

type promoCodeType struct {
	PromocodeType int `gorm:"not null;default:1"`
}

func (promoCodeType) TableName() string { return "promocodes" }

// retypeGiftDone widens gifts.is_done from integer to boolean. PostgreSQL
// does it in place; SQLite cannot ALTER a column type, so the table is
// rebuilt through a shadow copy.
func retypeGiftDone() *gormigrate.Migration {
	const giftColumns = `id, user_id, code, tariff, amount, is_done, is_sauna, is_secret, comment, created_at, updated_at`

	return &gormigrate.Migration{
		ID: "a1e04f7d92cb",
		Migrate: func(tx *gorm.DB) error {
			if database.IsPostgres(tx) {
				if err := tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done DROP DEFAULT`).Error; err != nil {
					return err
				}
				if err := tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done TYPE boolean USING is_done <> 0`).Error; err != nil {
					return err
				}
				if err := tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done SET DEFAULT false`).Error; err != nil {
					return err
				}
			} else {
				if err := rebuildGifts(tx, "is_done boolean NOT NULL DEFAULT false", giftColumns); err != nil {
					return err
				}
			}
			return tx.Migrator().AddColumn(&promoCodeType{}, "PromocodeType")
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&promoCodeType{}, "PromocodeType"); err != nil {
				return err
			}
			if database.IsPostgres(tx) {
				if err := tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done DROP DEFAULT`).Error; err != nil {
					return err
				}
				if err := tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done TYPE integer USING CASE WHEN is_done THEN 1 ELSE 0 END`).Error; err != nil {
					return err
				}
				return tx.Exec(`ALTER TABLE gifts ALTER COLUMN is_done SET DEFAULT 0`).Error
			}
			return rebuildGifts(tx, "is_done integer NOT NULL DEFAULT 0", giftColumns)
		},
	}
}

// rebuildGifts is the SQLite "batch mode": create a shadow table with the
// new column definition, copy every row, swap the tables and restore the
// unique index on code.
func rebuildGifts(tx *gorm.DB, doneColumn, columns string) error {
	create := fmt.Sprintf(`CREATE TABLE gifts_rebuild (
		id integer PRIMARY KEY AUTOINCREMENT,
		user_id integer NOT NULL,
		code varchar(32),
		tariff integer NOT NULL DEFAULT 6,
		amount integer NOT NULL DEFAULT 0,
		%s,
		is_sauna numeric NOT NULL DEFAULT false,
		is_secret numeric NOT NULL DEFAULT false,
		comment text,
		created_at datetime,
		updated_at datetime
	)`, doneColumn)

	steps := []string{
		create,
		fmt.Sprintf(`INSERT INTO gifts_rebuild (%s) SELECT %s FROM gifts`, columns, columns),
		`DROP TABLE gifts`,
		`ALTER TABLE gifts_rebuild RENAME TO gifts`,
		`CREATE UNIQUE INDEX idx_gifts_code ON gifts(code)`,
		`CREATE INDEX idx_gifts_user_id ON gifts(user_id)`,
	}
	for _, stmt := range steps {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("rebuild gifts: %w", err)
		}
	}
	return nil
}

// --- e8c52b0a67d1 -----------------------------------------------------------

type userCompleted struct {
	CompletedBookings int `gorm:"not null;default:0"`
}

func (userCompleted) TableName() string { return "users" }

// addCompletedBookings introduces the completed counter and recomputes every
// derived counter from authoritative booking rows; business logic maintains
// them afterwards, this revision does not assume it already did.
func addCompletedBookings() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "e8c52b0a67d1",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&userCompleted{}, "CompletedBookings"); err != nil {
				return err
			}
			return RecomputeCounters(tx)
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(&userCompleted{}, "CompletedBookings")
		},
	}
}

// RecomputeCounters rebuilds all user booking counters from booking rows and
// marks gifts referenced by any booking as delivered. Also used by the
// sweeper after repairs.
func RecomputeCounters(tx *gorm.DB) error {
	statements := []string{
		`UPDATE users SET total_bookings =
			(SELECT COUNT(*) FROM bookings b WHERE b.user_id = users.id)`,
		`UPDATE users SET completed_bookings =
			(SELECT COUNT(*) FROM bookings b
			 WHERE b.user_id = users.id AND b.is_done AND NOT b.is_canceled)`,
		`UPDATE users SET has_bookings = (total_bookings > 0)`,
		`UPDATE gifts SET is_done = true WHERE id IN
			(SELECT gift_id FROM bookings WHERE gift_id IS NOT NULL)`,
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- f47ac5d3082a -----------------------------------------------------------

// resetSequences advances each identity sequence to max(id) so inserts after
// a backfill never collide. SQLite keeps its own counter in sqlite_sequence
// and needs nothing here. Irreversible: the rollback is a documented no-op.
func resetSequences() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "f47ac5d3082a",
		Migrate: func(tx *gorm.DB) error {
			if !database.IsPostgres(tx) {
				return nil
			}
			for _, table := range []string{"users", "bookings", "gifts", "promocodes"} {
				var maxID int64
				if err := tx.Raw(fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) FROM %s`, table)).Scan(&maxID).Error; err != nil {
					return err
				}
				stmt := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), %d, %t)`,
					table, max64(maxID, 1), maxID > 0)
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			// sequence state before the reset is unknowable
			return nil
		},
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
