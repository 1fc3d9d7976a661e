package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"secrethouse/internal/database"
	"secrethouse/internal/migrations"
)

// Seeds a demo dataset for local development: a couple of users, their
// bookings and one open gift certificate. Safe to run once on an empty
// database; rerunning will duplicate rows.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "secrethouse.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := migrations.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	now := time.Now().UTC().Format("2006-01-02 15:04:05")

	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO users (user_name, contact, chat_id, is_active, has_bookings, total_bookings, completed_bookings, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"Анна", "+79001112233", 100500, true, true, 2, 1, now}},
		{`INSERT INTO users (user_name, contact, chat_id, is_active, has_bookings, total_bookings, completed_bookings, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"Виктор", "+79004445566", 100501, true, false, 0, 0, now}},
		{`INSERT INTO bookings (user_id, tariff, start_date, end_date, amount, count_people, is_sauna, is_done, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{1, 1, "2024-05-10", "2024-05-11", 14000, 2, true, true, now}},
		{`INSERT INTO bookings (user_id, tariff, start_date, end_date, amount, count_people, is_done, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{1, 0, "2024-07-01", "2024-07-01", 8000, 2, false, now}},
		{`INSERT INTO gifts (user_id, code, tariff, amount, is_done, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{2, "DEMO23GIFT", 6, 12000, false, now}},
		{`INSERT INTO promocodes (code, promocode_type, is_active, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"SUMMER24", 1, true, "2024-06-01", "2024-08-31", now}},
	}

	for _, s := range stmts {
		if err := db.Exec(s.sql, s.args...).Error; err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	log.Printf("seed completed: users=2 bookings=2 gifts=1 promocodes=1")
}
