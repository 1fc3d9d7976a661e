package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"secrethouse/internal/database"
	"secrethouse/internal/sweeper"
)

// Offline repair for referential damage left behind by older deployments:
// bookings and gifts whose owner is gone, and bookings pointing at deleted
// gifts. Dry-run by default; --execute takes a file backup first (SQLite
// only) and repairs inside one transaction.
func main() {
	dsn, execute, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: %s <database> [--execute]\n", err, os.Args[0])
		os.Exit(1)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	if !execute {
		report, err := sweeper.Scan(db)
		if err != nil {
			log.Fatalf("scan failed: %v", err)
		}
		printReport(report)
		if !report.Clean() {
			fmt.Println("\nrun again with --execute to repair")
		}
		return
	}

	if database.IsSQLite(db) && dsn != ":memory:" {
		backup, err := sweeper.BackupFile(dsn)
		if err != nil {
			log.Fatalf("backup failed, nothing was changed: %v", err)
		}
		log.Printf("backup written to %s", backup)
	}

	report, err := sweeper.Execute(db)
	if err != nil {
		log.Fatalf("repair failed: %v", err)
	}
	printReport(report)
	log.Printf("repair completed")
}

// parseArgs accepts --execute before or after the database argument, so
// both `cleanup_orphan_records db.sqlite --execute` and the flag-first
// order work.
func parseArgs(args []string) (dsn string, execute bool, err error) {
	var positional []string
	for _, arg := range args {
		switch arg {
		case "--execute", "-execute":
			execute = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return "", false, fmt.Errorf("unknown flag %s", arg)
			}
			positional = append(positional, arg)
		}
	}
	if len(positional) != 1 {
		return "", false, fmt.Errorf("expected exactly one database argument")
	}
	return positional[0], execute, nil
}

func printReport(r *sweeper.Report) {
	if r.Clean() {
		fmt.Println("database is clean")
		return
	}
	for _, cat := range []sweeper.Category{r.OrphanBookings, r.OrphanGifts, r.DanglingGiftRefs} {
		if cat.Count == 0 {
			continue
		}
		ids := make([]string, len(cat.IDs))
		for i, id := range cat.IDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		suffix := ""
		if int64(len(cat.IDs)) < cat.Count {
			suffix = ", ..."
		}
		fmt.Printf("%s: %d (ids: %s%s)\n", cat.Name, cat.Count, strings.Join(ids, ", "), suffix)
	}
}
