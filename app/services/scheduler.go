package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/akhyar02/scholar-draft-sub000/app/database"
)

// StartScheduler starts the background task scheduler.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 00:05
			if now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [00:05]...")

				closed, err := database.CloseExpiredScholarships(db)
				if err != nil {
					log.Printf("Error closing expired scholarships: %v", err)
				} else if closed > 0 {
					log.Printf("Closed %d scholarship(s) past deadline", closed)
				}
			}
		}
	}()
}
