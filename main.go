package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"stylehive/cache"
	"stylehive/database"
	"stylehive/gcs"
	"stylehive/models"
	"stylehive/payment"
	"stylehive/routes"
	"stylehive/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	db.InitDB()
	defer db.DisconnectDB()

	cache.InitRedis()
	defer cache.Close()

	gcs.InitGCS()
	defer gcs.Close()

	payment.InitGateway()

	session.Default = session.NewStore(db.OpenCollection("sessions"), session.DefaultOptions())

	startCron()

	r := gin.Default()
	routes.SetupRoutes(r)

	log.Println("Starting server on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// startCron schedules the background sweeps: expired sessions go out
// hourly as a backstop to the Mongo TTL index, expired offers are
// deactivated every 15 minutes.
func startCron() {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := session.Default.DeleteExpired(ctx)
		if err != nil {
			log.Println("session sweep failed:", err)
			return
		}
		if deleted > 0 {
			log.Printf("session sweep removed %d expired sessions", deleted)
		}
	})

	c.AddFunc("@every 15m", func() {
		deactivated, err := models.DeactivateExpiredOffers()
		if err != nil {
			log.Println("offer sweep failed:", err)
			return
		}
		if deactivated > 0 {
			log.Printf("deactivated %d expired offers", deactivated)
		}
	})

	c.Start()
}
