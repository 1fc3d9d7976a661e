package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"secrethouse/internal/config"
	"secrethouse/internal/database"
	"secrethouse/internal/domain"
	"secrethouse/internal/middleware"
	"secrethouse/internal/migrations"
	"secrethouse/internal/modules/admin"
	"secrethouse/internal/modules/booking"
	"secrethouse/internal/modules/drafts"
	"secrethouse/internal/modules/promo"
	"secrethouse/internal/modules/quote"
	jwtsvc "secrethouse/internal/pkg/jwt"
	"secrethouse/internal/pricing"
	"secrethouse/internal/repository"
	"secrethouse/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := migrations.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	catalog, err := pricing.LoadCatalog(cfg.RatesPath)
	if err != nil {
		log.Fatalf("load rates: %v", err)
	}
	rules := pricing.NewRuleIndex()
	if err := rules.Reload(cfg.RatesPath); err != nil {
		log.Fatalf("load date rules: %v", err)
	}
	engine := pricing.NewEngine(catalog, rules)

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	bookingService := booking.NewService(userRepo, bookingRepo, giftRepo, engine, logNotifier{})
	bookingHandler := booking.NewHandler(bookingService)

	quoteHandler := quote.NewHandler(quote.NewService(engine, catalog))
	promoHandler := promo.NewHandler(promo.NewService(promoRepo))
	adminHandler := admin.NewHandler(db, tokens, cfg.AdminPasswordHash, catalog, rules, cfg.RatesPath)

	draftStore := session.NewStore()
	go draftJanitor(draftStore, cfg.DraftTTL)
	draftsHandler := drafts.NewHandler(draftStore, engine)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		quoteHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		draftsHandler.RegisterRoutes(v1)
		promoHandler.RegisterRoutes(v1)
		adminHandler.RegisterRoutes(v1)

		protected := v1.Group("", middleware.RequireAdmin(tokens))
		{
			adminHandler.RegisterProtectedRoutes(protected)
			promoHandler.RegisterAdminRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

func draftJanitor(store *session.Store, ttl time.Duration) {
	for range time.Tick(time.Hour) {
		if n := store.Prune(ttl); n > 0 {
			log.Printf("drafts_pruned count=%d", n)
		}
	}
}

// logNotifier stands in until a delivery channel to the admin chat is
// configured; it records the event and nothing more.
type logNotifier struct{}

func (logNotifier) NotifyBookingCreated(_ context.Context, b *domain.Booking) error {
	log.Printf("booking_created id=%d user_id=%d tariff=%s amount=%d", b.ID, b.UserID, b.Tariff, b.Amount)
	return nil
}

func (logNotifier) NotifyBookingCanceled(_ context.Context, b *domain.Booking) error {
	log.Printf("booking_canceled id=%d user_id=%d", b.ID, b.UserID)
	return nil
}
