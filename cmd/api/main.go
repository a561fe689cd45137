package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gigflow/internal/config"
	"gigflow/internal/db"
	"gigflow/internal/handlers"
	"gigflow/internal/mail"
	"gigflow/internal/middleware"
	"gigflow/internal/realtime"
	bidsvc "gigflow/internal/services/bid"
	gigsvc "gigflow/internal/services/gig"
	"gigflow/internal/services/hiring"
	"gigflow/internal/store"
)

type routerDeps struct {
	auth   *handlers.AuthHandler
	google *handlers.GoogleOAuthHandler
	user   *handlers.UserHandler
	gig    *handlers.GigHandler
	bid    *handlers.BidHandler
	ws     *handlers.WSHandler
}

// newRouter wires the route table. Registration order matters twice: the
// literal /gigs/my-gigs must precede the /gigs/:id wildcard, and every
// public route must precede the protected group, whose auth middleware is
// a prefix Use that intercepts everything registered after it.
func newRouter(cfg config.Config, d routerDeps) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	auth := middleware.Auth(cfg.CookieName, cfg.JWTSecret)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", d.auth.Register)
	api.Post("/auth/verify-otp", d.auth.VerifyOTP)
	api.Post("/auth/login", d.auth.Login)
	api.Post("/auth/logout", d.auth.Logout)
	api.Get("/auth/google/start", d.google.GoogleStart)
	api.Get("/auth/google/callback", d.google.GoogleCallback)
	api.Get("/gigs", d.gig.ListOpen)
	api.Get("/gigs/my-gigs", auth, d.gig.ListMine)
	api.Get("/gigs/:id", d.gig.Get)

	// protected (JWT cookie)
	protected := api.Group("/", auth)

	protected.Get("/auth/profile", d.auth.Profile)
	protected.Put("/users/profile", d.user.UpdateProfile)
	protected.Delete("/users/:id", d.user.Delete)

	protected.Post("/gigs", middleware.RequireRoles("client"), d.gig.Create)
	protected.Patch("/gigs/:id/status", d.gig.Close)
	protected.Delete("/gigs/:id", d.gig.Delete)

	protected.Post("/bids", middleware.RequireRoles("freelancer"), d.bid.Create)
	protected.Get("/bids/my-bids", d.bid.ListMine)
	protected.Get("/bids/check/:gigId", d.bid.CheckMine)
	protected.Get("/bids/:gigId", d.bid.ListForGig)
	protected.Patch("/bids/:bidId/hire", d.bid.Hire)

	// websocket, same cookie auth as the REST routes
	app.Get("/ws/notifications",
		auth,
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
		websocket.New(d.ws.Notifications),
	)

	return app
}

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	hub := realtime.NewHub()
	notifier := realtime.NewNotifier(hub, rdb)
	go notifier.RunBridge(context.Background())

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.MailAPIKey != "" {
		mailer = mail.NewHTTPMailer(cfg.MailAPIKey, cfg.MailFrom, cfg.MailAPIURL)
	}
	enqueuer := mail.NewEnqueuer(cfg.RedisAddr, cfg.RedisPassword)
	worker := mail.NewWorker(cfg.RedisAddr, cfg.RedisPassword, mailer)
	worker.Run()

	st := store.NewGorm(gdb)
	gigs := gigsvc.NewService(st)
	bids := bidsvc.NewService(st)
	hire := hiring.NewService(st, hiring.Notifiers{
		notifier,
		&mail.HiredNotifier{Enqueuer: enqueuer},
	})

	app := newRouter(cfg, routerDeps{
		auth: &handlers.AuthHandler{
			DB:            gdb,
			Mail:          enqueuer,
			JWTSecret:     cfg.JWTSecret,
			CookieName:    cfg.CookieName,
			ExpiresMin:    cfg.JWTExpiresMin,
			OTPExpiresMin: cfg.OTPExpiresMin,
		},
		google: &handlers.GoogleOAuthHandler{
			DB:              gdb,
			JWTSecret:       cfg.JWTSecret,
			CookieName:      cfg.CookieName,
			ExpiresMin:      cfg.JWTExpiresMin,
			GoogleClientID:  cfg.GoogleClientID,
			GoogleSecret:    cfg.GoogleSecret,
			GoogleRedirect:  cfg.GoogleRedirect,
			FrontendBaseURL: cfg.FrontendBaseURL,
		},
		user: handlers.NewUserHandler(st, cfg.CookieName),
		gig:  handlers.NewGigHandler(gigs),
		bid:  handlers.NewBidHandler(bids, hire),
		ws:   handlers.NewWSHandler(hub),
	})

	logrus.Fatal(app.Listen(":" + cfg.AppPort))
}
