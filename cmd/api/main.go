package main

import (
	"log"
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/auth"
	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/Mr-K2901/TnP-Portal/internal/database"
	"github.com/Mr-K2901/TnP-Portal/internal/handlers"
	"github.com/Mr-K2901/TnP-Portal/internal/middleware"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/Mr-K2901/TnP-Portal/internal/worker"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg)

	// 3. Providers & Worker Pool
	twilioService := services.NewTwilioService(cfg)
	emailService := services.NewEmailService(cfg)
	pool := worker.NewPool(cfg.DispatchWorkers)
	defer pool.Stop()

	// 4. Core Services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	userService := services.NewUserService(db, issuer)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	campaignService := services.NewCampaignService(db)
	templateService := services.NewTemplateService(db)
	dispatcher := services.NewDispatcher(db, cfg, twilioService, emailService, twilioService, pool)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, cfg)
	voiceHandler := handlers.NewVoiceCampaignHandler(campaignService, dispatcher)
	emailCampaignHandler := handlers.NewEmailCampaignHandler(campaignService, dispatcher)
	whatsappHandler := handlers.NewWhatsAppCampaignHandler(campaignService, templateService, dispatcher)
	templateHandler := handlers.NewEmailTemplateHandler(templateService)
	webhookHandler := handlers.NewWebhookHandler(db, twilioService)

	// 6. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Twilio calls these directly; no auth.
		webhooks := api.Group("/webhooks/twilio")
		{
			webhooks.POST("/voice", webhookHandler.Voice)
			webhooks.POST("/recording", webhookHandler.Recording)
			webhooks.POST("/transcription", webhookHandler.Transcription)
			webhooks.POST("/status", webhookHandler.Status)
		}

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.Authenticate(issuer), authHandler.Me)
		}

		authed := api.Group("")
		authed.Use(middleware.Authenticate(issuer))
		{
			// Jobs: reads for everyone, writes for admins.
			authed.GET("/jobs", jobHandler.List)
			authed.GET("/jobs/:id", jobHandler.Get)

			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/jobs", jobHandler.Create)
				admin.PUT("/jobs/:id", jobHandler.Update)
				admin.DELETE("/jobs/:id", jobHandler.Delete)
				admin.GET("/applications/job/:id", applicationHandler.ListForJob)

				admin.GET("/admin/students", userHandler.ListStudents)
				admin.PATCH("/users/:id/mark-placed", userHandler.MarkPlaced)

				// Hiring pipeline, admin side.
				admin.POST("/applications/:id/actions/select", applicationHandler.Select)
				admin.POST("/applications/:id/actions/start-process", applicationHandler.StartProcess)
				admin.POST("/applications/:id/actions/schedule-interview", applicationHandler.ScheduleInterview)
				admin.POST("/applications/:id/actions/shortlist", applicationHandler.Shortlist)
				admin.POST("/applications/:id/actions/release-offer", applicationHandler.ReleaseOffer)
				admin.POST("/applications/:id/actions/reject", applicationHandler.Reject)

				// Voice campaigns
				admin.POST("/campaigns", voiceHandler.Create)
				admin.GET("/campaigns", voiceHandler.List)
				admin.GET("/campaigns/:id", voiceHandler.Get)
				admin.PUT("/campaigns/:id", voiceHandler.Update)
				admin.DELETE("/campaigns/:id", voiceHandler.Delete)
				admin.POST("/campaigns/:id/start", voiceHandler.Start)
				admin.POST("/campaigns/:id/retry", voiceHandler.Retry)
				admin.POST("/campaigns/:id/cancel", voiceHandler.Cancel)

				// Email campaigns + templates
				admin.POST("/email-campaigns", emailCampaignHandler.Create)
				admin.GET("/email-campaigns", emailCampaignHandler.List)
				admin.GET("/email-campaigns/:id", emailCampaignHandler.Get)
				admin.PUT("/email-campaigns/:id", emailCampaignHandler.Update)
				admin.DELETE("/email-campaigns/:id", emailCampaignHandler.Delete)
				admin.POST("/email-campaigns/:id/start", emailCampaignHandler.Start)
				admin.POST("/email-campaigns/:id/retry", emailCampaignHandler.Retry)
				admin.POST("/email-campaigns/:id/cancel", emailCampaignHandler.Cancel)

				admin.GET("/email-templates", templateHandler.List)
				admin.GET("/email-templates/:id", templateHandler.Get)
				admin.POST("/email-templates", templateHandler.Create)
				admin.PUT("/email-templates/:id", templateHandler.Update)
				admin.DELETE("/email-templates/:id", templateHandler.Delete)

				// WhatsApp campaigns + templates
				admin.POST("/whatsapp-campaigns", whatsappHandler.Create)
				admin.GET("/whatsapp-campaigns", whatsappHandler.List)
				admin.GET("/whatsapp-campaigns/templates/list", whatsappHandler.ListTemplates)
				admin.POST("/whatsapp-campaigns/templates", whatsappHandler.CreateTemplate)
				admin.GET("/whatsapp-campaigns/:id", whatsappHandler.Get)
				admin.PUT("/whatsapp-campaigns/:id", whatsappHandler.Update)
				admin.DELETE("/whatsapp-campaigns/:id", whatsappHandler.Delete)
				admin.POST("/whatsapp-campaigns/:id/start", whatsappHandler.Start)
				admin.POST("/whatsapp-campaigns/:id/retry", whatsappHandler.Retry)
				admin.POST("/whatsapp-campaigns/:id/cancel", whatsappHandler.Cancel)
				admin.POST("/whatsapp-campaigns/:id/sync-status", whatsappHandler.SyncStatus)
			}

			student := authed.Group("")
			student.Use(middleware.RequireStudent())
			{
				student.POST("/applications", applicationHandler.Apply)
				student.GET("/applications", applicationHandler.ListMine)
				student.GET("/users/me/profile", userHandler.GetMyProfile)
				student.PATCH("/users/me/profile", userHandler.UpdateMyProfile)

				student.POST("/applications/:id/actions/withdraw", applicationHandler.Withdraw)
				student.POST("/applications/:id/actions/accept-offer", applicationHandler.AcceptOffer)
				student.POST("/applications/:id/actions/decline-offer", applicationHandler.DeclineOffer)
			}

			authed.GET("/applications/status-flow", applicationHandler.StatusFlow)
			authed.GET("/applications/:id", middleware.RequireStudent(), applicationHandler.Get)
		}
	}

	log.Printf("🚀 Server starting on port %s...", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
