package cmd

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/database"
	"github.com/minhtran-dev/studynotes-be/handler"
	"github.com/minhtran-dev/studynotes-be/repository"
	"github.com/minhtran-dev/studynotes-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the studynotes server",
	Long:  `Starts the HTTP server that handles notes, document uploads, study content generation and chat`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		setupLogger(cfg.LogLevel)

		aiService, err := newAIService(cmd.Context(), cfg)
		if err != nil {
			logrus.Fatalf("Failed to initialize AI service: %v", err)
		}

		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			logrus.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			logrus.Fatalf("Failed to reach MongoDB: %v", err)
		}
		db := mongoClient.Database("studynotes")

		// Repositories
		noteRepo := repository.NewNoteRepo(db.Collection("notes"), db.Collection("documents"))
		contentRepo := repository.NewStudyContentRepo(db.Collection("study_content"))

		// Services
		genService := service.NewGenerationService(aiService, cfg.Generation)
		noteService := service.NewNoteService(noteRepo, genService, nil)
		fileService := service.NewFileService(cfg.UploadDir, noteRepo)
		contentService := service.NewStudyContentService(contentRepo)
		wsService := service.NewWebSocketService(genService, noteService)

		// Handlers
		corsHandler := handler.NewCorsHandler()
		noteHandler := handler.NewNoteHandler(noteService)
		uploadHandler := handler.NewUploadHandler(fileService)
		generateHandler := handler.NewGenerateHandler(noteService, genService, contentService)
		chatHandler := handler.NewChatHandler(noteService, genService)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/notes", noteHandler.HandleCreateNote)
			apiV1.GET("/notes/:id", noteHandler.HandleGetNote)
			apiV1.POST("/notes/:id/documents", uploadHandler.HandleUploadDocument)
			apiV1.POST("/notes/:id/links", noteHandler.HandleAttachLink)
			apiV1.POST("/notes/:id/generate", generateHandler.HandleGenerate)
			apiV1.GET("/notes/:id/study-content", generateHandler.HandleGetStudyContent)
			apiV1.POST("/chat", chatHandler.HandleChat)
		}
		router.GET("/ws/chat", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})

		logrus.Infof("Starting server on port %s...", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
	},
}

func newAIService(ctx context.Context, cfg *config.Config) (service.AIService, error) {
	if cfg.AIProvider == "gemini" {
		return service.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.Model)
	}
	return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model), nil
}

func setupLogger(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
