// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"smartcourse/internal/cache"
	"smartcourse/internal/config"
	"smartcourse/internal/handlers"
	"smartcourse/internal/middleware"
	"smartcourse/internal/repository"
	"smartcourse/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. ストレージ接続の初期化
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	mongoClient, err := repository.NewMongo(config.Cfg.Mongo.URL, logger)
	if err != nil {
		slog.Error("Error initializing MongoDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			slog.Error("Error closing MongoDB connection", slog.Any("error", err))
		} else {
			slog.Info("MongoDB connection closed.")
		}
	}()
	mongoDB := mongoClient.Database(config.Cfg.Mongo.Database)

	// Redisは接続できなくても起動する (キャッシュなしで動作)
	cacheClient := cache.New(config.Cfg.Redis.URL, logger)
	defer cacheClient.Close()

	// 3. Dependency Injection
	courseRepo := repository.NewGormCourseRepository()
	enrollmentRepo := repository.NewGormEnrollmentRepository()
	progressRepo := repository.NewGormProgressRepository()
	certRepo := repository.NewGormCertificateRepository()
	contentRepo := repository.NewMongoContentRepository(mongoDB)

	notifier := service.NewNotifier(&config.Cfg)

	courseService := service.NewCourseService(db, courseRepo, cacheClient)
	enrollmentService := service.NewEnrollmentService(db, enrollmentRepo, courseRepo, cacheClient)
	contentService := service.NewContentService(db, contentRepo, courseRepo, cacheClient)
	progressService := service.NewProgressService(db, progressRepo, enrollmentRepo, courseRepo, certRepo, contentService, notifier)
	certService := service.NewCertificateService(db, certRepo, enrollmentRepo, courseRepo, notifier)

	courseHandler := handlers.NewCourseHandler(courseService, logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger)
	contentHandler := handlers.NewContentHandler(contentService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger)
	certHandler := handlers.NewCertificateHandler(certService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes (認証不要) ---
		r.Get("/courses", courseHandler.GetCourses)
		r.Get("/courses/{course_id}", courseHandler.GetCourse)
		r.Get("/courses/slug/{slug}", courseHandler.GetCourseBySlug)
		r.Get("/courses/{course_id}/content", contentHandler.GetContent)
		r.Get("/courses/{course_id}/enrollment-count", enrollmentHandler.GetEnrollmentCount)
		r.Get("/certificates/verify/{code}", certHandler.GetVerification)

		// --- Authenticated routes (auth-sidecar経由の検証済みヘッダーが必要) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.IdentityMiddleware())

			// Course routes (講師・管理者のみ)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireInstructor())
				r.Post("/courses", courseHandler.PostCourse)
				r.Put("/courses/{course_id}", courseHandler.PutCourse)
				r.Patch("/courses/{course_id}/status", courseHandler.PatchCourseStatus)
				r.Delete("/courses/{course_id}", courseHandler.DeleteCourse)
				r.Get("/instructors/{instructor_id}/courses", courseHandler.GetInstructorCourses)
				r.Get("/courses/{course_id}/enrollments", enrollmentHandler.GetCourseEnrollments)

				// Content routes
				r.Route("/courses/{course_id}/content", func(r chi.Router) {
					r.Put("/", contentHandler.PutContent)
					r.Delete("/", contentHandler.DeleteContent)
					r.Post("/modules", contentHandler.PostModule)
					r.Route("/modules/{module_id}", func(r chi.Router) {
						r.Patch("/", contentHandler.PatchModule)
						r.Delete("/", contentHandler.DeleteModule)
						r.Post("/lessons", contentHandler.PostLesson)
						r.Route("/lessons/{lesson_id}", func(r chi.Router) {
							r.Patch("/", contentHandler.PatchLesson)
							r.Delete("/", contentHandler.DeleteLesson)
							r.Post("/resources", contentHandler.PostResource)
							r.Patch("/resources/{index}", contentHandler.PatchResource)
							r.Delete("/resources/{index}", contentHandler.DeleteResource)
						})
					})
				})

				// Certificate revocation (管理者はサービス層で判定)
				r.Post("/certificates/{certificate_id}/revoke", certHandler.PostRevoke)
			})

			// Enrollment routes
			r.Post("/enrollments", enrollmentHandler.PostEnrollment)
			r.Get("/enrollments/{enrollment_id}", enrollmentHandler.GetEnrollment)
			r.Delete("/enrollments/{enrollment_id}", enrollmentHandler.DeleteEnrollment)
			r.Post("/enrollments/{enrollment_id}/restore", enrollmentHandler.PostEnrollmentRestore)
			r.Get("/students/{student_id}/enrollments", enrollmentHandler.GetStudentEnrollments)
			r.Get("/courses/{course_id}/enrolled", enrollmentHandler.GetEnrolled)

			// Progress routes
			r.Post("/progress", progressHandler.PostProgress)
			r.Get("/courses/{course_id}/progress", progressHandler.GetMyProgress)
			r.Get("/users/{user_id}/courses/{course_id}/progress", progressHandler.GetUserProgress)
			r.Delete("/users/{user_id}/courses/{course_id}/progress", progressHandler.DeleteUserProgress)

			// Certificate routes
			// 発行は学生の自己申請も許すので講師ゲートを掛けない
			r.Post("/certificates", certHandler.PostCertificate)
			r.Get("/certificates/{certificate_id}", certHandler.GetCertificate)
			r.Get("/enrollments/{enrollment_id}/certificate", certHandler.GetEnrollmentCertificate)
			r.Get("/students/{student_id}/certificates", certHandler.GetStudentCertificates)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping MongoDB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		// キャッシュは無くても動作するので、疎通不良は警告に留める
		if err := cacheClient.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "Health check: Redis unreachable, continuing without cache", slog.Any("error", err))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
