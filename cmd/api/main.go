package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/infra/database"
	"github.com/xavierca1/cart-recovery/internal/infra/http/handlers"
	metricsmw "github.com/xavierca1/cart-recovery/internal/infra/http/middleware"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/coreforce"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/coreilla"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/kommo"
	"github.com/xavierca1/cart-recovery/internal/infra/mail"
	"github.com/xavierca1/cart-recovery/internal/infra/queue"
	"github.com/xavierca1/cart-recovery/internal/infra/worker"
	"github.com/xavierca1/cart-recovery/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Agenda da sequência
	offsets, err := entity.ParseSequence(getenv("EMAIL_SEQUENCE", "3,7,14"))
	if err != nil {
		log.Fatal(err)
	}
	schedule, err := entity.NewSequenceSchedule(
		offsets,
		getenvInt("FOLLOWUP_START_HOUR", 9),
		getenvInt("FOLLOWUP_END_HOUR", 17),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 2. Repositórios
	contactRepo := database.NewContactRepository(db)
	taskRepo := database.NewEmailTaskRepository(db)
	stepRepo := database.NewTaskStepRepository(db)
	cartRepo := database.NewCartRepository(db)

	// 3. Integrações
	source := coreforce.NewClient(os.Getenv("COREFORCE_API_KEY"), os.Getenv("COREFORCE_URL"))
	sender := coreilla.NewClient(os.Getenv("COREILLA_WEBHOOK_URL"))
	renderer := mail.NewCartTemplateRenderer()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// Relatório por SMTP é opcional (nil desliga)
	var reportMailer usecase.ReportSender
	if os.Getenv("MAIL_HOST") != "" {
		reportMailer = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		)
	}

	// 4. Worker de outcomes (consome a fila e registra no Kommo)
	crmClient := kommo.NewClient()
	outcomeWorker := queue.NewWorker(rabbitMQ.Ch, crmClient)
	go outcomeWorker.Start(queue.QueueName)

	// 5. UseCases
	syncUC := usecase.NewSyncContactsUseCase(source, contactRepo)
	updateUC := usecase.NewUpdateTasksUseCase(source, taskRepo, stepRepo, cartRepo)
	processUC := usecase.NewProcessTasksUseCase(
		taskRepo, stepRepo, sender, renderer, schedule,
		producer, reportMailer, os.Getenv("REPORT_TO"),
	)

	// 6. Ciclo horário (sync → reconcile → process)
	followupWorker := worker.NewFollowUpWorker(syncUC, updateUC, processUC)
	go followupWorker.Start(context.Background())

	// 7. Handlers
	syncHandler := handlers.NewSyncHandler(syncUC)
	taskHandler := handlers.NewTaskHandler(updateUC, processUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 8. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(metricsmw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/contacts/sync", syncHandler.Handle)
	r.Post("/tasks/update", taskHandler.HandleUpdate)
	r.Post("/tasks/process", taskHandler.HandleProcess)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 Cart Recovery rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s inválido: %v", key, err)
	}
	return n
}
