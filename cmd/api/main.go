package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/database"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/http/handlers"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/http/middleware"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/integration/supabase"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/mail"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/queue"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ No se pudo conectar a Postgres: %v", err)
	}
	defer db.Close()

	// 1. Repositorios. La vía REST de Supabase entra como respaldo del
	// transporte directo cuando hay credenciales configuradas.
	primaryLeadRepo := database.NewLeadRepository(db)
	var leadRepo entity.LeadRepositoryInterface = primaryLeadRepo

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL != "" && supabaseKey != "" {
		restRepo := supabase.NewLeadRepository(supabaseURL, supabaseKey)
		leadRepo = database.NewFailoverLeadRepository(primaryLeadRepo, restRepo)
	} else {
		log.Println("⚠️ SUPABASE_URL/SUPABASE_SERVICE_ROLE_KEY sin configurar, no habrá vía REST de respaldo")
	}

	projectRepo := database.NewProjectRepository(db)

	// 2. Cola de notificaciones (opcional: el formulario funciona sin broker)
	var producer queue.QueueProducerInterface
	var rabbitConn *amqp.Connection

	if rabbitURL := os.Getenv("RABBITMQ_URL"); rabbitURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(rabbitURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ configurado pero inalcanzable: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// 3. Worker: consume la cola y avisa al agente por email
		if mailHost := os.Getenv("MAIL_HOST"); mailHost != "" {
			mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
			if mailPort == 0 {
				mailPort = 587
			}
			sender := mail.NewEmailSender(
				mailHost, mailPort,
				os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
				os.Getenv("LEAD_ALERT_RECIPIENT"),
			)
			worker := queue.NewWorker(rabbitMQ.Ch, sender)
			go worker.Start(queue.QueueName)
		} else {
			log.Println("⚠️ MAIL_HOST sin configurar, el worker de notificaciones no arranca")
		}
	} else {
		log.Println("⚠️ RABBITMQ_URL sin configurar, notificaciones de leads desactivadas")
	}

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, producer)
	reconcileUC := usecase.NewReconcileAppointmentUseCase(leadRepo)

	// 5. Handlers
	contactHandler := handlers.NewContactHandler(createLeadUC, leadRepo)
	webhookHandler := handlers.NewCalendlyWebhookHandler(reconcileUC, os.Getenv("CALENDLY_WEBHOOK_SIGNING_KEY"))
	projectHandler := handlers.NewProjectHandler(projectRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://dariovelez.com.do", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/contacts", contactHandler.HandleCreate)
		r.Get("/contacts", contactHandler.HandleList)
		r.Get("/projects", projectHandler.HandleList)
		r.Get("/projects/{slug}", projectHandler.HandleGetBySlug)
		r.Post("/webhooks/calendly", webhookHandler.Handle)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 API inmobiliaria escuchando en el puerto %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
