package main

import (
	"flag"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"lifedash/internal/handlers"
	"lifedash/internal/scheduler"
	"lifedash/internal/storage"
	"lifedash/internal/telegram"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; flags and stored settings still apply.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	addr := flag.String("addr", ":8080", "address to listen on")
	staticDir := flag.String("static", "./static", "directory to serve static files from")
	tlsCert := flag.String("tls-cert", "", "path to TLS certificate file (optional)")
	tlsKey := flag.String("tls-key", "", "path to TLS key file (optional)")

	// Storage flags
	storageType := flag.String("storage", "file", "storage backend to use: memory, file, sqlite, or mongo")
	sqlitePath := flag.String("sqlite-path", "lifedash.db", "SQLite database file (used when storage=sqlite)")
	mongoConnString := flag.String("mongo-conn", "mongodb://localhost:27017", "MongoDB connection string (used when storage=mongo)")
	mongoDatabase := flag.String("mongo-db", "lifedash", "MongoDB database name (used when storage=mongo)")

	flag.Parse()

	// Initialize storage based on type
	var store storage.Storage
	var err error

	switch *storageType {
	case "memory":
		log.Println("Using memory storage")
		store = storage.NewMemoryStorage()
	case "file":
		log.Println("Using file storage")
		store = storage.NewFileStorage("tasks.json", "goals.json", "health_entries.json", "settings.json")
	case "sqlite":
		log.Printf("Using SQLite storage (path: %s)", *sqlitePath)
		store, err = storage.NewSQLiteStorage(*sqlitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite storage: %v", err)
		}
	case "mongo":
		log.Printf("Using MongoDB storage (connection: %s, database: %s)", *mongoConnString, *mongoDatabase)
		store, err = storage.NewMongoStorage(*mongoConnString, *mongoDatabase)
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB storage: %v", err)
		}
	default:
		log.Fatalf("Invalid storage type: %s. Valid options are: memory, file, sqlite, mongo", *storageType)
	}

	handlers.Store = store
	handlers.Telegram = telegram.NewClient("")

	st, err := store.GetSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Seed telegram credentials from the environment on first run.
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" && st.Preferences.Telegram.BotToken == "" {
		st.Preferences.Telegram.BotToken = token
		st.Preferences.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
		if err := store.SaveSettings(st); err != nil {
			log.Fatalf("Failed to save settings: %v", err)
		}
		log.Println("Seeded telegram credentials from environment")
	}

	sched := scheduler.New(&handlers.ReminderDispatcher{Client: handlers.Telegram, Store: store})
	handlers.Sched = sched
	sched.Start(st.ReminderConfig())
	defer sched.Stop()

	r := mux.NewRouter()

	// Telegram routes
	r.HandleFunc("/api/telegram/send-reminder", handlers.SendReminderHandler).Methods("POST")
	r.HandleFunc("/api/telegram/test", handlers.TestTelegramHandler).Methods("POST")

	// Settings routes
	r.HandleFunc("/api/settings", handlers.GetSettingsHandler).Methods("GET")
	r.HandleFunc("/api/settings", handlers.UpdateSettingsHandler).Methods("PUT")

	// Report routes
	r.HandleFunc("/api/reports/weekly", handlers.WeeklyReportHandler).Methods("POST")

	// Task routes
	r.HandleFunc("/api/tasks", handlers.CreateTaskHandler).Methods("POST")
	r.HandleFunc("/api/tasks", handlers.ListTasksHandler).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", handlers.GetTaskHandler).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", handlers.UpdateTaskHandler).Methods("PATCH")
	r.HandleFunc("/api/tasks/{id}", handlers.DeleteTaskHandler).Methods("DELETE")

	// Goal routes
	r.HandleFunc("/api/goals", handlers.CreateGoalHandler).Methods("POST")
	r.HandleFunc("/api/goals", handlers.ListGoalsHandler).Methods("GET")
	r.HandleFunc("/api/goals/{id}", handlers.GetGoalHandler).Methods("GET")
	r.HandleFunc("/api/goals/{id}", handlers.UpdateGoalHandler).Methods("PATCH")
	r.HandleFunc("/api/goals/{id}", handlers.DeleteGoalHandler).Methods("DELETE")

	// Health entry routes
	r.HandleFunc("/api/health-entries", handlers.CreateHealthEntryHandler).Methods("POST")
	r.HandleFunc("/api/health-entries", handlers.ListHealthEntriesHandler).Methods("GET")
	r.HandleFunc("/api/health-entries/{id}", handlers.DeleteHealthEntryHandler).Methods("DELETE")

	// Static file server for frontend at "/"
	staticFs := http.FileServer(http.Dir(*staticDir))
	r.PathPrefix("/").Handler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		ext := filepath.Ext(path)
		if ext != "" {
			if ctype := mime.TypeByExtension(ext); ctype != "" {
				w.Header().Set("Content-Type", ctype)
			}
		}
		staticFs.ServeHTTP(w, req)
	}))

	if *tlsCert != "" && *tlsKey != "" {
		log.Println("Starting lifedash with HTTPS on", *addr, "serving static files from", *staticDir)
		if err := http.ListenAndServeTLS(*addr, *tlsCert, *tlsKey, r); err != nil {
			log.Fatalf("Could not start HTTPS server: %s\n", err)
		}
	} else {
		log.Println("Starting lifedash with HTTP on", *addr, "serving static files from", *staticDir)
		if err := http.ListenAndServe(*addr, r); err != nil {
			log.Fatalf("Could not start HTTP server: %s\n", err)
		}
	}
}
