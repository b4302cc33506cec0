package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Thruster/internal/auth"
	"Thruster/internal/calc/materials"
	"Thruster/internal/calc/nozzle"
	"Thruster/internal/calc/premium/autodesign"
	"Thruster/internal/calc/premium/batch"
	"Thruster/internal/calc/premium/importer"
	"Thruster/internal/calc/propellant"
	"Thruster/internal/calc/report"
	"Thruster/internal/calc/stress"
	"Thruster/internal/calc/tank"
	"Thruster/internal/calc/trajectory"
	"Thruster/internal/calc/worksheet"
	"Thruster/internal/config"
	"Thruster/internal/history"
	"Thruster/internal/metrics"
	"Thruster/internal/repo"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, userRepo repo.Repository) {
	authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Repo: userRepo}
	historyH := &history.Handler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	materialsH := &materials.Handler{}
	api.HandleFunc("/materials", materialsH.List).Methods("GET")
	api.HandleFunc("/materials/{name}", materialsH.Get).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/runs", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/runs", historyH.List).Methods("GET")
	secureApi.HandleFunc("/runs/{id:[0-9]+}", historyH.Get).Methods("GET")

	stressH := &stress.Handler{}
	tankH := &tank.Handler{}
	propellantH := &propellant.Handler{}
	nozzleH := &nozzle.Handler{}
	trajectoryH := &trajectory.Handler{}
	worksheetH := &worksheet.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/stress/calc", stressH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/tank/calc", tankH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/propellant/calc", propellantH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/nozzle/calc", nozzleH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/trajectory/calc", trajectoryH.Calc).Methods("POST")
	secureApi.HandleFunc("/worksheet", worksheetH.Evaluate).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/report/xlsx", reportH.Workbook).Methods("POST")

	autoH := &autodesign.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	secureApi.HandleFunc("/premium/tank/thickness", autoH.Thickness).Methods("POST")
	secureApi.HandleFunc("/premium/tank/batch", batchH.Tanks).Methods("POST")
	secureApi.HandleFunc("/premium/tank/import", importH.Tanks).Methods("POST")

	mux.Handle("/metrics", metrics.Handler()).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func openRepo(ctx context.Context, dsn string) (repo.Repository, func(), error) {
	if dsn == "memory" {
		logrus.Warn("DATABASE_URL=memory: users and runs are not persisted")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.OpenDB(dsn)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgresDB(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := config.SetupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if _, err := os.Stat(cfg.WorksheetPath); err == nil {
		// Loading registers the file's [materials] so tools can name them.
		if _, err := worksheet.LoadFile(cfg.WorksheetPath); err != nil {
			logrus.WithError(err).WithField("path", cfg.WorksheetPath).Fatal("worksheet config")
		}
	}

	userRepo, closeRepo, err := openRepo(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("database")
	}
	defer closeRepo()

	mux := mux.NewRouter()
	HandleList(mux, cfg, userRepo)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("starting server")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("shutdown")
	}
	logrus.Info("server stopped")

	wg.Wait()
}
