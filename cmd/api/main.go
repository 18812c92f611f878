package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"allergy-insights-go/internal/actionable"
	"allergy-insights-go/internal/config"
	"allergy-insights-go/internal/dataset"
	"allergy-insights-go/internal/groups"
	"allergy-insights-go/internal/logger"
	"allergy-insights-go/internal/pipeline"
	"allergy-insights-go/internal/types"
)

type rankResponse struct {
	Groups     []types.GroupStats    `json:"groups"`
	ActionCard actionable.ActionCard `json:"action_card"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "allergy-insights-go").Info("starting service")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	// group table: embedded asset unless an operator copy is configured
	var table groups.Table
	if cfg.Groups.Path != "" {
		log.WithField("groups_path", cfg.Groups.Path).Info("loading group table")
		table, err = groups.LoadFile(cfg.Groups.Path)
	} else {
		table, err = groups.Load()
	}
	if err != nil {
		log.WithError(err).Fatal("failed to load group table")
	}
	index := groups.NewIndex(table)
	log.WithField("ingredients", index.Len()).Info("group index built")

	log.WithField("dataset_path", cfg.Dataset.Path).Info("loading dataset")
	records, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to load dataset")
	}
	log.WithField("products", len(records)).Info("dataset loaded")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// ranked group table
	mux.HandleFunc("/rank", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "rank")
		reqLog.Info("rank request received")

		start := time.Now()
		rows, err := pipeline.Run(records, index)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("pipeline finished")
		if err != nil {
			reqLog.WithField("error", err.Error()).Error("pipeline failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, reqLog, rankResponse{
			Groups:     rows,
			ActionCard: actionable.Generate(rows),
		})
	})

	// single-brand derived view
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "product")

		brand := r.URL.Query().Get("brand")
		if brand == "" {
			reqLog.Warn("missing brand")
			http.Error(w, "missing brand", http.StatusBadRequest)
			return
		}
		reqLog = reqLog.WithField("brand", brand)
		for _, rec := range records {
			if rec.Brand != brand {
				continue
			}
			enr, err := pipeline.Enrich(rec, index)
			if err != nil {
				reqLog.WithField("error", err.Error()).Error("enrich failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, reqLog, enr)
			return
		}
		reqLog.Warn("unknown brand")
		http.Error(w, "unknown brand", http.StatusNotFound)
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error("failed to write response: ", err)
	}
}
