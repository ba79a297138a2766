package controllers

import (
	"net/http"

	"github.com/velopay/payments-backend/api/responses"
	"github.com/velopay/payments-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Velopay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok", "service": "payments"})
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Velopay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
