// Package rest implementa el store de inventario sobre una API REST estilo PostgREST
// (por ejemplo Supabase). El transporte resty reintenta fallos transitorios de lectura con
// espera fija; agotados los reintentos el error llega al dominio como ConnectivityError.
package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// Config parámetros del cliente.
type Config struct {
	BaseURL    string // ej. https://<proyecto>.supabase.co/rest/v1
	APIKey     string
	RetryCount int
	RetryWait  time.Duration
	Timeout    time.Duration
}

// apiError cuerpo de error de PostgREST.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

const uniqueViolation = "23505"

// NewClient arma el cliente resty con autenticación y política de reintentos.
func NewClient(cfg Config, log *logger.Logger) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait).
		SetError(&apiError{})

	client.AddRetryCondition(retryable)
	client.AddRetryHook(func(r *resty.Response, err error) {
		if r == nil || r.Request == nil {
			return
		}
		ev := log.Warn().Int("attempt", r.Request.Attempt)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("status", r.StatusCode())
		}
		ev.Str("url", r.Request.URL).Msg("reintentando petición al store")
	})
	return client
}

// retryable solo repite lecturas ante error de transporte o 5xx: un POST o PATCH que
// falló en el servidor pudo haberse aplicado. 429 se repite siempre porque se rechazó
// antes de ejecutarse.
func retryable(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil {
		return false
	}
	if err == nil && r.StatusCode() == http.StatusTooManyRequests {
		return true
	}
	switch r.Request.Method {
	case http.MethodGet, http.MethodHead:
		return err != nil || r.StatusCode() >= http.StatusInternalServerError
	}
	return false
}

// check traduce la respuesta a la taxonomía del dominio.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &domain.ConnectivityError{Op: op, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}
	status := resp.StatusCode()
	apiErr, _ := resp.Error().(*apiError)
	if apiErr == nil {
		apiErr = &apiError{}
	}
	cause := fmt.Errorf("HTTP %d: %s", status, strings.TrimSpace(apiErr.Code+" "+apiErr.Message))
	switch {
	case apiErr.Code == uniqueViolation, status == http.StatusConflict && apiErr.Code == "":
		return &domain.DuplicateKeyError{Field: "sku", Err: cause}
	case status >= http.StatusInternalServerError, status == http.StatusTooManyRequests:
		return &domain.ConnectivityError{Op: op, Err: cause}
	}
	return &domain.StoreError{Op: op, Err: cause}
}
