package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"comboplanner/internal/api"
	"comboplanner/internal/logging"
	"comboplanner/internal/models"
	"comboplanner/internal/planner"
)

var jsonHeader = map[string]string{
	"Content-Type":                 "application/json",
	"Cache-Control":                "no-store",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

type handler struct {
	service *planner.Service
	limiter *api.RateLimiter
}

// handle serves the combo contract behind a function URL. The limiter lives
// in the warm container only, so limits are best effort.
func (h *handler) handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	ctx = logging.WithRequestID(ctx, event.RequestContext.RequestID)
	log := logging.Ctx(ctx)

	switch event.RequestContext.HTTP.Method {
	case http.MethodOptions:
		return events.LambdaFunctionURLResponse{StatusCode: http.StatusNoContent, Headers: jsonHeader}, nil
	case http.MethodPost:
	default:
		return errResp(http.StatusMethodNotAllowed, "Method Not Allowed")
	}

	if !h.limiter.Allow(event.RequestContext.HTTP.SourceIP) {
		return errResp(http.StatusTooManyRequests, "Too many requests. Please try again later.")
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}

	var req models.PreferencesRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(http.StatusBadRequest, "invalid JSON body")
	}

	resp, err := h.service.Recommend(ctx, req.Sanitize())
	if err != nil {
		log.Error().Err(err).Msg("recommendation failed")
		return errResp(http.StatusInternalServerError, "Failed to load menu")
	}

	respJSON, err := json.Marshal(resp)
	if err != nil {
		return errResp(http.StatusInternalServerError, "failed to encode response")
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
