package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
)

const (
	codeValidation         = "VALIDATION_ERROR"
	codeRouteNotFound      = "ROUTE_NOT_FOUND"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
	codeInternal           = "INTERNAL_ERROR"
)

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message, requestID string) {
	resp := errorResponse{
		Error: errorBody{
			Code:      code,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			RequestID: requestID,
		},
	}
	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.log.Error("failed to write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, codeValidation, err.Error(), uuid.NewString())
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	requestID := uuid.NewString()
	api.log.Error("unexpected error", zap.String("requestId", requestID),
		zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, codeInternal,
		fmt.Sprintf("An unexpected error occurred. Please contact support with request ID: %s", requestID), requestID)
}

// getStatusCode writes the error envelope that matches err's code.
func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		requestID := uuid.NewString()
		api.log.Warn("route computation timed out", zap.String("requestId", requestID), zap.Error(err))
		api.errorResponse(w, r, http.StatusServiceUnavailable, codeServiceUnavailable, "Route computation timeout", requestID)
		return
	}

	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		requestID := uuid.NewString()
		api.log.Info("route not found", zap.String("requestId", requestID), zap.Error(err))
		api.errorResponse(w, r, http.StatusNotFound, codeRouteNotFound, err.Error(), requestID)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
