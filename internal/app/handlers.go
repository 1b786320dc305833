package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

//	@Title			otpd swagger API
//	@Version		0.1
//	@Description	Issues, caches and validates one-time passcodes scoped by user and purpose.
//
// @Host		localhost:9000
// @BasePath	/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
type GenerateRequest struct {
	UserID  string `json:"userId" validate:"required" example:"6650a1c2"`
	Purpose string `json:"purpose" validate:"required" example:"login"`
}
type GenerateResponse struct {
	OTP string `json:"otp" example:"123456"`
}
type ValidateRequest struct {
	UserID  string `validate:"required"`
	Purpose string `validate:"required"`
	OTP     string `validate:"required"`
}
type ValidateResponse struct {
	IsValid bool `json:"isValid"`
}
type InvalidateRequest struct {
	UserID  string `json:"userId" validate:"required" example:"6650a1c2"`
	Purpose string `json:"purpose,omitempty" example:"login"`
}
type InvalidateResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

const internalError = "internal server error"

// @Summary		Health check
// @Produce		plain
// @Success		200	{string}	string	"Server is working!"
// @Router			/ [get]
func (a *Application) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain")
	fmt.Fprintf(w, "Server is working! version : %s", a.version)
}

// @Summary		Generate endpoint
// @Description	Returns the code still valid for the user and purpose, or issues a new one.
// @Tags			otp
// @Accept			json
// @Produce		json
// @Param			request	body		GenerateRequest	true	"user id and purpose"
// @Success		200		{object}	GenerateResponse
// @Router			/otp/generate [post]
func (a *Application) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	code, err := a.otp.Generate(r.Context(), req.UserID, req.Purpose)
	if err != nil {
		a.logger.Error(fmt.Sprintf("err when generating OTP code: %s", err.Error()))
		http.Error(w, internalError, http.StatusInternalServerError)
		return
	}
	a.writeJSON(w, http.StatusOK, GenerateResponse{OTP: code})
}

// @Summary		Validate endpoint
// @Description	Reports whether the code is the one currently cached for the user and purpose.
// @Tags			otp
// @Produce		json
// @Param			userId	query		string	true	"user id"
// @Param			purpose	query		string	true	"purpose"	example(login)
// @Param			otp		query		string	true	"code"		example(123456)
// @Success		200		{object}	ValidateResponse
// @Router			/otp/validate [get]
func (a *Application) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := ValidateRequest{
		UserID:  query.Get("userId"),
		Purpose: query.Get("purpose"),
		OTP:     query.Get("otp"),
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, "userId, purpose and otp are required", http.StatusBadRequest)
		return
	}
	ok, err := a.otp.Validate(r.Context(), req.UserID, req.Purpose, req.OTP)
	if err != nil {
		a.logger.Error(fmt.Sprintf("err when validating OTP code: %s", err.Error()))
		http.Error(w, internalError, http.StatusInternalServerError)
		return
	}
	a.writeJSON(w, http.StatusOK, ValidateResponse{IsValid: ok})
}

// @Summary		Invalidate endpoint
// @Description	Deletes the codes of a user for one purpose, or for every purpose when purpose is omitted.
// @Tags			otp
// @Accept			json
// @Produce		json
// @Param			request	body		InvalidateRequest	true	"user id and optional purpose"
// @Success		200		{object}	InvalidateResponse
// @Router			/otp/invalidate [post]
func (a *Application) InvalidateHandler(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if !a.decode(w, r, &req) {
		return
	}
	deleted, err := a.otp.Invalidate(r.Context(), req.UserID, req.Purpose)
	if err != nil {
		a.logger.Error(fmt.Sprintf("err when invalidating OTP codes: %s", err.Error()))
		http.Error(w, internalError, http.StatusInternalServerError)
		return
	}
	a.writeJSON(w, http.StatusOK, InvalidateResponse{DeletedCount: deleted})
}

// @Summary		Delete all endpoint
// @Description	Deletes every record and flushes the whole cache.
// @Tags			admin
// @Security		BearerAuth
// @Success		204	"No Content"
// @Router			/otp/delete-all [delete]
func (a *Application) DeleteAllHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := a.otp.DeleteAll(r.Context())
	if err != nil {
		a.logger.Error(fmt.Sprintf("err when deleting all OTP codes: %s", err.Error()))
		http.Error(w, internalError, http.StatusInternalServerError)
		return
	}
	a.logger.Warn(fmt.Sprintf("deleted all OTP codes: %d records", deleted))
	w.WriteHeader(http.StatusNoContent)
}

func (a *Application) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" || !strings.HasPrefix(token, "Bearer ") {
			http.Error(w, "unauthorized access", http.StatusUnauthorized)
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		if !a.jwt.IsAdmin(token) {
			http.Error(w, "unauthorized access", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler should go on.
func (a *Application) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	reqDecoder := json.NewDecoder(r.Body)
	reqDecoder.DisallowUnknownFields() // for strict validation
	if err := reqDecoder.Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return false
	}
	return true
}

func (a *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("err when encoding response " + err.Error())
	}
}
