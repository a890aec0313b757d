package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/services"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := a.users.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *common.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, messageBody{Message: verr.Message, Errors: verr.Reasons})
		case errors.Is(err, common.ErrorAlreadyExists):
			writeMsg(w, http.StatusBadRequest, msgUserExists)
		default:
			a.authError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, authResult{Token: res.Token, User: toUserDTO(res.User)})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := a.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMsg(w, http.StatusBadRequest, msgInvalidCredential)
			return
		}
		a.authError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResult{Token: res.Token, User: toUserDTO(res.User)})
}

func (a *API) me(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	u, err := a.users.Me(r.Context(), caller)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMsg(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		a.authError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (a *API) authError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error(r.Context(), "auth request failed", "error", err, "path", r.URL.Path)
	writeMsg(w, http.StatusInternalServerError, msgServerError)
}
