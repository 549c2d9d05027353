package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wellywell/orderboard/internal/auth"
	"github.com/wellywell/orderboard/internal/types"
	"github.com/wellywell/orderboard/internal/validate"
)

func parseBody(w http.ResponseWriter, req *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

func (h *HandlerSet) handleInputErrors(err error, w http.ResponseWriter) {
	if errors.Is(err, ErrCouldNotParseBody) {
		http.Error(w, "Could not parse body",
			http.StatusBadRequest)
	} else if errors.Is(err, ErrBodyTooLarge) {
		http.Error(w, "Body too large", http.StatusRequestEntityTooLarge)
	} else if errors.Is(err, validate.ErrRegistrationIncomplete) ||
		errors.Is(err, validate.ErrUnknownGender) ||
		errors.Is(err, validate.ErrOrderEmpty) ||
		errors.Is(err, validate.ErrRoomEmpty) ||
		errors.Is(err, validate.ErrTooLong) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	} else {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}

func (h *HandlerSet) HandleAPILogin(w http.ResponseWriter, req *http.Request) {
	var data struct {
		Name   string `json:"name"`
		Job    string `json:"job"`
		Gender string `json:"gender"`
	}
	if err := parseBody(w, req, &data); err != nil {
		h.handleInputErrors(err, w)
		return
	}

	name, job, gender, err := validate.Registration(data.Name, data.Job, data.Gender)
	if err != nil {
		h.handleInputErrors(err, w)
		return
	}

	if err := h.login(w, req, name, job, gender); err != nil {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, err = w.Write([]byte("success"))
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
	}
}

func (h *HandlerSet) HandleGetOrders(w http.ResponseWriter, req *http.Request) {
	b, _, err := h.loadBoard(req.Context(), false)
	if err != nil {
		http.Error(w, "Error getting data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *HandlerSet) HandlePostOrder(w http.ResponseWriter, req *http.Request) {
	user, ok := auth.GetAuthenticatedUser(req)
	if !ok {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	var data struct {
		Room  string `json:"room"`
		Order string `json:"order"`
	}
	if err := parseBody(w, req, &data); err != nil {
		h.handleInputErrors(err, w)
		return
	}

	room, text, err := validate.Order(data.Room, data.Order)
	if err != nil {
		h.handleInputErrors(err, w)
		return
	}

	order, err := h.addOrder(req, user, room, text)
	if err != nil {
		http.Error(w, "Could not save order", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HandlerSet) HandlePostOrderDone(w http.ResponseWriter, req *http.Request) {
	order, err := h.markDone(req, chi.URLParam(req, "id"))
	if err != nil {
		if errors.Is(err, types.ErrOrderAlreadyDone) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.handleMarkDoneError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
