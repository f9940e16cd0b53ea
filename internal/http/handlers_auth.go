package http

import (
	"net/http"
	"strings"
)

type credentialsRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Secret == "" {
		writeError(w, http.StatusUnprocessableEntity, "name and secret are required")
		return
	}

	ok, err := s.auth.Login(r.Context(), req.Name, req.Secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	id, _ := s.auth.Current()
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Secret == "" {
		writeError(w, http.StatusUnprocessableEntity, "name and secret are required")
		return
	}

	ok, err := s.auth.Register(r.Context(), req.Name, req.Secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	if !ok {
		writeError(w, http.StatusConflict, "name already taken")
		return
	}
	id, _ := s.auth.Current()
	writeJSON(w, http.StatusCreated, id)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.auth.Current()
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.auth.Members())
}
