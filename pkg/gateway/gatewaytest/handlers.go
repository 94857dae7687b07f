package gatewaytest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/gateway"
)

type userIDKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, envelope{Error: "Authorization header required"})
			return
		}
		id, err := s.parse(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Error: "Invalid or expired token"})
			return
		}
		s.mu.Lock()
		_, exists := s.users[id]
		s.mu.Unlock()
		if !exists {
			writeJSON(w, http.StatusUnauthorized, envelope{Error: "User not found"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, id)))
	})
}

func currentUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey{}).(int64)
	return id
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

type authPayload struct {
	Token string       `json:"token"`
	User  account.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds account.RegisterCredentials
	if !decode(r, &creds) || creds.Email == "" || creds.Name == "" {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(creds.Password) < 6 {
		writeFail(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.createUser(creds.Email, creds.Password, creds.Name)
	if errors.Is(err, errEmailTaken) {
		writeFail(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	writeOK(w, http.StatusCreated, "User registered successfully", authPayload{
		Token: s.sign(u.ID),
		User:  account.User{ID: u.ID, Email: u.Email, Name: u.Name},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds account.LoginCredentials
	if !decode(r, &creds) {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(creds.Email))]
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	rec := s.users[id]
	if bcrypt.CompareHashAndPassword(rec.hash, []byte(creds.Password)) != nil {
		writeFail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeOK(w, http.StatusOK, "Login successful", authPayload{
		Token: s.sign(id),
		User:  account.User{ID: rec.user.ID, Email: rec.user.Email, Name: rec.user.Name},
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, http.StatusOK, "", s.users[currentUserID(r)].user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd account.ProfileUpdate
	if !decode(r, &upd) {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if upd.Gender != nil && !upd.Gender.Valid() ||
		upd.FitnessGoal != nil && !upd.FitnessGoal.Valid() ||
		upd.ActivityLevel != nil && !upd.ActivityLevel.Valid() {
		writeFail(w, http.StatusBadRequest, "Invalid profile value")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.users[currentUserID(r)]
	rec.user = upd.Apply(rec.user)
	rec.user.UpdatedAt = s.now
	writeOK(w, http.StatusOK, "Profile updated successfully", rec.user)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := currentUserID(r)
	delete(s.emails, s.users[id].user.Email)
	delete(s.users, id)
	writeOK(w, http.StatusOK, "Account deleted successfully", nil)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	group := r.URL.Query().Get("muscle_group")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gateway.Exercise, 0, len(s.exercises))
	for _, ex := range s.exercises {
		if category != "" && ex.Category != category {
			continue
		}
		if group != "" && ex.MuscleGroup != group {
			continue
		}
		out = append(out, ex)
	}
	writeOK(w, http.StatusOK, "", out)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid exercise ID")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.exercises {
		if ex.ID == id {
			writeOK(w, http.StatusOK, "", ex)
			return
		}
	}
	writeFail(w, http.StatusNotFound, "Exercise not found")
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gateway.WorkoutPlan, 0)
	for _, p := range s.plans {
		if p.UserID == uid {
			out = append(out, p)
		}
	}
	writeOK(w, http.StatusOK, "", out)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var p gateway.WorkoutPlan
	if !decode(r, &p) || p.Name == "" {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = int64(len(s.plans) + 1)
	p.UserID = currentUserID(r)
	p.CreatedAt, p.UpdatedAt = s.now, s.now
	s.plans = append(s.plans, p)
	writeOK(w, http.StatusCreated, "Workout plan created", p)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gateway.WorkoutLog, 0)
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].UserID != uid {
			continue
		}
		out = append(out, s.logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	writeOK(w, http.StatusOK, "", out)
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var l gateway.WorkoutLog
	if !decode(r, &l) || l.ExerciseID == 0 {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = int64(len(s.logs) + 1)
	l.UserID = currentUserID(r)
	l.CreatedAt, l.UpdatedAt = s.now, s.now
	s.logs = append(s.logs, l)
	writeOK(w, http.StatusCreated, "Workout logged", l)
}
