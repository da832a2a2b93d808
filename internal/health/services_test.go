package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

func newBackend(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(api.Options{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		CSRFCookie: "XSRF-TOKEN",
		CSRFHeader: "X-XSRF-TOKEN",
	}, api.NewSessionState(), zerolog.Nop())
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("login marks the session valid", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			writeJSON(t, w, Profile{ID: 1, Username: "alice"})
		}))
		svc := NewAuthService(client)

		p, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "hunter22"})

		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.True(t, client.Session().IsValid())
	})

	t.Run("failed login leaves the session invalid", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		svc := NewAuthService(client)

		_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})

		require.Error(t, err)
		assert.True(t, api.IsAuth(err))
		assert.False(t, client.Session().IsValid())
	})

	t.Run("logout clears the session even when the call fails", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		client.Session().MarkValid()
		svc := NewAuthService(client)

		err := svc.Logout(ctx)

		require.Error(t, err)
		assert.False(t, client.Session().IsValid())
	})

	t.Run("register surfaces a conflict for duplicates", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"username already taken"}`))
		}))
		svc := NewAuthService(client)

		_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "a@example.com", Password: "hunter2222"})

		assert.True(t, api.IsConflict(err))
	})

	t.Run("register rejects a bad email locally", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("invalid payload must not reach the backend")
		}))
		svc := NewAuthService(client)

		_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "nope", Password: "hunter2222"})

		require.True(t, api.IsValidation(err))
		assert.Contains(t, api.AsError(err).Fields, "Email")
	})

	t.Run("refresh session records the probe outcome", func(t *testing.T) {
		ok := false
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, Profile{ID: 1, Username: "alice"})
		}))
		svc := NewAuthService(client)

		assert.False(t, svc.RefreshSession(ctx))
		assert.False(t, client.Session().IsValid())

		ok = true
		assert.True(t, svc.RefreshSession(ctx))
		assert.True(t, client.Session().IsValid())
	})
}

func TestWaterService(t *testing.T) {
	ctx := context.Background()

	t.Run("list decodes a page", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/water", r.URL.Path)
			writeJSON(t, w, api.Page[WaterIntake]{
				Content: []WaterIntake{{ID: 1, AmountLtr: 0.5}},
				Page:    api.PageMeta{Number: 0, Size: 10, TotalElements: 1, TotalPages: 1},
			})
		}))
		svc := NewWaterService(client)

		page, err := svc.List(ctx, api.PageRequest{Page: 0, Size: 10})

		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, 0.5, page.Content[0].AmountLtr)
	})

	t.Run("create returns the server-confirmed record", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var req CreateWaterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(t, w, WaterIntake{ID: 7, AmountLtr: req.AmountLtr, CreatedAt: time.Now()})
		}))
		svc := NewWaterService(client)

		entry, err := svc.Create(ctx, CreateWaterRequest{AmountLtr: 0.33})

		require.NoError(t, err)
		assert.Equal(t, int64(7), entry.ID)
	})

	t.Run("create with non-positive amount fails locally", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("invalid payload must not reach the backend")
		}))
		svc := NewWaterService(client)

		_, err := svc.Create(ctx, CreateWaterRequest{AmountLtr: -1})

		require.True(t, api.IsValidation(err))
		assert.Contains(t, api.AsError(err).Fields, "AmountLtr")
	})

	t.Run("delete targets the record path", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/water/42", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		svc := NewWaterService(client)

		require.NoError(t, svc.Delete(ctx, 42))
	})
}

func TestFoodService(t *testing.T) {
	ctx := context.Background()

	t.Run("create validates meal type locally", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("invalid payload must not reach the backend")
		}))
		svc := NewFoodService(client)

		_, err := svc.Create(ctx, CreateFoodRequest{Name: "Pasta", Calories: 650, MealType: "midnight"})

		require.True(t, api.IsValidation(err))
		assert.Contains(t, api.AsError(err).Fields, "MealType")
	})

	t.Run("update targets the record path", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/food/3", r.URL.Path)
			writeJSON(t, w, FoodIntake{ID: 3, Name: "Pasta", Calories: 600, MealType: MealDinner})
		}))
		svc := NewFoodService(client)

		entry, err := svc.Update(ctx, 3, UpdateFoodRequest{Name: "Pasta", Calories: 600, MealType: MealDinner})

		require.NoError(t, err)
		assert.Equal(t, 600, entry.Calories)
	})
}

func TestWorkoutService(t *testing.T) {
	ctx := context.Background()

	t.Run("create requires positive duration", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("invalid payload must not reach the backend")
		}))
		svc := NewWorkoutService(client)

		_, err := svc.Create(ctx, CreateWorkoutRequest{Activity: "run", DurationMin: 0})

		require.True(t, api.IsValidation(err))
	})

	t.Run("list decodes a page", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/workout", r.URL.Path)
			writeJSON(t, w, api.Page[Workout]{
				Content: []Workout{{ID: 1, Activity: "run", DurationMin: 30}},
				Page:    api.PageMeta{Number: 0, Size: 10, TotalElements: 1, TotalPages: 1},
			})
		}))
		svc := NewWorkoutService(client)

		page, err := svc.List(ctx, api.PageRequest{Page: 0, Size: 10})

		require.NoError(t, err)
		assert.Equal(t, "run", page.Content[0].Activity)
	})
}

func TestScoreService(t *testing.T) {
	ctx := context.Background()

	t.Run("current", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health-index/current", r.URL.Path)
			writeJSON(t, w, Score{Date: "2026-08-23", Value: 72.5, WaterScore: 80, FoodScore: 65, WorkoutScore: 72})
		}))
		svc := NewScoreService(client)

		score, err := svc.Current(ctx)

		require.NoError(t, err)
		assert.Equal(t, 72.5, score.Value)
	})

	t.Run("for date", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health-index/date/2026-08-01", r.URL.Path)
			writeJSON(t, w, Score{Date: "2026-08-01", Value: 55})
		}))
		svc := NewScoreService(client)

		score, err := svc.ForDate(ctx, "2026-08-01")

		require.NoError(t, err)
		assert.Equal(t, "2026-08-01", score.Date)
	})

	t.Run("last days", func(t *testing.T) {
		client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health-index/last-days/7", r.URL.Path)
			writeJSON(t, w, []Score{{Date: "2026-08-17", Value: 60}, {Date: "2026-08-18", Value: 64}})
		}))
		svc := NewScoreService(client)

		scores, err := svc.LastDays(ctx, 7)

		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, 64.0, scores[1].Value)
	})
}
