package genapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return cfg
}

func shortTimeouts(cfg Config, ms int) Config {
	for task, tc := range cfg.Tasks {
		tc.TimeoutMs = ms
		cfg.Tasks[task] = tc
	}
	cfg.TimeoutMs = ms
	return cfg
}

func TestGenerateNutrition_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/nutrition/onboarding", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req NutritionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "female", req.Gender)
		assert.Equal(t, 29, req.Age)
		assert.Equal(t, 165.0, req.HeightCm)
		assert.Equal(t, 68.0, req.WeightKg)
		assert.Equal(t, 60.0, req.TargetWeightKg)
		assert.Equal(t, "light", req.Activity)
		assert.Equal(t, "loss", req.Goal)
		assert.Equal(t, 1, req.Days, "onboarding always requests a single day")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":          true,
			"plan":        map[string]any{"meals": []string{"breakfast"}},
			"calories":    1800,
			"fingerprint": "abc123",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	res, err := client.GenerateNutrition(context.Background(), NutritionRequest{
		Gender: "female", Age: 29, HeightCm: 165, WeightKg: 68, TargetWeightKg: 60,
		Activity: "light", Goal: "loss", Diet: "none",
		Days: 7, // must be overridden to 1
	})

	require.NoError(t, err)
	assert.Equal(t, 1800, res.Calories)
	assert.Equal(t, "abc123", res.Fingerprint)
	assert.JSONEq(t, `{"meals":["breakfast"]}`, string(res.Plan))
}

func TestGenerateNutrition_RemoteFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok": false, "error": "PLAN_GENERATION_FAILED", "message": "model refused",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.GenerateNutrition(context.Background(), NutritionRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "model refused")
}

func TestGenerateNutrition_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := shortTimeouts(testConfig(srv.URL), 50)
	client := NewClient(cfg, NoopObserver{})
	_, err := client.GenerateNutrition(context.Background(), NutritionRequest{})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerateNutrition_Unavailable(t *testing.T) {
	cfg := shortTimeouts(testConfig("http://127.0.0.1:1"), 1000)
	client := NewClient(cfg, NoopObserver{})

	_, err := client.GenerateNutrition(context.Background(), NutritionRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateNutrition_HTTPErrorIsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.GenerateNutrition(context.Background(), NutritionRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemote)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestGenerateNutrition_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.GenerateNutrition(context.Background(), NutritionRequest{})

	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestGenerateWorkout_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/workout", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"plan": "Day 1: full body\nDay 2: rest"})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	res, err := client.GenerateWorkout(context.Background(), WorkoutRequest{
		Gender: "female", Goal: "loss", Experience: "beginner", TrainingDays: 3,
	})

	require.NoError(t, err)
	assert.Contains(t, res.Plan, "Day 1")
}

func TestGenerateStages_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/journey/stages/generate", r.URL.Path)

		var body struct {
			Avatar Avatar `json:"avatar"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "loss", body.Avatar.Goal)
		assert.Equal(t, 3, body.Avatar.Frequency)

		json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"stages": []map[string]any{{"name": "Foundation"}, {"name": "Momentum"}},
			"count":  2,
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	res, err := client.GenerateStages(context.Background(), Avatar{
		Goal: "loss", Diet: "none", Frequency: 3, Experience: "beginner", Gender: "female",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Contains(t, string(res.Stages), "Foundation")
}

func TestAnalyzeMealPhoto_ExtractsEmbeddedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/meal/vision", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"text": "Here is my analysis:\n```json\n" +
				`{"name":"Caesar salad","calories":520,"protein_g":28,"carbs_g":18,"fat_g":36,"confidence":0.82}` +
				"\n```\nEnjoy!",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	res, err := client.AnalyzeMealPhoto(context.Background(), []byte("fake image bytes"))

	require.NoError(t, err)
	assert.Equal(t, "Caesar salad", res.Name)
	assert.Equal(t, 520.0, res.Calories)
	assert.InDelta(t, 0.82, res.Confidence, 0.0001)
}

func TestAnalyzeMealPhoto_InvalidAnalysisRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"text": `{"calories":300}`, // no name
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.AnalyzeMealPhoto(context.Background(), []byte("img"))

	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestLookupBarcode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/food/barcode/7290004127342", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"food": map[string]any{
				"name": "Greek Yogurt 5%", "barcode": "7290004127342",
				"calories_per_100": 97, "protein_per_100": 9,
			},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	food, err := client.LookupBarcode(context.Background(), "7290004127342")

	require.NoError(t, err)
	assert.Equal(t, "Greek Yogurt 5%", food.Name)
	assert.Equal(t, 97.0, food.CaloriesPer100)
}

func TestLookupBarcode_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.LookupBarcode(context.Background(), "0000000000000")

	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	down := NewClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, down.Available(context.Background()))
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }

func TestObserver_ReceivesCallEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"plan": "x"})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewClient(testConfig(srv.URL), obs)
	_, err := client.GenerateWorkout(context.Background(), WorkoutRequest{})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, TaskWorkout, obs.events[0].Task)
	assert.True(t, obs.events[0].Success)
}
