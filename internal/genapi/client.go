package genapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// NutritionRequest carries the profile-derived fields for nutrition
// plan generation. Days is forced to 1 during onboarding.
type NutritionRequest struct {
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	Activity       string  `json:"activity"`
	Goal           string  `json:"goal"`
	Diet           string  `json:"diet"`
	Days           int     `json:"days"`
}

// NutritionResult is a successful nutrition generation outcome.
type NutritionResult struct {
	Plan        json.RawMessage
	Calories    int
	Fingerprint string
}

// WorkoutRequest carries the profile-derived fields for workout
// plan generation.
type WorkoutRequest struct {
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	Goal         string `json:"goal"`
	Experience   string `json:"experience"`
	TrainingDays int    `json:"training_days"`
}

// WorkoutResult is a successful workout generation outcome.
type WorkoutResult struct {
	Plan string
}

// Avatar is the request body for journey stage generation.
type Avatar struct {
	Goal       string `json:"goal"`
	Diet       string `json:"diet"`
	Frequency  int    `json:"frequency"`
	Experience string `json:"experience"`
	Gender     string `json:"gender"`
}

// StagesResult is a successful journey stage generation outcome.
type StagesResult struct {
	Stages json.RawMessage
	Count  int
}

// MealAnalysis is the structured nutritional estimate extracted from a
// meal photo.
type MealAnalysis struct {
	Name       string  `json:"name"`
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	Confidence float64 `json:"confidence"`
}

// BarcodeFood is a remote food database entry, nutrition per 100g.
type BarcodeFood struct {
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	Barcode        string  `json:"barcode"`
	CaloriesPer100 float64 `json:"calories_per_100"`
	ProteinPer100  float64 `json:"protein_per_100"`
	CarbsPer100    float64 `json:"carbs_per_100"`
	FatPer100      float64 `json:"fat_per_100"`
}

// Client provides access to the remote generation and food endpoints.
type Client interface {
	GenerateNutrition(ctx context.Context, req NutritionRequest) (*NutritionResult, error)
	GenerateWorkout(ctx context.Context, req WorkoutRequest) (*WorkoutResult, error)
	GenerateStages(ctx context.Context, avatar Avatar) (*StagesResult, error)
	AnalyzeMealPhoto(ctx context.Context, image []byte) (*MealAnalysis, error)
	LookupBarcode(ctx context.Context, code string) (*BarcodeFood, error)

	// Available checks whether the API server is reachable. It doubles
	// as the connectivity probe for offline detection.
	Available(ctx context.Context) bool
}

// httpClient implements Client against the fitflow HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the configured API server.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type nutritionEnvelope struct {
	OK          bool            `json:"ok"`
	Plan        json.RawMessage `json:"plan"`
	Calories    int             `json:"calories"`
	Fingerprint string          `json:"fingerprint"`
	Error       string          `json:"error"`
	Message     string          `json:"message"`
}

func (c *httpClient) GenerateNutrition(ctx context.Context, req NutritionRequest) (*NutritionResult, error) {
	req.Days = 1

	var env nutritionEnvelope
	if err := c.call(ctx, TaskNutrition, http.MethodPost, "/api/ai/nutrition/onboarding", req, &env); err != nil {
		return nil, err
	}
	if !env.OK {
		return nil, fmt.Errorf("%w: %s", ErrRemote, remoteMessage(env.Error, env.Message))
	}
	if len(env.Plan) == 0 {
		return nil, fmt.Errorf("%w: missing plan payload", ErrBadResponse)
	}
	return &NutritionResult{
		Plan:        env.Plan,
		Calories:    env.Calories,
		Fingerprint: env.Fingerprint,
	}, nil
}

func (c *httpClient) GenerateWorkout(ctx context.Context, req WorkoutRequest) (*WorkoutResult, error) {
	var env struct {
		Plan string `json:"plan"`
	}
	if err := c.call(ctx, TaskWorkout, http.MethodPost, "/api/ai/workout", req, &env); err != nil {
		return nil, err
	}
	if env.Plan == "" {
		return nil, fmt.Errorf("%w: missing workout plan", ErrBadResponse)
	}
	return &WorkoutResult{Plan: env.Plan}, nil
}

func (c *httpClient) GenerateStages(ctx context.Context, avatar Avatar) (*StagesResult, error) {
	body := struct {
		Avatar Avatar `json:"avatar"`
	}{Avatar: avatar}

	var env struct {
		OK     bool            `json:"ok"`
		Stages json.RawMessage `json:"stages"`
		Count  int             `json:"count"`
		Error  string          `json:"error"`
	}
	if err := c.call(ctx, TaskStages, http.MethodPost, "/api/journey/stages/generate", body, &env); err != nil {
		return nil, err
	}
	if !env.OK {
		return nil, fmt.Errorf("%w: %s", ErrRemote, remoteMessage(env.Error, ""))
	}
	return &StagesResult{Stages: env.Stages, Count: env.Count}, nil
}

func (c *httpClient) AnalyzeMealPhoto(ctx context.Context, image []byte) (*MealAnalysis, error) {
	body := struct {
		Image string `json:"image"`
	}{Image: base64.StdEncoding.EncodeToString(image)}

	var env struct {
		OK    bool   `json:"ok"`
		Text  string `json:"text"`
		Error string `json:"error"`
	}
	if err := c.call(ctx, TaskVision, http.MethodPost, "/api/ai/meal/vision", body, &env); err != nil {
		return nil, err
	}
	if !env.OK {
		return nil, fmt.Errorf("%w: %s", ErrRemote, remoteMessage(env.Error, ""))
	}

	// The model answers in prose around a JSON object; extract it.
	analysis, err := ExtractJSON[MealAnalysis](env.Text, validateMealAnalysis)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func validateMealAnalysis(a MealAnalysis) error {
	if a.Name == "" {
		return fmt.Errorf("missing meal name")
	}
	if a.Calories < 0 {
		return fmt.Errorf("negative calories")
	}
	return nil
}

func (c *httpClient) LookupBarcode(ctx context.Context, code string) (*BarcodeFood, error) {
	var env struct {
		OK   bool        `json:"ok"`
		Food BarcodeFood `json:"food"`
	}
	err := c.call(ctx, TaskBarcode, http.MethodGet, "/api/food/barcode/"+code, nil, &env)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, fmt.Errorf("barcode %s: %w", code, ErrFoodNotFound)
		}
		return nil, err
	}
	if !env.OK || env.Food.Name == "" {
		return nil, fmt.Errorf("barcode %s: %w", code, ErrFoodNotFound)
	}
	return &env.Food, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// statusError carries a non-2xx HTTP status for callers that need to
// branch on specific codes (barcode 404s).
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.code, e.body)
}

func (e *statusError) Unwrap() error { return ErrRemote }

// call performs one JSON request bounded by the task's timeout and maps
// transport failures onto the package error taxonomy.
func (c *httpClient) call(ctx context.Context, task TaskType, method, path string, body, out any) error {
	start := time.Now()
	err := c.doRequest(ctx, task, method, path, body, out)
	latency := time.Since(start).Milliseconds()

	c.observer.OnCallComplete(CallEvent{
		Task:      task,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *httpClient) doRequest(ctx context.Context, task TaskType, method, path string, body, out any) error {
	timeoutMs := c.cfg.TaskTimeout(task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		if isConnectionError(err) {
			return ErrUnavailable
		}
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &statusError{code: httpResp.StatusCode, body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func remoteMessage(code, message string) string {
	if message != "" {
		return message
	}
	if code != "" {
		return code
	}
	return "unknown error"
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadResponse):
		return "BAD_RESPONSE"
	case errors.Is(err, ErrRemote):
		return "REMOTE"
	default:
		return "UNKNOWN"
	}
}
