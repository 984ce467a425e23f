package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Chouhan705/DateMapz/internal/types"
)

// MockPlanService is a mock implementation of Service
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) GeneratePlan(ctx context.Context, req types.DatePlanRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func doRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/date-plan", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.GenerateDatePlan(rec, req)
	return rec
}

func TestGenerateDatePlan_Success(t *testing.T) {
	svc := new(MockPlanService)
	svc.On("GeneratePlan", mock.Anything, mock.Anything).Return(&types.Itinerary{
		PlanID:    uuid.New(),
		PlanTitle: "A Lovely Evening",
		Stops:     []types.StopDraft{{StopNumber: 1, Name: "First"}, {StopNumber: 2, Name: "Second"}},
	}, nil)

	h := NewHandler(svc, testLogger())
	rec := doRequest(t, h, `{"location":{"lat":19.2,"lng":72.9},"dateVibe":"Romantic"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp types.Itinerary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A Lovely Evening", resp.PlanTitle)
	assert.Len(t, resp.Stops, 2)
}

func TestGenerateDatePlan_NoInputFields(t *testing.T) {
	svc := new(MockPlanService)
	h := NewHandler(svc, testLogger())

	rec := doRequest(t, h, `{"dateVibe":"Romantic"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GeneratePlan", mock.Anything, mock.Anything)
}

func TestGenerateDatePlan_AmbiguousInputFields(t *testing.T) {
	svc := new(MockPlanService)
	h := NewHandler(svc, testLogger())

	rec := doRequest(t, h, `{"location":{"lat":1,"lng":2},"prompt":"something"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GeneratePlan", mock.Anything, mock.Anything)
}

func TestGenerateDatePlan_BadJSONBody(t *testing.T) {
	svc := new(MockPlanService)
	h := NewHandler(svc, testLogger())

	rec := doRequest(t, h, `{"location":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDatePlan_CoordinatesOutOfRange(t *testing.T) {
	svc := new(MockPlanService)
	h := NewHandler(svc, testLogger())

	rec := doRequest(t, h, `{"location":{"lat":91,"lng":0}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDatePlan_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"location not found", types.ErrLocationNotFound, http.StatusNotFound},
		{"insufficient candidates", types.ErrInsufficientCandidates, http.StatusUnprocessableEntity},
		{"no valid plan", types.ErrNoValidPlan, http.StatusInternalServerError},
		{"no json found", types.ErrNoJSONFound, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPlanService)
			svc.On("GeneratePlan", mock.Anything, mock.Anything).Return(nil, tt.err)

			h := NewHandler(svc, testLogger())
			rec := doRequest(t, h, `{"locationName":"somewhere"}`)

			assert.Equal(t, tt.want, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}
