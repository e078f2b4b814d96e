package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/fetch"
	"github.com/Domenick1991/skyjourney/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) (*flights.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.SearchResult), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func flightRouter(svc flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewFlightHandler(svc).Register(r.Group("/flights"))
	return r
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	maxPrice := 400.0
	stops := 0
	expected := flights.SearchInput{
		Query:  fetch.SearchQuery{From: "New York", To: "LAX", Passengers: 2},
		Filter: catalog.Filter{MaxPrice: &maxPrice, Stops: &stops},
		Order:  catalog.Order{Field: catalog.FieldPrice, Direction: catalog.Desc},
	}
	result := &flights.SearchResult{
		Flights: []domain.Flight{{ID: "1", FlightNumber: "SJ101", Price: 349}},
		Total:   4,
		Order:   expected.Order,
	}
	mockService.On("Search", mock.Anything, expected).Return(result, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights?from=New+York&to=LAX&passengers=2&max_price=400&stops=0&sort=price&dir=desc", nil)
	flightRouter(mockService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response flights.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 4, response.Total)
	assert.Equal(t, "SJ101", response.Flights[0].FlightNumber)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_toggle(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  catalog.Order
	}{
		{name: "same field flips", query: "sort=price&dir=asc&toggle=price", want: catalog.Order{Field: "price", Direction: catalog.Desc}},
		{name: "same field flips back", query: "sort=price&dir=desc&toggle=price", want: catalog.Order{Field: "price", Direction: catalog.Asc}},
		{name: "implicit ascending flips", query: "sort=price&toggle=price", want: catalog.Order{Field: "price", Direction: catalog.Desc}},
		{name: "new field starts ascending", query: "sort=price&dir=desc&toggle=duration", want: catalog.Order{Field: "duration", Direction: catalog.Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockFlightUseCase{}
			mockService.On("Search", mock.Anything, mock.MatchedBy(func(in flights.SearchInput) bool {
				return in.Order == tt.want
			})).Return(&flights.SearchResult{}, nil)

			w := httptest.NewRecorder()
			flightRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights?"+tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestFlightHandler_list_badDirection(t *testing.T) {
	mockService := &MockFlightUseCase{}
	w := httptest.NewRecorder()
	flightRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights?sort=price&dir=sideways", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestFlightHandler_list_error(t *testing.T) {
	mockService := &MockFlightUseCase{}
	mockService.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("search flights: boom"))

	w := httptest.NewRecorder()
	flightRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"search flights: boom"}`, w.Body.String())
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/flights/1", nil)

	flight := &domain.Flight{ID: "1", FlightNumber: "SJ101", DepartureAirport: "JFK", ArrivalAirport: "LAX", Price: 349}
	mockService.On("GetByID", c.Request.Context(), "1").Return(flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_notFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	mockService.On("GetByID", mock.Anything, "99").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	flightRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
