package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"coordinate-converter/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAddressLookup is a mock implementation of the AddressLookup interface
type MockAddressLookup struct {
	mock.Mock
}

func (m *MockAddressLookup) Lookup(ctx context.Context, latitude, longitude float64) (*models.Address, error) {
	args := m.Called(ctx, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressLookup) Search(ctx context.Context, query string) ([]models.Address, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Address), args.Error(1)
}

func TestAddressHandler_Lookup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stored := &models.Address{
		ID:           1,
		StreetNumber: "6681",
		StreetName:   "Avenida Ipiranga",
		Neighborhood: "Partenon",
		City:         "Porto Alegre",
		State:        "RS",
		Country:      "Brazil",
		PostalCode:   "90619-900",
		Latitude:     -30.0346,
		Longitude:    -51.2177,
	}

	tests := []struct {
		name           string
		lat            string
		lon            string
		mockAddress    *models.Address
		mockError      error
		mockCalled     bool
		expectedStatus int
	}{
		{
			name:           "missing query parameters",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid latitude format",
			lat:            "north",
			lon:            "-51.2177",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid longitude format",
			lat:            "-30.0346",
			lon:            "west",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "address found",
			lat:            "-30.0346",
			lon:            "-51.2177",
			mockAddress:    stored,
			mockCalled:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "address not persisted",
			lat:            "-30.0346",
			lon:            "-51.2177",
			mockAddress:    nil,
			mockCalled:     true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "service error",
			lat:            "-30.0346",
			lon:            "-51.2177",
			mockError:      assert.AnError,
			mockCalled:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAddressLookup)
			handler := NewAddressHandler(mockSvc)

			if tt.mockCalled {
				lat, _ := strconv.ParseFloat(tt.lat, 64)
				lon, _ := strconv.ParseFloat(tt.lon, 64)
				mockSvc.On("Lookup", mock.Anything, lat, lon).Return(tt.mockAddress, tt.mockError)
			}

			router := gin.New()
			router.GET("/addresses", handler.Lookup)

			req := httptest.NewRequest(http.MethodGet, "/addresses?lat="+tt.lat+"&lon="+tt.lon, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			if tt.expectedStatus == http.StatusOK {
				var body models.Address
				assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, *stored, body)
			}

			if tt.mockCalled {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}

func TestAddressHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		mockAddresses  []models.Address
		mockError      error
		mockCalled     bool
		expectedStatus int
	}{
		{
			name:           "missing query parameter",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "matches found",
			query:          "Ipiranga",
			mockAddresses:  []models.Address{{ID: 1, StreetName: "Avenida Ipiranga", City: "Porto Alegre"}},
			mockCalled:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "service error",
			query:          "Ipiranga",
			mockError:      assert.AnError,
			mockCalled:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAddressLookup)
			handler := NewAddressHandler(mockSvc)

			if tt.mockCalled {
				mockSvc.On("Search", mock.Anything, tt.query).Return(tt.mockAddresses, tt.mockError)
			}

			router := gin.New()
			router.GET("/addresses/search", handler.Search)

			req := httptest.NewRequest(http.MethodGet, "/addresses/search?q="+tt.query, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			if tt.expectedStatus == http.StatusOK {
				var body []models.Address
				assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, tt.mockAddresses, body)
			}

			if tt.mockCalled {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}
