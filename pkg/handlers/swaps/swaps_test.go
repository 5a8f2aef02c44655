package swaps_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/swaps"
	"github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage/mocks"
)

func asUser(req *http.Request, userID string) *http.Request {
	identity := middleware.Identity{UserID: userID, Name: userID, Role: models.RoleMember}
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

func TestCreateSwap(t *testing.T) {
	requestedItemId := uuid.New().String()

	t.Run("Points Swap Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("EnsureUser", mock.Anything, "user-1", "user-1", models.RoleMember).Return(&models.User{UserId: "user-1"}, nil)
		mockStore.On("CreateSwap", mock.Anything, mock.MatchedBy(func(swap *models.Swap) bool {
			return swap.RequesterId == "user-1" && swap.SwapType == models.POINTS && swap.PointsOffered == 80
		})).Return(&models.Swap{Id: "swap-1", Status: models.PENDING, SwapType: models.POINTS}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.NewSwap{
			RequestedItemId: requestedItemId,
			SwapType:        "points",
			PointsOffered:   80,
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateSwap(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Direct Swap Without Offered Items", func(t *testing.T) {
		h := swaps.NewSwapsHandler(new(mocks.ApiStore))

		body, _ := json.Marshal(api.NewSwap{
			RequestedItemId: requestedItemId,
			SwapType:        "direct",
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateSwap(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var apiErr api.Error
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
		assert.Equal(t, "validation", apiErr.Kind)
	})

	t.Run("Self Swap", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("EnsureUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserId: "user-1"}, nil)
		mockStore.On("CreateSwap", mock.Anything, mock.Anything).Return(nil, storage.ErrSelfSwap)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.NewSwap{
			RequestedItemId: requestedItemId,
			SwapType:        "points",
			PointsOffered:   80,
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateSwap(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("EnsureUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserId: "user-1"}, nil)
		mockStore.On("CreateSwap", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientPoints)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.NewSwap{
			RequestedItemId: requestedItemId,
			SwapType:        "points",
			PointsOffered:   80,
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateSwap(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestGetSwapById(t *testing.T) {
	swapId := uuid.New()

	t.Run("Party Can Read", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetSwap", mock.Anything, swapId.String()).Return(&models.Swap{
			Id:          swapId.String(),
			RequesterId: "user-1",
			OwnerId:     "owner-1",
			Status:      models.PENDING,
		}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		req := asUser(httptest.NewRequest(http.MethodGet, "/swaps/"+swapId.String(), nil), "user-1")
		rr := httptest.NewRecorder()

		h.GetSwapById(rr, req, swapId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Strangers See Not Found", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetSwap", mock.Anything, swapId.String()).Return(&models.Swap{
			Id:          swapId.String(),
			RequesterId: "user-1",
			OwnerId:     "owner-1",
		}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		req := asUser(httptest.NewRequest(http.MethodGet, "/swaps/"+swapId.String(), nil), "stranger")
		rr := httptest.NewRecorder()

		h.GetSwapById(rr, req, swapId)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestListMySwaps(t *testing.T) {
	t.Run("Status Filter Is Uppercased", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("ListSwapsByUser", mock.Anything, "user-1", models.PENDING).Return([]models.Swap{}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		req := asUser(httptest.NewRequest(http.MethodGet, "/swaps?status=pending", nil), "user-1")
		rr := httptest.NewRecorder()

		h.ListMySwaps(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		h := swaps.NewSwapsHandler(new(mocks.ApiStore))

		req := asUser(httptest.NewRequest(http.MethodGet, "/swaps?status=archived", nil), "user-1")
		rr := httptest.NewRecorder()

		h.ListMySwaps(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRespondToSwap(t *testing.T) {
	swapId := uuid.New()

	t.Run("Accept", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("RespondSwap", mock.Anything, swapId.String(), "owner-1", true, "deal").Return(&models.Swap{
			Id:     swapId.String(),
			Status: models.ACCEPTED,
		}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.SwapResponse{Action: "accept", Message: "deal"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/respond", bytes.NewReader(body)), "owner-1")
		rr := httptest.NewRecorder()

		h.RespondToSwap(rr, req, swapId)

		assert.Equal(t, http.StatusOK, rr.Code)

		var swap api.Swap
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &swap))
		assert.Equal(t, "accepted", swap.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Action", func(t *testing.T) {
		h := swaps.NewSwapsHandler(new(mocks.ApiStore))

		body, _ := json.Marshal(api.SwapResponse{Action: "maybe"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/respond", bytes.NewReader(body)), "owner-1")
		rr := httptest.NewRecorder()

		h.RespondToSwap(rr, req, swapId)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Already Answered", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("RespondSwap", mock.Anything, swapId.String(), "owner-1", false, "").Return(nil, storage.ErrInvalidState)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.SwapResponse{Action: "reject"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/respond", bytes.NewReader(body)), "owner-1")
		rr := httptest.NewRecorder()

		h.RespondToSwap(rr, req, swapId)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestCancelSwap(t *testing.T) {
	swapId := uuid.New()

	t.Run("Empty Body Is Allowed", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("CancelSwap", mock.Anything, swapId.String(), "user-1", "").Return(&models.Swap{
			Id:     swapId.String(),
			Status: models.CANCELLED,
		}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/cancel", nil), "user-1")
		rr := httptest.NewRecorder()

		h.CancelSwap(rr, req, swapId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestRateSwap(t *testing.T) {
	swapId := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("RateSwap", mock.Anything, swapId.String(), "user-1", 5, "great").Return(&models.Swap{
			Id:     swapId.String(),
			Status: models.COMPLETED,
		}, nil)

		h := swaps.NewSwapsHandler(mockStore)

		body, _ := json.Marshal(api.RateSwap{Score: 5, Comment: "great"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/rate", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.RateSwap(rr, req, swapId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Score Out Of Range", func(t *testing.T) {
		h := swaps.NewSwapsHandler(new(mocks.ApiStore))

		body, _ := json.Marshal(api.RateSwap{Score: 6})
		req := asUser(httptest.NewRequest(http.MethodPost, "/swaps/"+swapId.String()+"/rate", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.RateSwap(rr, req, swapId)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
