package items_test

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
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/items"
	"github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage/mocks"
)

func validNewItem() api.NewItem {
	return api.NewItem{
		Title:       "Denim Jacket",
		Description: "Lightly worn",
		Category:    "outerwear",
		Size:        "M",
		Condition:   "good",
		PointsValue: 80,
		Images:      []api.ItemImage{{Data: "aGVsbG8=", MimeType: "image/jpeg", Filename: "front.jpg"}},
	}
}

func asUser(req *http.Request, userID string) *http.Request {
	identity := middleware.Identity{UserID: userID, Name: userID, Role: models.RoleMember}
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

func TestListItems(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("ListAvailableItems", mock.Anything, mock.Anything).Return(&models.ItemPage{
			Items: []models.Item{},
			Page:  models.PageInfo{CurrentPage: 1, TotalPages: 1},
		}, nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := httptest.NewRequest(http.MethodGet, "/items?category=tops&sort=points_asc", nil)
		rr := httptest.NewRecorder()

		h.ListItems(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertCalled(t, "ListAvailableItems", mock.Anything, models.ItemQuery{
			Category: "tops",
			Sort:     models.SortPointsAsc,
		})
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("EnsureUser", mock.Anything, "user-1", "user-1", models.RoleMember).Return(&models.User{UserId: "user-1"}, nil)
		mockStore.On("CreateItem", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
			return item.OwnerId == "user-1" && item.IsApproved
		})).Return(&models.Item{Id: "item-1", OwnerId: "user-1"}, nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		body, _ := json.Marshal(validNewItem())
		req := asUser(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Moderation Gate Holds New Items Back", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("EnsureUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserId: "user-1"}, nil)
		mockStore.On("CreateItem", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
			return !item.IsApproved
		})).Return(&models.Item{Id: "item-1", OwnerId: "user-1"}, nil)

		h := items.NewItemsHandler(mockStore, nil, true)

		body, _ := json.Marshal(validNewItem())
		req := asUser(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Invalid Category", func(t *testing.T) {
		h := items.NewItemsHandler(new(mocks.ApiStore), nil, false)

		invalid := validNewItem()
		invalid.Category = "gadgets"
		body, _ := json.Marshal(invalid)
		req := asUser(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var apiErr api.Error
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
		assert.Equal(t, "validation", apiErr.Kind)
		assert.Contains(t, apiErr.Fields, "category")
	})

	t.Run("No Images", func(t *testing.T) {
		h := items.NewItemsHandler(new(mocks.ApiStore), nil, false)

		invalid := validNewItem()
		invalid.Images = nil
		body, _ := json.Marshal(invalid)
		req := asUser(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		h.CreateItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var apiErr api.Error
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
		assert.Equal(t, "no_images", apiErr.Kind)
	})
}

func TestGetItemById(t *testing.T) {
	itemId := uuid.New()

	t.Run("Hidden Item Is Invisible To Strangers", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(&models.Item{
			Id:          itemId.String(),
			OwnerId:     "owner-1",
			IsAvailable: true,
			IsApproved:  false,
		}, nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodGet, "/items/"+itemId.String(), nil), "stranger")
		rr := httptest.NewRecorder()

		h.GetItemById(rr, req, itemId)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Owner Sees Hidden Item Without A View Bump", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(&models.Item{
			Id:      itemId.String(),
			OwnerId: "owner-1",
		}, nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodGet, "/items/"+itemId.String(), nil), "owner-1")
		rr := httptest.NewRecorder()

		h.GetItemById(rr, req, itemId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("Visitor Bumps The View Counter", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(&models.Item{
			Id:          itemId.String(),
			OwnerId:     "owner-1",
			IsAvailable: true,
			IsApproved:  true,
		}, nil)
		mockStore.On("IncrementViews", mock.Anything, itemId.String()).Return(nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodGet, "/items/"+itemId.String(), nil), "visitor")
		rr := httptest.NewRecorder()

		h.GetItemById(rr, req, itemId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestRedeemItem(t *testing.T) {
	itemId := uuid.New()
	listed := func() *models.Item {
		return &models.Item{
			Id:          itemId.String(),
			OwnerId:     "owner-1",
			PointsValue: 80,
			IsAvailable: true,
			IsApproved:  true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(listed(), nil)
		mockStore.On("EnsureUser", mock.Anything, "buyer-1", "buyer-1", models.RoleMember).Return(&models.User{UserId: "buyer-1"}, nil)
		mockStore.On("TransferPoints", mock.Anything, "buyer-1", "owner-1", int64(80), mock.Anything).Return(nil)
		mockStore.On("MarkItemRedeemed", mock.Anything, itemId.String(), "buyer-1", models.RedemptionPoints).Return(listed(), nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodPost, "/items/"+itemId.String()+"/redeem", nil), "buyer-1")
		rr := httptest.NewRecorder()

		h.RedeemItem(rr, req, itemId)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Own Item", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(listed(), nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodPost, "/items/"+itemId.String()+"/redeem", nil), "owner-1")
		rr := httptest.NewRecorder()

		h.RedeemItem(rr, req, itemId)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(listed(), nil)
		mockStore.On("EnsureUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserId: "buyer-1"}, nil)
		mockStore.On("TransferPoints", mock.Anything, "buyer-1", "owner-1", int64(80), mock.Anything).Return(storage.ErrInsufficientPoints)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodPost, "/items/"+itemId.String()+"/redeem", nil), "buyer-1")
		rr := httptest.NewRecorder()

		h.RedeemItem(rr, req, itemId)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStore.AssertNotCalled(t, "MarkItemRedeemed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost Availability Race Refunds The Transfer", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetItem", mock.Anything, itemId.String()).Return(listed(), nil)
		mockStore.On("EnsureUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserId: "buyer-1"}, nil)
		mockStore.On("TransferPoints", mock.Anything, "buyer-1", "owner-1", int64(80), mock.Anything).Return(nil).Once()
		mockStore.On("MarkItemRedeemed", mock.Anything, itemId.String(), "buyer-1", models.RedemptionPoints).Return(nil, storage.ErrItemUnavailable)
		mockStore.On("TransferPoints", mock.Anything, "owner-1", "buyer-1", int64(80), mock.Anything).Return(nil).Once()

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodPost, "/items/"+itemId.String()+"/redeem", nil), "buyer-1")
		rr := httptest.NewRecorder()

		h.RedeemItem(rr, req, itemId)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestDeleteItem(t *testing.T) {
	itemId := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("DeleteItem", mock.Anything, itemId.String(), "owner-1", false).Return(nil)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodDelete, "/items/"+itemId.String(), nil), "owner-1")
		rr := httptest.NewRecorder()

		h.DeleteItem(rr, req, itemId)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Not The Owner", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("DeleteItem", mock.Anything, itemId.String(), "stranger", false).Return(storage.ErrForbidden)

		h := items.NewItemsHandler(mockStore, nil, false)

		req := asUser(httptest.NewRequest(http.MethodDelete, "/items/"+itemId.String(), nil), "stranger")
		rr := httptest.NewRecorder()

		h.DeleteItem(rr, req, itemId)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStore.AssertExpectations(t)
	})
}
