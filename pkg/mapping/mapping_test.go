package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/mapping"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

func TestToModelNewItem(t *testing.T) {
	in := &api.NewItem{
		Title:       "Denim Jacket",
		Category:    "outerwear",
		PointsValue: 80,
		Images:      []api.ItemImage{{Data: "aGVsbG8=", MimeType: "image/jpeg", Filename: "front.jpg"}},
	}

	item := mapping.ToModelNewItem("owner-1", in)

	assert.Equal(t, "owner-1", item.OwnerId)
	assert.True(t, item.IsAvailable)
	assert.False(t, item.IsApproved)
	assert.Len(t, item.Images, 1)
}

func TestToApiItem(t *testing.T) {
	item := &models.Item{
		Id:      "item-1",
		OwnerId: "owner-1",
		Likes:   2,
		LikedBy: []string{"fan-1", "fan-2"},
	}

	t.Run("Viewer Who Liked", func(t *testing.T) {
		out := mapping.ToApiItem(item, "fan-1")
		assert.True(t, out.IsLiked)
	})

	t.Run("Viewer Who Did Not", func(t *testing.T) {
		out := mapping.ToApiItem(item, "visitor")
		assert.False(t, out.IsLiked)
	})

	t.Run("Anonymous Viewer", func(t *testing.T) {
		out := mapping.ToApiItem(item, "")
		assert.False(t, out.IsLiked)
	})
}

func TestSwapCaseMapping(t *testing.T) {
	t.Run("Wire To Model Uppercases", func(t *testing.T) {
		swap := mapping.ToModelNewSwap("user-1", &api.NewSwap{
			RequestedItemId: "item-1",
			SwapType:        "points",
			PointsOffered:   80,
		})

		assert.Equal(t, models.POINTS, swap.SwapType)
		assert.Equal(t, "user-1", swap.RequesterId)
	})

	t.Run("Model To Wire Lowercases", func(t *testing.T) {
		out := mapping.ToApiSwap(&models.Swap{
			Id:       "swap-1",
			SwapType: models.POINTS,
			Status:   models.ACCEPTED,
		})

		assert.Equal(t, "points", out.SwapType)
		assert.Equal(t, "accepted", out.Status)
	})
}

func TestToApiUser(t *testing.T) {
	out := mapping.ToApiUser(&models.User{
		UserId:       "user-1",
		Role:         models.RoleMember,
		Points:       120,
		RatingSum:    9,
		ReviewsCount: 2,
	})

	assert.Equal(t, "member", out.Role)
	assert.Equal(t, 4.5, out.Rating)
}
