// Package mapping converts between the wire types in pkg/api and the domain
// models in pkg/models. All conversions are total: the wire layer validates
// before anything reaches here.
package mapping

import (
	"strings"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// ToModelNewItem builds a fresh domain item from a creation request. The
// moderation flags are left for the caller, which knows the platform policy.
func ToModelNewItem(ownerID string, in *api.NewItem) *models.Item {
	return &models.Item{
		OwnerId:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Size:        in.Size,
		Condition:   in.Condition,
		Tags:        in.Tags,
		PointsValue: in.PointsValue,
		Images:      toModelImages(in.Images),
		IsAvailable: true,
	}
}

// ToModelItemPatch translates a wire patch into the storage patch shape.
func ToModelItemPatch(in *api.UpdateItem) models.ItemPatch {
	patch := models.ItemPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Size:        in.Size,
		Condition:   in.Condition,
		Tags:        in.Tags,
		PointsValue: in.PointsValue,
		IsAvailable: in.IsAvailable,
	}
	if in.Images != nil {
		images := toModelImages(*in.Images)
		patch.Images = &images
	}
	return patch
}

// ToApiItem renders an item for a particular viewer; the viewer determines
// the is_liked flag. viewerID may be empty for anonymous requests.
func ToApiItem(item *models.Item, viewerID string) *api.Item {
	return &api.Item{
		Id:              item.Id,
		OwnerId:         item.OwnerId,
		Title:           item.Title,
		Description:     item.Description,
		Category:        item.Category,
		Size:            item.Size,
		Condition:       item.Condition,
		Tags:            item.Tags,
		PointsValue:     item.PointsValue,
		Images:          toApiImages(item.Images),
		IsAvailable:     item.IsAvailable,
		IsApproved:      item.IsApproved,
		IsRejected:      item.IsRejected,
		RejectionReason: item.RejectionReason,
		Likes:           item.Likes,
		IsLiked:         viewerID != "" && item.LikedByUser(viewerID),
		Views:           item.Views,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToApiItemsPage renders one listing page for a viewer.
func ToApiItemsPage(page *models.ItemPage, viewerID string) *api.ItemsPage {
	items := make([]*api.Item, len(page.Items))
	for i := range page.Items {
		items[i] = ToApiItem(&page.Items[i], viewerID)
	}
	return &api.ItemsPage{
		Items: items,
		Pagination: api.Pagination{
			CurrentPage: page.Page.CurrentPage,
			TotalPages:  page.Page.TotalPages,
			TotalItems:  page.Page.TotalItems,
			HasNext:     page.Page.HasNext,
			HasPrev:     page.Page.HasPrev,
		},
	}
}

// ToModelNewSwap builds a fresh domain swap from a creation request.
func ToModelNewSwap(requesterID string, in *api.NewSwap) *models.Swap {
	return &models.Swap{
		RequesterId:     requesterID,
		RequestedItemId: in.RequestedItemId,
		OfferedItemIds:  in.OfferedItemIds,
		SwapType:        models.SwapType(strings.ToUpper(in.SwapType)),
		PointsOffered:   in.PointsOffered,
	}
}

// ToApiSwap renders a swap.
func ToApiSwap(swap *models.Swap) *api.Swap {
	out := &api.Swap{
		Id:                 swap.Id,
		RequesterId:        swap.RequesterId,
		OwnerId:            swap.OwnerId,
		RequestedItemId:    swap.RequestedItemId,
		OfferedItemIds:     swap.OfferedItemIds,
		SwapType:           strings.ToLower(string(swap.SwapType)),
		PointsOffered:      swap.PointsOffered,
		Status:             strings.ToLower(string(swap.Status)),
		ResponseMessage:    swap.ResponseMessage,
		CancelledBy:        swap.CancelledBy,
		CancellationReason: swap.CancellationReason,
		CompletedAt:        swap.CompletedAt,
		CreatedAt:          swap.CreatedAt,
		UpdatedAt:          swap.UpdatedAt,
	}
	if swap.PointsTransaction != nil {
		out.PointsTransaction = &api.PointsTransaction{
			FromUserId:    swap.PointsTransaction.FromUserId,
			ToUserId:      swap.PointsTransaction.ToUserId,
			Amount:        swap.PointsTransaction.Amount,
			TransactionId: swap.PointsTransaction.TransactionId,
		}
	}
	out.RequesterRating = toApiRating(swap.RequesterRating)
	out.OwnerRating = toApiRating(swap.OwnerRating)
	return out
}

// ToApiSwaps renders a swap slice in listing order.
func ToApiSwaps(swaps []models.Swap) []*api.Swap {
	out := make([]*api.Swap, len(swaps))
	for i := range swaps {
		out[i] = ToApiSwap(&swaps[i])
	}
	return out
}

// ToApiUser renders a user profile.
func ToApiUser(user *models.User) *api.User {
	return &api.User{
		UserId:       user.UserId,
		Name:         user.Name,
		Role:         string(user.Role),
		Points:       user.Points,
		ItemsCount:   user.ItemsCount,
		SwapsCount:   user.SwapsCount,
		Rating:       user.Rating(),
		ReviewsCount: user.ReviewsCount,
		CreatedAt:    user.CreatedAt,
	}
}

// ToApiLikeResult renders a like toggle outcome.
func ToApiLikeResult(result *models.LikeResult) *api.LikeResult {
	return &api.LikeResult{Likes: result.Likes, IsLiked: result.IsLiked}
}

func toModelImages(in []api.ItemImage) []models.ItemImage {
	if in == nil {
		return nil
	}
	out := make([]models.ItemImage, len(in))
	for i, img := range in {
		out[i] = models.ItemImage{Data: img.Data, MimeType: img.MimeType, Filename: img.Filename}
	}
	return out
}

func toApiImages(in []models.ItemImage) []api.ItemImage {
	out := make([]api.ItemImage, len(in))
	for i, img := range in {
		out[i] = api.ItemImage{Data: img.Data, MimeType: img.MimeType, Filename: img.Filename}
	}
	return out
}

func toApiRating(in *models.Rating) *api.Rating {
	if in == nil {
		return nil
	}
	return &api.Rating{Score: in.Score, Comment: in.Comment, RatedAt: in.RatedAt}
}
