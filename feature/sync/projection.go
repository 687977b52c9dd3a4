package sync

import (
	"time"

	"listsync/feature/lists/models"
)

// ListSyncData is the transfer projection of a List: scalar fields plus the
// projected items. It is flat and binary-free by construction so a realistic
// working set stays within the transport budget.
type ListSyncData struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	OrderNumber int            `json:"order_number"`
	IsArchived  bool           `json:"is_archived"`
	CreatedAt   time.Time      `json:"created_at"`
	ModifiedAt  time.Time      `json:"modified_at"`
	Items       []ItemSyncData `json:"items"`
}

// ItemSyncData mirrors an Item's scalar fields. Image bytes are stripped;
// only ImageCount travels so the receiving side can display "N photos".
type ItemSyncData struct {
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Quantity     int       `json:"quantity"`
	OrderNumber  int       `json:"order_number"`
	IsCrossedOut bool      `json:"is_crossed_out"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
	ImageCount   int       `json:"image_count"`
}

// Project converts a List into its transfer projection.
func Project(list models.List) ListSyncData {
	data := ListSyncData{
		ID:          list.ID,
		Name:        list.Name,
		OrderNumber: list.OrderNumber,
		IsArchived:  list.IsArchived,
		CreatedAt:   list.CreatedAt,
		ModifiedAt:  list.ModifiedAt,
		Items:       make([]ItemSyncData, 0, len(list.Items)),
	}
	for _, item := range list.Items {
		data.Items = append(data.Items, ProjectItem(item))
	}
	return data
}

// ProjectItem converts an Item into its transfer projection.
func ProjectItem(item models.Item) ItemSyncData {
	return ItemSyncData{
		ID:           item.ID,
		ListID:       item.ListID,
		Title:        item.Title,
		Description:  item.Description,
		Quantity:     item.Quantity,
		OrderNumber:  item.OrderNumber,
		IsCrossedOut: item.IsCrossedOut,
		CreatedAt:    item.CreatedAt,
		ModifiedAt:   item.ModifiedAt,
		ImageCount:   len(item.Images),
	}
}

// ProjectAll projects a full local state into a snapshot.
func ProjectAll(lists []models.List) []ListSyncData {
	snapshot := make([]ListSyncData, 0, len(lists))
	for _, list := range lists {
		snapshot = append(snapshot, Project(list))
	}
	return snapshot
}

// Materialize converts a projection back into a domain List. Every scalar
// field round-trips exactly; the image collection is always empty, because
// image data is reattached only by the owning device.
func Materialize(data ListSyncData) models.List {
	list := models.List{
		ID:          data.ID,
		Name:        data.Name,
		OrderNumber: data.OrderNumber,
		IsArchived:  data.IsArchived,
		CreatedAt:   data.CreatedAt,
		ModifiedAt:  data.ModifiedAt,
		Items:       make([]models.Item, 0, len(data.Items)),
	}
	for _, item := range data.Items {
		list.Items = append(list.Items, MaterializeItem(item, data.ID))
	}
	return list
}

// MaterializeItem converts an item projection back into a domain Item owned
// by the given list.
func MaterializeItem(data ItemSyncData, listID string) models.Item {
	return models.Item{
		ID:           data.ID,
		ListID:       listID,
		Title:        data.Title,
		Description:  data.Description,
		Quantity:     data.Quantity,
		OrderNumber:  data.OrderNumber,
		IsCrossedOut: data.IsCrossedOut,
		CreatedAt:    data.CreatedAt,
		ModifiedAt:   data.ModifiedAt,
	}
}
