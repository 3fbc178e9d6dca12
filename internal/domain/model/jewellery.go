package model

// Jewellery is a catalog record as persisted by the remote catalog API.
type Jewellery struct {
	ID            string
	Category      string
	JewelleryName string
	Brand         string
	Color         Color
	Size          Size
	SKU           string
	Price         string
	Description   string
	Images        []string // Image URLs served by the catalog API.
}

// Draft is the in-progress, not-yet-persisted record backing an open dialog.
// ID is empty until the record has been persisted.
type Draft struct {
	ID            string `form:"_id"`
	Category      string `form:"category" validate:"required"`
	JewelleryName string `form:"jewelleryName" validate:"required"`
	Brand         string `form:"brand" validate:"required"`
	Color         string `form:"color" validate:"required,oneof=red blue green yellow black white pink"`
	Size          string `form:"size" validate:"required,oneof=S M L XL"`
	SKU           string `form:"sku" validate:"required"`
	Price         string `form:"price" validate:"required,numeric,nonnegative"`
	Description   string `form:"description"`
}

// DraftFromJewellery populates a draft from an existing record.
func DraftFromJewellery(j Jewellery) Draft {
	return Draft{
		ID:            j.ID,
		Category:      j.Category,
		JewelleryName: j.JewelleryName,
		Brand:         j.Brand,
		Color:         string(j.Color),
		Size:          string(j.Size),
		SKU:           j.SKU,
		Price:         j.Price,
		Description:   j.Description,
	}
}

// IsPersisted reports whether the draft edits an existing record.
func (d Draft) IsPersisted() bool {
	return d.ID != ""
}

// FormField is a single named value of a multipart submission.
type FormField struct {
	Name  string
	Value string
}

// Fields returns the draft's non-identifier fields in submission order, using
// the field names the catalog API expects.
func (d Draft) Fields() []FormField {
	return []FormField{
		{Name: "category", Value: d.Category},
		{Name: "jewelleryName", Value: d.JewelleryName},
		{Name: "brand", Value: d.Brand},
		{Name: "color", Value: d.Color},
		{Name: "size", Value: d.Size},
		{Name: "sku", Value: d.SKU},
		{Name: "price", Value: d.Price},
		{Name: "description", Value: d.Description},
	}
}
