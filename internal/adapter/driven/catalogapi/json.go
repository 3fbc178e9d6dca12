package catalogapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

type categoryJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type jewelleryJSON struct {
	ID            string      `json:"_id"`
	Category      refID       `json:"category"`
	JewelleryName string      `json:"jewelleryName"`
	Brand         string      `json:"brand"`
	Color         string      `json:"color"`
	Size          string      `json:"size"`
	SKU           string      `json:"sku"`
	Price         looseString `json:"price"`
	Description   string      `json:"description"`
	Images        []string    `json:"images"`
}

func (j jewelleryJSON) toModel() model.Jewellery {
	images := j.Images
	if images == nil {
		images = []string{}
	}

	return model.Jewellery{
		ID:            j.ID,
		Category:      string(j.Category),
		JewelleryName: j.JewelleryName,
		Brand:         j.Brand,
		Color:         model.Color(j.Color),
		Size:          model.Size(j.Size),
		SKU:           j.SKU,
		Price:         string(j.Price),
		Description:   j.Description,
		Images:        images,
	}
}

// refID accepts either a bare ID string or a populated {"_id": ...} object.
type refID string

func (r *refID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var obj categoryJSON
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = refID(obj.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = refID(s)
	return nil
}

// looseString accepts a JSON string or number; prices arrive as either.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = looseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil {
		*l = looseString(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*l = looseString(n.String())
	return nil
}
