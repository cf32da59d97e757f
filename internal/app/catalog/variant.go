package catalog

// Dimensions in centimeters.
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Variant is one purchasable configuration of a product. Color, SKU, Price
// and MainImage are the minimum viable variant; everything else is optional.
type Variant struct {
	ID         string     `json:"id"`
	SKU        string     `json:"sku"`
	Color      string     `json:"color"`
	ColorCode  string     `json:"color_code,omitempty"`
	Size       string     `json:"size,omitempty"`
	Material   string     `json:"material,omitempty"`
	Finish     string     `json:"finish,omitempty"`
	Price      float64    `json:"price"`
	OldPrice   float64    `json:"old_price,omitempty"`
	Inventory  int        `json:"inventory"`
	MainImage  string     `json:"main_image"`
	Images     []string   `json:"images,omitempty"`
	Video      string     `json:"video,omitempty"`
	Weight     float64    `json:"weight,omitempty"`
	Dimensions Dimensions `json:"dimensions,omitempty"`
	IsDefault  bool       `json:"is_default"`
}

func (v *Variant) validate() error {
	verr := newValidationError()
	verr.require("color", v.Color)
	verr.require("sku", v.SKU)
	verr.require("main_image", v.MainImage)
	verr.positive("price", v.Price)
	if v.Inventory < 0 {
		verr.Fields["inventory"] = "must not be negative"
	}
	return verr.orNil()
}

// dedupImages drops the main image and any repeats from the gallery list.
func (v *Variant) dedupImages() {
	if len(v.Images) == 0 {
		return
	}
	seen := make(map[string]bool, len(v.Images))
	images := v.Images[:0]
	for _, img := range v.Images {
		if img == "" || img == v.MainImage || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}
	if len(images) == 0 {
		v.Images = nil
		return
	}
	v.Images = images
}
