package payload

type CreateProductRequest struct {
	Name        string            `json:"name"        validate:"required"`
	Description string            `json:"description" validate:"required"`
	Category    string            `json:"category"    validate:"required"`
	Price       float64           `json:"price"       validate:"required,gt=0"`
	Discount    float64           `json:"discount"    validate:"gte=0,lte=100"`
	Images      []string          `json:"images"      validate:"omitempty,dive,url"`
	Stock       int               `json:"stock"       validate:"gte=0"`
	SKU         string            `json:"sku"`
	Brand       string            `json:"brand"`
	Attributes  map[string]string `json:"attributes"`
}

type UpdateProductRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	Price       *float64           `json:"price"    validate:"omitempty,gt=0"`
	Discount    *float64           `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Images      *[]string          `json:"images"   validate:"omitempty,dive,url"`
	Stock       *int               `json:"stock"    validate:"omitempty,gte=0"`
	Brand       *string            `json:"brand"`
	Attributes  *map[string]string `json:"attributes"`
}
