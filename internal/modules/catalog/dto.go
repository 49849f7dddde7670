package catalog

// ContactInput carries the optional contact sub-fields of a request.
// Absent fields stay nil so updates can tell "not supplied" from
// "cleared".
type ContactInput struct {
	Phone     *string `json:"phone,omitempty"`
	Whatsapp  *string `json:"whatsapp,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type CreateStudioRequest struct {
	Name        string        `json:"name" validate:"required"`
	Address     string        `json:"address" validate:"required"`
	Description string        `json:"description"`
	Price       *string       `json:"price,omitempty"`
	Images      []string      `json:"images"`
	Features    []string      `json:"features"`
	Contact     *ContactInput `json:"contact,omitempty"`
}

type UpdateStudioRequest struct {
	Name        *string       `json:"name,omitempty"`
	Address     *string       `json:"address,omitempty"`
	Description *string       `json:"description,omitempty"`
	Price       *string       `json:"price,omitempty"`
	Images      *[]string     `json:"images,omitempty"`
	Features    *[]string     `json:"features,omitempty"`
	Contact     *ContactInput `json:"contact,omitempty"`
}
