package domain

// ItemSearchPage é a resposta de GET /users/{id}/items/search. Devolve só os
// IDs dos anúncios; os detalhes vêm de GET /items/{id}.
type ItemSearchPage struct {
	Results []string `json:"results"`
	Paging  Paging   `json:"paging"`
}

// RemoteListing representa um anúncio como a API do Mercado Livre o devolve
type RemoteListing struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Status            string  `json:"status"`
	Price             float64 `json:"price"`
	AvailableQuantity int     `json:"available_quantity"`
	SoldQuantity      int     `json:"sold_quantity"`
	Permalink         string  `json:"permalink"`
	Thumbnail         string  `json:"thumbnail"`
	CategoryID        string  `json:"category_id"`
	SellerCustomField string  `json:"seller_custom_field"`
}

// ItemUpdate é o corpo de PUT /items/{id}. Somente os campos presentes são
// alterados no marketplace.
type ItemUpdate struct {
	Status            *string  `json:"status,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	AvailableQuantity *int     `json:"available_quantity,omitempty"`
}
