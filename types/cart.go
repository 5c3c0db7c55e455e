package types

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

type CartItem struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"` // 单位：分
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	Stock       int64  `json:"stock"`
	CoverImage  string `json:"cover_image"`
}

type CartDetail struct {
	Items       []*CartItem `json:"items"`
	TotalAmount int64       `json:"total_amount"`
}
