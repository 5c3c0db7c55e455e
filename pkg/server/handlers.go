package server

import (
	"Mall/handler"
)

type Handlers struct {
	Auth        *handler.Auth
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Cart        *handler.CartHandler
	Order       *handler.Order
	Pay         *handler.Pay
	Refund      *handler.RefundHandler
	Certificate *handler.CertificateHandler
}
