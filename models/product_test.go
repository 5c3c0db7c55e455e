package models

import "testing"

func TestDeriveProductStatus(t *testing.T) {
	cases := []struct {
		name    string
		current ProductStatus
		stock   int64
		want    ProductStatus
	}{
		{"上架库存归零转售罄", ProductStatusActive, 0, ProductStatusOutOfStock},
		{"上架有库存保持上架", ProductStatusActive, 5, ProductStatusActive},
		{"售罄补货转上架", ProductStatusOutOfStock, 3, ProductStatusActive},
		{"售罄无库存保持售罄", ProductStatusOutOfStock, 0, ProductStatusOutOfStock},
		{"下架不受库存影响", ProductStatusInactive, 10, ProductStatusInactive},
		{"下架库存归零仍为下架", ProductStatusInactive, 0, ProductStatusInactive},
	}
	for _, tc := range cases {
		if got := DeriveProductStatus(tc.current, tc.stock); got != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, got)
		}
	}
}
