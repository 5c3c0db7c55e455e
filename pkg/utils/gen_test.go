package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderSn(t *testing.T) {
	sn := GenerateOrderSn(12345)
	if !strings.HasPrefix(sn, "OD") {
		t.Fatalf("expected OD prefix, got %s", sn)
	}

	// 连续生成不应重复
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := GenerateOrderSn(1)
		if _, ok := seen[s]; ok {
			t.Fatalf("duplicate order sn: %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestGeneratePaymentNo(t *testing.T) {
	no := GeneratePaymentNo()
	if !strings.HasPrefix(no, "PY") {
		t.Fatalf("expected PY prefix, got %s", no)
	}
	if no == GeneratePaymentNo() {
		t.Fatal("payment no should be unique")
	}
}

func TestGenerateRefundNo(t *testing.T) {
	no := GenerateRefundNo()
	if !strings.HasPrefix(no, "RF") {
		t.Fatalf("expected RF prefix, got %s", no)
	}
}
