package service

import (
	"Mall/config"
	"Mall/dao"
	"Mall/models"
	"Mall/pkg/log"
	mq "Mall/pkg/rocketmq"
	"Mall/pkg/utils"
	"Mall/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IPayService = (*PayService)(nil)

type IPayService interface {
	CreatePayment(ctx context.Context, userID uint64, req *types.CreatePaymentRequest) (*types.PaymentDetail, error)
	ApplyCallback(ctx context.Context, cb *types.GatewayCallback) error
	ListByOrder(ctx context.Context, userID uint64, orderSn string) ([]*types.PaymentDetail, error)
	SweepExpired(ctx context.Context) error
	RunExpirySweeper(ctx context.Context)
}

type PayService struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	PaymentDAO *dao.Payment
	OrderDAO   *dao.Order
	Producer   rocketmq.Producer
}

// CreatePayment 发起支付。锁订单后检查：订单必须待支付；
// 同一订单不允许并发存在第二笔在途支付单（防重复扣款）。
func (s *PayService) CreatePayment(ctx context.Context, userID uint64, req *types.CreatePaymentRequest) (*types.PaymentDetail, error) {
	if !models.IsSupportedPayMethod(req.Method) {
		return nil, ErrUnsupportedPayMethod
	}

	var payment *models.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.OrderDAO.LockByOrderSn(ctx, tx, req.OrderSn)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if userID > 0 && order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.Status != models.OrderStatusPending {
			return ErrInvalidTransition
		}

		inFlight, err := s.PaymentDAO.CountInFlight(ctx, tx, order.OrderSn)
		if err != nil {
			return err
		}
		if inFlight > 0 {
			return ErrConflictingPayment
		}

		amount := req.Amount
		if amount == 0 {
			amount = order.TotalAmount
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}

		currency := "CNY"
		expireMinutes := 15
		if s.Config.Pay != nil {
			if s.Config.Pay.Currency != "" {
				currency = s.Config.Pay.Currency
			}
			if s.Config.Pay.ExpireMinutes > 0 {
				expireMinutes = s.Config.Pay.ExpireMinutes
			}
		}
		expiresAt := time.Now().Add(time.Duration(expireMinutes) * time.Minute)

		payment = &models.Payment{
			OrderSn:   order.OrderSn,
			UserID:    order.UserID,
			PaymentNo: utils.GeneratePaymentNo(),
			Method:    req.Method,
			Amount:    amount,
			Currency:  currency,
			Status:    models.PayStatusPending,
			ExpiresAt: &expiresAt,
		}
		fillPayArtifacts(payment)
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}
	return toPaymentDetail(payment), nil
}

// fillPayArtifacts 按支付方式生成跳转/扫码占位产物，真实内容由网关预下单返回
func fillPayArtifacts(p *models.Payment) {
	switch p.Method {
	case models.PayMethodWechat:
		p.QRCode = fmt.Sprintf("weixin://wxpay/bizpayurl?pr=%s", p.PaymentNo)
	case models.PayMethodAlipay:
		p.PayURL = fmt.Sprintf("https://openapi.alipay.com/gateway.do?out_trade_no=%s", p.PaymentNo)
	case models.PayMethodUnionpay:
		p.PayURL = fmt.Sprintf("https://gateway.95516.com/gateway/api/frontTransReq.do?orderId=%s", p.PaymentNo)
	case models.PayMethodPaypal:
		p.PayURL = fmt.Sprintf("https://www.paypal.com/checkoutnow?token=%s", p.PaymentNo)
	}
}

// ApplyCallback 应用网关回调，幂等：
// 成功回调重放到已支付的单子直接返回，不再触发订单流转等副作用。
func (s *PayService) ApplyCallback(ctx context.Context, cb *types.GatewayCallback) error {
	var paidEvent *models.Payment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.PaymentDAO.LockByPaymentNo(ctx, tx, cb.PaymentNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if cb.Succeeded {
			if payment.Status == models.PayStatusPaid {
				// 重放，无副作用
				return nil
			}
			if !payment.Status.CanTransitionTo(models.PayStatusPaid) {
				return ErrInvalidTransition
			}

			now := time.Now()
			data := map[string]any{
				"status":      models.PayStatusPaid,
				"finished_at": now,
			}
			if cb.ExternalTransactionID != "" {
				data["external_transaction_id"] = cb.ExternalTransactionID
			}
			if len(cb.Raw) > 0 {
				data["notify_raw"] = cb.Raw
			}
			if err := s.PaymentDAO.UpdateByPaymentNo(ctx, tx, payment.PaymentNo, data); err != nil {
				return err
			}

			order, err := s.OrderDAO.LockByOrderSn(ctx, tx, payment.OrderSn)
			if err != nil {
				return err
			}
			if order.Status == models.OrderStatusPending {
				if err := s.OrderDAO.UpdateStatus(ctx, tx, order.ID, map[string]any{
					"status":  models.OrderStatusPaid,
					"paid_at": now,
				}); err != nil {
					return err
				}
			}

			payment.Status = models.PayStatusPaid
			paidEvent = payment
			return nil
		}

		// 失败类回调：重放无副作用，其余按流转表校验
		if payment.Status == models.PayStatusFailed {
			return nil
		}
		if !payment.Status.CanTransitionTo(models.PayStatusFailed) {
			return ErrInvalidTransition
		}
		data := map[string]any{"status": models.PayStatusFailed}
		if len(cb.Raw) > 0 {
			data["notify_raw"] = cb.Raw
		}
		return s.PaymentDAO.UpdateByPaymentNo(ctx, tx, payment.PaymentNo, data)
	})
	if err != nil {
		return err
	}

	if paidEvent != nil {
		s.publishPaymentPaid(ctx, paidEvent)
	}
	return nil
}

func (s *PayService) ListByOrder(ctx context.Context, userID uint64, orderSn string) ([]*types.PaymentDetail, error) {
	order, err := s.OrderDAO.FindByOrderSn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if userID > 0 && order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	payments, err := s.PaymentDAO.ListByOrderSn(ctx, orderSn)
	if err != nil {
		return nil, err
	}
	result := make([]*types.PaymentDetail, len(payments))
	for i, p := range payments {
		result[i] = toPaymentDetail(p)
	}
	return result, nil
}

const sweepLockKey = "mall:payment:sweep_lock"

// SweepExpired 过期支付单批扫：pending 且已过期的单子转 expired。
// redis 锁保证多实例只有一个在扫，单子各自一个小事务，互不拖累。
func (s *PayService) SweepExpired(ctx context.Context) error {
	ok, err := s.Redis.SetNX(ctx, sweepLockKey, 1, 30*time.Second).Result()
	if err != nil || !ok {
		return err
	}
	defer s.Redis.Del(ctx, sweepLockKey)

	expired, err := s.PaymentDAO.ListExpired(ctx, time.Now(), 200)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	p := pool.New().WithMaxGoroutines(8).WithErrors()
	for _, payment := range expired {
		paymentNo := payment.PaymentNo
		p.Go(func() error {
			return s.expireOne(ctx, paymentNo)
		})
	}
	return p.Wait()
}

func (s *PayService) expireOne(ctx context.Context, paymentNo string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.PaymentDAO.LockByPaymentNo(ctx, tx, paymentNo)
		if err != nil {
			return err
		}
		// 扫到之前刚好支付/取消的跳过
		if payment.Status != models.PayStatusPending {
			return nil
		}
		return s.PaymentDAO.UpdateByPaymentNo(ctx, tx, paymentNo, map[string]any{
			"status": models.PayStatusExpired,
		})
	})
}

// RunExpirySweeper 周期执行过期扫单，ctx 取消即退出
func (s *PayService) RunExpirySweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepExpired(ctx); err != nil {
				log.L.Error("sweep expired payments failed", zap.Error(err))
			}
		}
	}
}

func (s *PayService) publishPaymentPaid(ctx context.Context, payment *models.Payment) {
	body, err := json.Marshal(map[string]any{
		"payment_no": payment.PaymentNo,
		"order_sn":   payment.OrderSn,
		"amount":     payment.Amount,
		"method":     payment.Method,
	})
	if err != nil {
		return
	}
	mq.Publish(ctx, s.Producer, mq.TopicPaymentPaid, body)
}

func toPaymentDetail(p *models.Payment) *types.PaymentDetail {
	return &types.PaymentDetail{
		PaymentNo: p.PaymentNo,
		OrderSn:   p.OrderSn,
		Method:    p.Method,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		PayURL:    p.PayURL,
		QRCode:    p.QRCode,
		ExpiresAt: p.ExpiresAt,
	}
}
