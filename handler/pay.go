package handler

import (
	"Mall/config"
	"Mall/middleware"
	"Mall/pkg/context"
	"Mall/pkg/log"
	"Mall/pkg/response"
	"Mall/service"
	"Mall/types"
	base "context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/auth/verifiers"
	"github.com/wechatpay-apiv3/wechatpay-go/core/downloader"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
	"go.uber.org/zap"
)

type Pay struct {
	Config          *config.Config
	WechatPayConfig *config.WechatPayConfig
	PayService      service.IPayService
	wechatClient    *core.Client // 微信支付客户端（复用）
}

// NewPay 创建支付处理器，微信配置缺失时降级为仅通用回调
func NewPay(cfg *config.Config, payService service.IPayService) *Pay {
	p := &Pay{
		Config:          cfg,
		WechatPayConfig: cfg.WechatPayConfig,
		PayService:      payService,
	}
	if p.WechatPayConfig != nil {
		if err := p.initWechatClient(); err != nil {
			log.L.Warn("init wechat pay client failed", zap.Error(err))
		}
	}
	return p
}

// initWechatClient 初始化微信支付客户端（只执行一次）
func (p *Pay) initWechatClient() error {
	mchPrivateKey, err := utils.LoadPrivateKeyWithPath(p.WechatPayConfig.MchPrivateKeyPath)
	if err != nil {
		return fmt.Errorf("加载商户私钥失败: %w", err)
	}

	opts := []core.ClientOption{
		option.WithWechatPayAutoAuthCipher(
			p.WechatPayConfig.MchID,
			p.WechatPayConfig.MchCertificateSerialNumber,
			mchPrivateKey,
			p.WechatPayConfig.MchAPIv3Key,
		),
	}
	client, err := core.NewClient(base.Background(), opts...)
	if err != nil {
		return fmt.Errorf("创建微信支付客户端失败: %w", err)
	}

	p.wechatClient = client
	return nil
}

func (p *Pay) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	pay := r.Group("/v1/pay")
	{
		pay.POST("", authorize, context.Wrap(p.CreatePayment))
		pay.GET("/order/:order_sn", authorize, context.Wrap(p.ListByOrder))
		pay.POST("/notify/wechat", context.Wrap(p.WechatNotify))      // 微信支付回调（验签）
		pay.POST("/callback/:channel", context.Wrap(p.ChannelNotify)) // 其他渠道回调
	}
}

// CreatePayment 对待支付订单发起一笔支付单
func (p *Pay) CreatePayment(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	payment, err := p.PayService.CreatePayment(c.Request.Context(), userID, &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, payment)
	return nil
}

func (p *Pay) ListByOrder(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	payments, err := p.PayService.ListByOrder(c.Request.Context(), userID, c.Param("order_sn"))
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, payments)
	return nil
}

// WechatNotify 微信支付回调。验签失败的报文记日志后丢弃，
// 但仍应答成功，避免网关对坏报文无限重试。
func (p *Pay) WechatNotify(c *gin.Context) error {
	ctx := c.Request.Context()
	if p.wechatClient == nil {
		log.L.Warn("wechat notify received but client not initialized")
		response.Success(c, nil)
		return nil
	}

	certificateVisitor := downloader.MgrInstance().GetCertificateVisitor(p.WechatPayConfig.MchID)
	handler, err := notify.NewRSANotifyHandler(p.WechatPayConfig.MchAPIv3Key, verifiers.NewSHA256WithRSAVerifier(certificateVisitor))
	if err != nil {
		log.L.Error("create wechat notify handler failed", zap.Error(err))
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	transaction := new(payments.Transaction)
	if _, err := handler.ParseNotifyRequest(ctx, c.Request, transaction); err != nil {
		log.L.Warn("wechat notify verify failed, dropped", zap.Error(err))
		response.Success(c, nil)
		return nil
	}

	raw, _ := json.Marshal(transaction)
	cb := &types.GatewayCallback{
		PaymentNo:             deref(transaction.OutTradeNo),
		ExternalTransactionID: deref(transaction.TransactionId),
		Succeeded:             deref(transaction.TradeState) == "SUCCESS",
		Raw:                   raw,
	}
	return p.applyCallback(c, "wechat", cb)
}

// ChannelNotify 通用渠道回调，报文约定为
// {"payment_no": "...", "transaction_id": "...", "status": "success|failed"}
func (p *Pay) ChannelNotify(c *gin.Context) error {
	channel := c.Param("channel")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	payload := gjson.ParseBytes(body)
	cb := &types.GatewayCallback{
		PaymentNo:             payload.Get("payment_no").String(),
		ExternalTransactionID: payload.Get("transaction_id").String(),
		Succeeded:             payload.Get("status").String() == "success",
		Raw:                   body,
	}
	if cb.PaymentNo == "" {
		log.L.Warn("channel notify missing payment_no, dropped", zap.String("channel", channel))
		response.Success(c, nil)
		return nil
	}
	return p.applyCallback(c, channel, cb)
}

func (p *Pay) applyCallback(c *gin.Context, channel string, cb *types.GatewayCallback) error {
	err := p.PayService.ApplyCallback(c.Request.Context(), cb)
	if err != nil {
		// 找不到单子或状态不允许：应答成功让网关停止重试
		if errors.Is(err, service.ErrPaymentNotFound) || errors.Is(err, service.ErrInvalidTransition) {
			log.L.Warn("gateway callback dropped",
				zap.String("channel", channel),
				zap.String("payment_no", cb.PaymentNo),
				zap.Error(err))
			response.Success(c, nil)
			return nil
		}
		log.L.Error("apply gateway callback failed",
			zap.String("channel", channel),
			zap.String("payment_no", cb.PaymentNo),
			zap.Error(err))
		return response.NewError(http.StatusInternalServerError, "process failed")
	}
	response.Success(c, nil)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
