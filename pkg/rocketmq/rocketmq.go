package rocketmq

import (
	"Mall/config"
	"Mall/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

const (
	TopicOrderCreated = "mall_order_created"
	TopicPaymentPaid  = "mall_payment_paid"
)

func init() {
	rlog.SetLogLevel("error")
}

func InitProducer(cfg *config.RocketMQConfig) rocketmq.Producer {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		log.L.Fatal("new rocketmq producer failed", zap.Error(err))
	}
	if err := p.Start(); err != nil {
		log.L.Fatal("start rocketmq producer failed", zap.Error(err))
	}
	log.L.Info("rocketmq producer started", zap.Strings("nameserver", cfg.NameServer))
	return p
}

// Publish 发送业务事件，失败只记录日志，不影响主流程
func Publish(ctx context.Context, p rocketmq.Producer, topic string, body []byte) {
	if p == nil {
		return
	}
	msg := primitive.NewMessage(topic, body)
	if _, err := p.SendSync(ctx, msg); err != nil {
		log.L.Error("publish message failed",
			zap.String("topic", topic),
			zap.Error(err))
	}
}
