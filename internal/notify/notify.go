// Package notify 把邮件消息投递到消息队列，由 cmd/mail 负责真正发送。
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, msg domain.MailMessage) error
}

// Publisher 是基于 RabbitMQ 的 Notifier
type Publisher struct {
	channel        *amqp.Channel
	queue          string
	publishTimeout time.Duration
}

func NewPublisher(ch *amqp.Channel, queue string, publishTimeout time.Duration) *Publisher {
	return &Publisher{
		channel:        ch,
		queue:          queue,
		publishTimeout: publishTimeout,
	}
}

// DeclareQueue 声明持久化队列，api 和 mail worker 都会调用，重复声明不会出错
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // 是否持久化
		false, // 是否自动删除
		false, // 是否独占
		false, // 是否不等待
		nil,
	)
}

func (p *Publisher) Notify(ctx context.Context, msg domain.MailMessage) error {
	// 序列化邮件
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Discard 在没有配置 RabbitMQ 时使用，只记录日志
type Discard struct{}

func (Discard) Notify(ctx context.Context, msg domain.MailMessage) error {
	slog.Debug("未配置消息队列，丢弃邮件", "type", msg.Type, "to", msg.To)
	return nil
}
