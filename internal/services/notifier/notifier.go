// Package services публикует события заявок в брокер уведомлений.
package services

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/rabbitmq"
)

// Notifier публикует события заявок в exchange уведомлений.
// Методы-события не возвращают ошибку: основная операция не должна
// падать из-за недоступного брокера, сбой публикации пишется в лог.
type Notifier struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// New создает новый экземпляр Notifier.
func New(ch *amqp.Channel, log *slog.Logger) *Notifier {
	return &Notifier{ch: ch, log: log}
}

// ApplicationCreated сообщает о новой заявке.
func (n *Notifier) ApplicationCreated(info *models.ApplicationInfo) {
	n.publish(rabbitmq.RoutingKeyCreated, info)
}

// StatusChanged сообщает о смене статуса заявки администратором.
func (n *Notifier) StatusChanged(info *models.ApplicationInfo) {
	n.publish(rabbitmq.RoutingKeyStatus, info)
}

// Upcoming сообщает, что обучение по заявке начинается завтра.
func (n *Notifier) Upcoming(info *models.ApplicationInfo) {
	n.publish(rabbitmq.RoutingKeyUpcoming, info)
}

func (n *Notifier) publish(routingKey string, info *models.ApplicationInfo) {
	if err := rabbitmq.PublishMessage(n.ch, rabbitmq.Exchange, routingKey, info); err != nil {
		n.log.Warn("failed to publish notification",
			slog.String("routing_key", routingKey),
			slog.Int("application_id", info.ID),
			slog.Any("err", err))
		return
	}
	n.log.Debug("published notification",
		slog.String("routing_key", routingKey),
		slog.Int("application_id", info.ID))
}
