package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rahmatsubandi/veriauth/internal/pkg/config"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goroutine"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/messaging"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubsub
		handler            messaging.Handler
	}{
		{
			name:               event.OtpIssuedConsumerNotification,
			topic:              event.OtpIssuedDestination,
			nsqConsumerName:    event.OtpIssuedConsumerNotification,
			natsConsumerName:   event.OtpIssuedConsumerNotification,
			kafkaConsumerName:  event.OtpIssuedConsumerNotification,
			pubsubConsumerName: event.OtpIssuedConsumerNotification,
			handler:            mqHandler.OtpIssuedNotification,
		},
		{
			name:               event.AccountRegisteredConsumerNotification,
			topic:              event.AccountRegisteredDestination,
			nsqConsumerName:    event.AccountRegisteredConsumerNotification,
			natsConsumerName:   event.AccountRegisteredConsumerNotification,
			kafkaConsumerName:  event.AccountRegisteredConsumerNotification,
			pubsubConsumerName: event.AccountRegisteredConsumerNotification,
			handler:            mqHandler.AccountRegisteredNotification,
		},
		{
			name:               event.PasswordChangedConsumerNotification,
			topic:              event.PasswordChangedDestination,
			nsqConsumerName:    event.PasswordChangedConsumerNotification,
			natsConsumerName:   event.PasswordChangedConsumerNotification,
			kafkaConsumerName:  event.PasswordChangedConsumerNotification,
			pubsubConsumerName: event.PasswordChangedConsumerNotification,
			handler:            mqHandler.PasswordChangedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
