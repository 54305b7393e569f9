package bootstrap

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
	"github.com/SteveHoareau18/timetravelagency/internal/notify"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

// BuildEmailSender selects the confirmation email transport. Missing
// credentials fall back to the stub sender, which only logs.
func BuildEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected without API key; using stub email sender")
	case "ses":
		if awsCfg != nil {
			return notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
				FromEmail: cfg.EmailFrom,
				FromName:  cfg.EmailFromName,
			}, logger)
		}
		logger.Warn("ses selected without AWS configuration; using stub email sender")
	}
	return notify.NewStubEmailSender(logger)
}

// BuildPublisher selects where booking events go: SQS when a queue URL is
// set, RabbitMQ when an AMQP URL is set, nowhere otherwise. The returned
// closer is non-nil only when a connection must be released on shutdown.
func BuildPublisher(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) (notify.EventPublisher, io.Closer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if url := strings.TrimSpace(cfg.ConfirmationQueueURL); url != "" && awsCfg != nil {
		logger.Info("booking events published to SQS", "queue_url", url)
		return notify.NewSQSPublisher(sqs.NewFromConfig(*awsCfg), url), nil, nil
	}
	if url := strings.TrimSpace(cfg.AMQPURL); url != "" {
		pub, err := notify.NewAMQPPublisher(url, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("booking events published to RabbitMQ", "exchange", notify.ExchangeName)
		return pub, pub, nil
	}
	logger.Info("no event bus configured; booking events are not published")
	return notify.NopPublisher{}, nil, nil
}
