package email

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	appconfig "github.com/auralink/auralink-backend/internal/config"
)

// Client отправляет уведомления через SES-совместимый Postbox
type Client struct {
	SESClient *sesv2.Client
	Sender    string
}

// Notifier описывает то, что нужно воркфлоу удаления от почтового клиента
type Notifier interface {
	SendDeletionResolved(ctx context.Context, recipient, videoTitle, status, notes string) error
}

func NewClient(appCfg *appconfig.Config) *Client {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:           appCfg.SESEndpoint,
			SigningRegion: appCfg.SESRegion,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(appCfg.SESAccessKeyID, appCfg.SESSecretAccessKey, "")),
		config.WithRegion(appCfg.SESRegion),
	)
	if err != nil {
		log.Fatalf("failed to load SES config: %v", err)
	}

	return &Client{
		SESClient: sesv2.NewFromConfig(cfg),
		Sender:    appCfg.EmailFrom,
	}
}

func (c *Client) send(ctx context.Context, recipient, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: &c.Sender,
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data: &subject,
				},
				Body: &types.Body{
					Text: &types.Content{
						Data: &body,
					},
				},
			},
		},
	}

	_, err := c.SESClient.SendEmail(ctx, input)
	return err
}

// SendDeletionResolved уведомляет заявителя о решении администратора по
// запросу на удаление
func (c *Client) SendDeletionResolved(ctx context.Context, recipient, videoTitle, status, notes string) error {
	subject := fmt.Sprintf("Your deletion request was %s", status)
	body := fmt.Sprintf(
		"Hello!\n\nYour request to delete the video %q has been %s.",
		videoTitle, status,
	)
	if notes != "" {
		body += fmt.Sprintf("\n\nReviewer notes: %s", notes)
	}
	body += "\n\nThis message was generated automatically, please do not reply."

	return c.send(ctx, recipient, subject, body)
}
