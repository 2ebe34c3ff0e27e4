package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"enrolpay/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSender creates a new SES-backed email MessageSender.
func NewSender(region, fromAddress, fromName string) (port.MessageSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) Name() string { return "ses" }

func (s *sesSender) Send(ctx context.Context, msg port.Message) (string, error) {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.Recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Text: &types.Content{Data: &msg.Body},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("SES SendEmail: %w", err)
	}
	if out.MessageId == nil {
		return "", nil
	}
	return *out.MessageId, nil
}
