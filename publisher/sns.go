package publisher

import (
	"encoding/json"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/pkg/errors"
)

// SNSMessage is the body of the single message sent per scan
type SNSMessage struct {
	Sensors []model.SensorState `json:"sensors"`
}

type SNSPublisher struct {
	Logger      *dlog.Logger
	SNSClient   snsiface.SNSAPI
	SNSTopicARN *string
}

func (sp *SNSPublisher) Publish(states []model.SensorState) error {
	sp.Logger.Debug("SNSPublisher Publish")

	if len(states) == 0 {
		return nil
	}

	messageJSON, err := json.Marshal(SNSMessage{Sensors: states})
	if err != nil {
		return errors.Wrap(err, "cannot marshal JSON from sensor states")
	}

	if _, err := sp.SNSClient.Publish(&sns.PublishInput{
		Message:  aws.String(string(messageJSON)),
		TopicArn: sp.SNSTopicARN,
	}); err != nil {
		return errors.Wrapf(err, "cannot publish message to SNS topic `%s`", *sp.SNSTopicARN)
	}

	return nil
}
