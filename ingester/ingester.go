package main

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/publisher"
	"github.com/TfGMEnterprise/uk-transport-sensors/repository"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"
)

// Ingester stores the sensor states a poller published to SNS so that a
// presenter can serve them without access to the poller
type Ingester struct {
	Logger *dlog.Logger
	Store  StateSaver
	IngesterInterface
}

type IngesterInterface interface {
	Handler(event events.SNSEvent) error
}

type StateSaver interface {
	SaveStates(states []model.SensorState) error
}

func main() {
	loggerOptions := []dlog.LoggerOption{
		dlog.LoggerSetOutput(os.Stderr),
		dlog.LoggerSetPrefix("ingester: "),
		dlog.LoggerSetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Llongfile),
	}

	logger := dlog.NewLogger(loggerOptions...)

	logger.Debug("main")

	departuresRedisHost, exists := os.LookupEnv("DEPARTURES_REDIS_HOST")
	if !exists || departuresRedisHost == "" {
		logger.Fatal("DEPARTURES_REDIS_HOST not set in environment")
	}

	pool := repository.NewRedisPoolForHost(departuresRedisHost)

	defer func() {
		logger.Debug("close departures Redis pool")
		if err := pool.Close(); err != nil {
			logger.Print("failed to close departures Redis pool")
			return
		}
		logger.Debug("closed departures Redis pool")
	}()

	in := Ingester{
		Logger: logger,
		Store:  repository.NewRedisStateStore(logger, pool),
	}

	lambda.Start(in.Handler)
}

func (in Ingester) Handler(event events.SNSEvent) error {
	in.Logger.Debug("Handler")

	errs := make(chan error, len(event.Records))

	wg := sync.WaitGroup{}

	for _, record := range event.Records {
		wg.Add(1)

		go func(record events.SNSEventRecord) {
			defer wg.Done()

			if err := in.ingestRecord(record); err != nil {
				errs <- errors.Wrapf(err, "cannot ingest SNS message %s", record.SNS.MessageID)
			}
		}(record)
	}

	wg.Wait()
	close(errs)

	// Report the first error; every record has been attempted
	if err, ok := <-errs; ok {
		return err
	}

	return nil
}

func (in Ingester) ingestRecord(record events.SNSEventRecord) error {
	in.Logger.Debugf("ingestRecord %s", record.SNS.MessageID)

	message := publisher.SNSMessage{}
	if err := json.Unmarshal([]byte(record.SNS.Message), &message); err != nil {
		return errors.Wrap(err, "could not unmarshal sensor states")
	}

	states := message.Sensors[:0]
	for _, state := range message.Sensors {
		if state.Key == "" {
			in.Logger.Printf("skipping state without a key: %s", state.Name)
			continue
		}
		states = append(states, state)
	}

	in.Logger.Debugf("%d state(s) to save", len(states))

	return in.Store.SaveStates(states)
}
