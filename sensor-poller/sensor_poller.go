package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/TfGMEnterprise/uk-transport-sensors/config"
	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/publisher"
	"github.com/TfGMEnterprise/uk-transport-sensors/repository"
	"github.com/TfGMEnterprise/uk-transport-sensors/sensor"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/nlopes/slack"
	"github.com/pkg/errors"
)

type SensorPoller struct {
	Logger     *dlog.Logger
	Sensors    []sensor.Sensor
	Publishers []publisher.Publisher
	Interval   time.Duration
	Now        func() time.Time
}

func main() {
	loggerOptions := []dlog.LoggerOption{
		dlog.LoggerSetOutput(os.Stderr),
		dlog.LoggerSetPrefix("sensor-poller: "),
		dlog.LoggerSetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Llongfile),
	}

	logger := dlog.NewLogger(loggerOptions...)

	logger.Debug("main")

	sensorConfig, exists := os.LookupEnv("SENSOR_CONFIG")
	if !exists || sensorConfig == "" {
		logger.Fatal("SENSOR_CONFIG not set in environment")
	}

	transportAPITimeoutStr, exists := os.LookupEnv("TRANSPORTAPI_TIMEOUT")
	if !exists || transportAPITimeoutStr == "" {
		transportAPITimeoutStr = "30"
	}

	transportAPITimeout, err := strconv.Atoi(transportAPITimeoutStr)
	if err != nil {
		logger.Fatal("TRANSPORTAPI_TIMEOUT value is invalid")
	}

	if transportAPITimeout <= 0 {
		logger.Fatal("TRANSPORTAPI_TIMEOUT value must be greater than 0")
	}

	var sess *session.Session
	awsSession := func() *session.Session {
		if sess == nil {
			sess = session.Must(session.NewSession())
		}
		return sess
	}

	loader := config.Loader{
		Logger:    logger,
		LookupEnv: os.LookupEnv,
	}

	if config.IsS3Location(sensorConfig) {
		loader.Client = s3.New(awsSession())
	}

	cfg, err := loader.Load(sensorConfig)
	if err != nil {
		logger.Fatal(errors.Wrapf(err, "cannot load sensor configuration from `%s`", sensorConfig))
	}

	interval, err := cfg.Interval()
	if err != nil {
		logger.Fatal(err)
	}

	client := &transportapi_client.TransportAPIClient{
		Client: &http.Client{
			Timeout: time.Second * time.Duration(transportAPITimeout),
		},
		Logger: logger,
	}

	sensors, err := sensor.FromConfig(logger, client, cfg)
	if err != nil {
		logger.Fatal(err)
	}

	sp := &SensorPoller{
		Logger:   logger,
		Sensors:  sensors,
		Interval: interval,
		Now:      time.Now,
	}

	if departuresRedisHost, exists := os.LookupEnv("DEPARTURES_REDIS_HOST"); exists && departuresRedisHost != "" {
		pool := repository.NewRedisPoolForHost(departuresRedisHost)
		defer func() {
			logger.Debug("close Redis pool")
			if err := pool.Close(); err != nil {
				logger.Print("failed to close Redis pool")
			}
		}()

		sp.Publishers = append(sp.Publishers, &publisher.RedisPublisher{
			Logger: logger,
			Store:  repository.NewRedisStateStore(logger, pool),
		})
	}

	if snsTopicARN, exists := os.LookupEnv("AWS_SNS_TOPIC_ARN"); exists && snsTopicARN != "" {
		sp.Publishers = append(sp.Publishers, &publisher.SNSPublisher{
			Logger:      logger,
			SNSClient:   sns.New(awsSession()),
			SNSTopicARN: &snsTopicARN,
		})
	}

	if mqttBroker, exists := os.LookupEnv("MQTT_BROKER"); exists && mqttBroker != "" {
		mqttClient, err := publisher.NewMQTTClient(mqttBroker, "sensor-poller-"+strconv.Itoa(os.Getpid()))
		if err != nil {
			logger.Fatal(err)
		}
		defer mqttClient.Disconnect(250)

		topicPrefix, _ := os.LookupEnv("MQTT_TOPIC_PREFIX")

		sp.Publishers = append(sp.Publishers, &publisher.MQTTPublisher{
			Logger:      logger,
			Client:      mqttClient,
			TopicPrefix: topicPrefix,
		})
	}

	if slackAPIToken, exists := os.LookupEnv("SLACK_API_TOKEN"); exists && slackAPIToken != "" {
		slackChannel, exists := os.LookupEnv("SLACK_CHANNEL")
		if !exists || slackChannel == "" {
			logger.Fatal("SLACK_CHANNEL not set in environment")
		}

		sp.Publishers = append(sp.Publishers, &publisher.SlackPublisher{
			Logger:    logger,
			Client:    slack.New(slackAPIToken),
			ChannelID: slackChannel,
		})
	}

	logger.Printf("polling %d sensor(s) every %s with %d publisher(s)", cfg.SensorCount(), sp.Interval, len(sp.Publishers))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	sp.Run(stop)

	logger.Print("stopped")
}

// Run ticks once straight away and then every Interval until stop
// receives
func (sp *SensorPoller) Run(stop <-chan os.Signal) {
	sp.Logger.Debug("Run")

	sp.Tick()

	ticker := time.NewTicker(sp.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sp.Tick()
		case sig := <-stop:
			sp.Logger.Debugf("received %s", sig)
			return
		}
	}
}

// Tick updates every sensor in turn and publishes the resulting states
func (sp *SensorPoller) Tick() {
	sp.Logger.Debug("Tick")

	now := sp.Now()
	states := make([]model.SensorState, 0, len(sp.Sensors))

	for _, s := range sp.Sensors {
		s.Update(now)
		state := s.State()
		sp.Logger.Debugf("%s (%s): %s %s", s.Name(), s.Icon(), state.State, s.UnitOfMeasurement())
		states = append(states, state)
	}

	for _, p := range sp.Publishers {
		if err := p.Publish(states); err != nil {
			sp.Logger.Warnf("%T: %s", p, err)
		}
	}
}
