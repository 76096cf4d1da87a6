package main

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/repository"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"
)

type Presenter struct {
	Logger *dlog.Logger
	Store  StateLoader
	PresenterInterface
}

type PresenterInterface interface {
	Handler(request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error)
}

// StateLoader returns the stored state of a sensor, or nil if the poller
// has never published one
type StateLoader interface {
	LoadState(key string) (*model.SensorState, error)
}

func main() {
	loggerOptions := []dlog.LoggerOption{
		dlog.LoggerSetOutput(os.Stderr),
		dlog.LoggerSetPrefix("presenter: "),
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
		logger.Debug("close Redis pool")
		if err := pool.Close(); err != nil {
			logger.Print("failed to close Redis pool")
			return
		}
		logger.Debug("closed Redis pool")
	}()

	p := &Presenter{
		Logger: logger,
		Store:  repository.NewRedisStateStore(logger, pool),
	}

	lambda.Start(p.Handler)
}

func (p Presenter) Handler(request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	p.Logger.Debug("Handler")

	code, exists := request.QueryStringParameters["code"]
	if !exists {
		return nil, errors.New("code is required")
	}

	filter, exists := request.QueryStringParameters["filter"]
	if !exists || strings.TrimSpace(filter) == "" {
		return nil, errors.New("filter is required")
	}

	topStr, exists := request.QueryStringParameters["top"]
	if !exists {
		// Set a sensible default for top if the value is not set in the request
		topStr = "10"
	}

	top, err := strconv.ParseInt(topStr, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "top value `%s` is not valid", topStr)
	}

	// Validate code
	if !p.validateCode(code) {
		return nil, errors.Errorf("code value `%s` is not a valid atcocode or CRS code", code)
	}

	// Validate Top
	if !p.validateTop(top) {
		return nil, errors.Errorf("top value `%d` is not valid", top)
	}

	journeyType := model.GetJourneyType(code)
	key := model.StateKey(journeyType, code, filter)

	state, err := p.Store.LoadState(key)
	if err != nil {
		return nil, err
	}

	if state == nil {
		p.Logger.Debugf("no state for %s", key)
		return p.respond(404, map[string]string{
			"message": "no sensor found for " + key,
		})
	}

	// Transform data for output purposes
	output := model.Output{
		Name:          state.Name,
		JourneyType:   state.JourneyType,
		Status:        state.Status,
		NextDeparture: p.transformNextDeparture(state),
		Attribution:   state.Attributes.Attribution,
		Departures:    p.transformDepartures(state),
	}

	if int64(len(output.Departures)) > top {
		output.Departures = output.Departures[:top]
	}

	return p.respond(200, output)
}

// Marshal data in JSON format and return
func (p Presenter) respond(statusCode int, body interface{}) (*events.APIGatewayProxyResponse, error) {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	return &events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"content-type": "application/json",
		},
		Body: string(bodyJSON),
	}, nil
}
