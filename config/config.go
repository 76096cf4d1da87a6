package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ChannelMeter/iso8601duration"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	DefaultScanInterval = "PT1M"
)

// Config lists the transportapi.com credentials and the sensors to poll
type Config struct {
	AppID         string          `toml:"app_id" validate:"required"`
	AppKey        string          `toml:"app_key" validate:"required"`
	BaseURL       string          `toml:"base_url" validate:"required,url"`
	ScanInterval  string          `toml:"scan_interval" validate:"required"`
	LiveBusTime   []LiveBusTime   `toml:"live_bus_time" validate:"dive"`
	LiveTrainTime []LiveTrainTime `toml:"live_train_time" validate:"dive"`
}

type LiveBusTime struct {
	StopAtcocode string `toml:"stop_atcocode" validate:"required,alphanum"`
	Direction    string `toml:"direction" validate:"required"`
}

type LiveTrainTime struct {
	StationCode     string `toml:"station_code" validate:"required,alphanum"`
	DestinationName string `toml:"destination_name" validate:"required"`
}

// Parse decodes a TOML document and fills in defaults. It does not
// validate; see Validate
func Parse(data []byte) (*Config, error) {
	cfg := Config{}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode TOML configuration")
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown configuration key `%s`", undecoded[0].String())
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = transportapi_client.DefaultBaseURL
	}

	if cfg.ScanInterval == "" {
		cfg.ScanInterval = DefaultScanInterval
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if _, err := c.Interval(); err != nil {
		return err
	}

	return nil
}

// Interval is the scan interval as a duration
func (c *Config) Interval() (time.Duration, error) {
	d, err := duration.FromString(c.ScanInterval)
	if err != nil {
		return 0, errors.Wrapf(err, "scan_interval value `%s` is not a valid ISO8601 duration", c.ScanInterval)
	}

	interval := d.ToDuration()
	if interval <= 0 {
		return 0, errors.Errorf("scan_interval value `%s` must be greater than 0", c.ScanInterval)
	}

	return interval, nil
}

// SensorCount is the number of bus and train sensors configured
func (c *Config) SensorCount() int {
	return len(c.LiveBusTime) + len(c.LiveTrainTime)
}
