package config

import (
	"io/ioutil"
	"net/url"
	"os"
	"strings"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Loader reads the configuration from a local file or from an S3 object
// addressed as s3://bucket/key, then applies environment overrides for
// the credentials
type Loader struct {
	Client    s3iface.S3API
	Logger    *dlog.Logger
	LookupEnv func(key string) (string, bool)
}

func (l Loader) Load(location string) (*Config, error) {
	l.Logger.Debugf("Load configuration from %s", location)

	data, err := l.read(location)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration from %s", location)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l Loader) applyEnv(cfg *Config) {
	lookupEnv := l.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if appID, exists := lookupEnv("TRANSPORTAPI_APP_ID"); exists && appID != "" {
		l.Logger.Debug("app_id set from environment")
		cfg.AppID = appID
	}

	if appKey, exists := lookupEnv("TRANSPORTAPI_APP_KEY"); exists && appKey != "" {
		l.Logger.Debug("app_key set from environment")
		cfg.AppKey = appKey
	}
}

// IsS3Location reports whether location names an S3 object rather than a
// local file
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

func (l Loader) read(location string) ([]byte, error) {
	if !IsS3Location(location) {
		return ioutil.ReadFile(location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, errors.Errorf("S3 location `%s` must be s3://bucket/key", location)
	}

	if l.Client == nil {
		return nil, errors.New("no S3 client configured")
	}

	return l.getObject(bucket, key)
}

func (l Loader) getObject(bucket string, key string) (body []byte, err error) {
	l.Logger.Debugf("getObject %s from bucket %s", key, bucket)

	obj, err := l.Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}

	defer func() {
		if ferr := obj.Body.Close(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	return ioutil.ReadAll(obj.Body)
}
