package transportapi_client

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/pkg/errors"
)

// DefaultBaseURL is the root of the transportapi.com UK API
const DefaultBaseURL = "https://transportapi.com/v3/uk/"

// Request describes one live departures query. A sensor builds its
// Request once and reuses it on every update
type Request struct {
	BaseURL string
	Path    string
	AppID   string
	AppKey  string
	Params  map[string]string
}

// URL joins the base URL and the endpoint path
func (r Request) URL() string {
	return strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
}

func (r Request) Validate() error {
	switch {
	case r.AppID == "":
		return errors.New("app_id must be set")
	case r.AppKey == "":
		return errors.New("app_key must be set")
	case r.Path == "":
		return errors.New("endpoint path must be set")
	}

	return nil
}

// Checker is implemented by response payloads that need more than a
// clean JSON decode to be usable
type Checker interface {
	Check() error
}

// TransportAPIClient configuration options for requesting live departures
// from transportapi.com
type TransportAPIClient struct {
	Client *http.Client
	Logger *dlog.Logger
}

type TransportAPIClientInterface interface {
	Fetch(req Request, v interface{}) bool
}

// Fetch performs the request and decodes the response into v. Any failure
// is logged as a warning and reported as false; the caller keeps whatever
// it had before
func (c *TransportAPIClient) Fetch(req Request, v interface{}) bool {
	c.Logger.Debugf("Fetch %s", req.Path)

	if _, err := c.Request(req, v); err != nil {
		c.Logger.Warnf("Invalid response from transportapi.com: %s", err)
		return false
	}

	return true
}

// Request makes the request to transportapi.com and unmarshals the JSON
// body into v. The returned status code is the upstream status where one
// was received
func (c *TransportAPIClient) Request(req Request, v interface{}) (int, error) {
	c.Logger.Debug("transportapi.com Request")

	if err := req.Validate(); err != nil {
		return http.StatusBadRequest, errors.Wrap(err, "invalid transportapi.com request")
	}

	httpRequest, err := c.createHTTPRequest(req)
	if err != nil {
		return http.StatusBadRequest, errors.Wrap(err, "cannot create transportapi.com HTTP request")
	}

	httpResponse, err := c.makeHTTPRequest(httpRequest)
	if err != nil {
		statusCode := http.StatusGatewayTimeout
		if httpResponse != nil {
			statusCode = httpResponse.StatusCode
			_ = httpResponse.Body.Close()
		}
		return statusCode, errors.Wrap(err, "cannot make transportapi.com HTTP request")
	}

	body, err := c.readHTTPResponse(httpResponse)
	if err != nil {
		return httpResponse.StatusCode, errors.Wrap(err, "cannot read transportapi.com response")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return httpResponse.StatusCode, errors.Wrap(err, "cannot unmarshal transportapi.com response")
	}

	if checker, ok := v.(Checker); ok {
		if err := checker.Check(); err != nil {
			return httpResponse.StatusCode, errors.Wrap(err, "unexpected transportapi.com response")
		}
	}

	return httpResponse.StatusCode, nil
}

func (c *TransportAPIClient) createHTTPRequest(req Request) (*http.Request, error) {
	c.Logger.Debug("createHTTPRequest")
	httpRequest, err := http.NewRequest("GET", req.URL(), nil)
	if err != nil {
		return nil, err
	}

	q := httpRequest.URL.Query()
	for k, v := range req.Params {
		q.Set(k, v)
	}
	// Credentials always take precedence over endpoint params
	q.Set("app_id", req.AppID)
	q.Set("app_key", req.AppKey)
	httpRequest.URL.RawQuery = q.Encode()
	httpRequest.Header.Set("Accept", "application/json")

	return httpRequest, nil
}

func (c *TransportAPIClient) makeHTTPRequest(request *http.Request) (*http.Response, error) {
	c.Logger.Debug("makeHTTPRequest")
	resp, err := c.Client.Do(request)
	if err != nil {
		return nil, err
	}

	switch true {
	case resp.StatusCode >= http.StatusInternalServerError:
		return resp, errors.Errorf("transportapi.com is unavailable (status %d)", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return resp, errors.Errorf("bad request to transportapi.com (status %d)", resp.StatusCode)
	default:
		return resp, nil
	}
}

func (c *TransportAPIClient) readHTTPResponse(response *http.Response) (body []byte, err error) {
	c.Logger.Debug("readHTTPResponse")
	defer func() {
		c.Logger.Debug("close response")
		if ferr := response.Body.Close(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	body, err = ioutil.ReadAll(response.Body)
	return body, err
}
