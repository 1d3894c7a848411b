package thermometer

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/alittlebrighter/hvacctl/util"
)

type JSONWebService struct {
	client  *http.Client
	request *http.Request
}

func NewJSONWebService(endpoint string) (*JSONWebService, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")
	thermometer := &JSONWebService{client: new(http.Client), request: req}

	resp, err := thermometer.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to thermometer web service")
	}
	resp.Body.Close()
	if resp.StatusCode > 300 {
		return nil, errors.Errorf("thermometer web service returned status %d", resp.StatusCode)
	}

	return thermometer, nil
}

func (meter *JSONWebService) ReadTemperature() (float64, util.TemperatureUnits, error) {
	resp, err := meter.client.Do(meter.request)
	if err != nil {
		return 0, util.Celsius, errors.Wrap(err, "thermometer request failed")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return 0, util.Celsius, errors.Wrap(err, "could not read thermometer response")
	}

	tempReading := new(TemperatureReading)
	if err = json.Unmarshal(body, tempReading); err != nil {
		return 0, util.Celsius, errors.Wrap(err, "could not parse thermometer response")
	}

	return tempReading.Explode()
}

func (meter *JSONWebService) Shutdown() {}

type TemperatureReading struct {
	Temperature float64
	Units       util.TemperatureUnits
	Error       error
}

func (r *TemperatureReading) Explode() (float64, util.TemperatureUnits, error) {
	return r.Temperature, r.Units, r.Error
}
