package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"income-estimator/domain"
	"io"
	"net/http"
	"strings"
	"time"
)

// ApiUrlBase exchangerate-api v6 base url
const ApiUrlBase = "https://v6.exchangerate-api.com/v6"

// Service wraps the exchange rate REST API
type Service interface {
	ExchangeRates(ctx context.Context, base domain.Currency) (domain.Rates, error)
}

// service exchangerate-api client
type service struct {
	// url base API url
	url string

	// key API credential, part of the request path
	key string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid Service.
func NewService(url string, key string, timeout time.Duration) Service {
	if url == "" {
		url = ApiUrlBase
	}
	return &service{
		url: strings.TrimRight(url, "/"),
		key: key,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// ExchangeRates loads the latest rate table for a base currency.
func (s *service) ExchangeRates(ctx context.Context, base domain.Currency) (domain.Rates, error) {
	type Response struct {
		Result          string             `json:"result"`
		ErrorType       string             `json:"error-type"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}

	url := fmt.Sprintf("%v/%v/latest/%v", s.url, s.key, base)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building http request: %v", domain.ErrRateFetch, err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: http get: %v", domain.ErrRateFetch, err)
	}
	defer httpResponse.Body.Close()

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading json: %v", domain.ErrRateFetch, err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding json (status %d): %v", domain.ErrRateFetch, httpResponse.StatusCode, err)
	}

	if response.Result != "success" {
		return nil, fmt.Errorf("%w: api result %q: %v", domain.ErrRateFetch, response.Result, response.ErrorType)
	}
	if len(response.ConversionRates) == 0 {
		return nil, fmt.Errorf("%w: no conversion rates for %v", domain.ErrRateFetch, base)
	}

	rates := domain.Rates{}
	for k, v := range response.ConversionRates {
		rates[domain.Currency(k)] = domain.Rate(v)
	}

	return rates, nil
}
