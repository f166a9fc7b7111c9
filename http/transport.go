package http

import (
	"encoding/json"
	"errors"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"income-estimator/calendar"
	"income-estimator/domain"
	"income-estimator/estimate"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps estimate request bodies
const maxBodyBytes = 1 << 16

// Server dependencies for HTTP Server functions
type Server struct {
	Service estimate.Service
	Rates   estimate.RateSource
	Base    domain.Currency
	Local   domain.Currency

	// Gatherer exposed on /metrics, none if nil
	Gatherer prometheus.Gatherer
	Logger   log.Logger

	// now defaults the request date to today
	now    func() time.Time
	router http.ServeMux
}

func NewServer(s estimate.Service, rates estimate.RateSource, base, local domain.Currency, gatherer prometheus.Gatherer, logger log.Logger) *Server {
	server := &Server{
		Service:  s,
		Rates:    rates,
		Base:     base,
		Local:    local,
		Gatherer: gatherer,
		Logger:   logger,
		now:      time.Now,
		router:   http.ServeMux{},
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/estimate", s.estimate())
	s.router.Handle("/api/rate", s.rate())
	if s.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// window for marshalling a settlement window
type window struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
}

// quote for marshalling one payment option
type quote struct {
	ServiceFee     string `json:"serviceFee"`
	TransactionFee string `json:"transactionFee"`
	Fee            string `json:"fee"`
	Net            string `json:"net"`
	Window         window `json:"window"`
}

func newQuote(q domain.Quote) quote {
	return quote{
		ServiceFee:     q.ServiceFee.StringFixed(2),
		TransactionFee: q.TransactionFee.StringFixed(2),
		Fee:            q.Fee.StringFixed(2),
		Net:            q.Net.StringFixed(2),
		Window: window{
			Start:   calendar.FormatDate(q.Window.Start),
			End:     calendar.FormatDate(q.Window.End),
			Display: calendar.Display(q.Window.Start) + " - " + calendar.Display(q.Window.End),
		},
	}
}

// estimate produces HTTP handler for settlement estimates
func (s *Server) estimate() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		GrossIncome  json.RawMessage `json:"grossIncome"`
		RequestDate  string          `json:"requestDate"`
		ContractType string          `json:"contractType"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		GrossIncome  string  `json:"grossIncome"`
		RequestDate  string  `json:"requestDate"`
		ContractType string  `json:"contractType"`
		Currency     string  `json:"currency"`
		Rate         float64 `json:"rate"`
		Direct       quote   `json:"direct"`
		Marketplace  quote   `json:"marketplace"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(rw, r.Body, maxBodyBytes)
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid request")
			return
		}

		var request request
		err = json.Unmarshal(bytes, &request)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid json")
			return
		}

		requested := calendar.Date(s.now())
		if strings.TrimSpace(request.RequestDate) != "" {
			requested, err = calendar.ParseDate(strings.TrimSpace(request.RequestDate))
			if err != nil {
				writeError(rw, http.StatusBadRequest, "invalid requestDate")
				return
			}
		}

		contract, err := estimate.ParseContractType(request.ContractType)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid contractType")
			return
		}

		result, err := s.Service.Estimate(r.Context(), estimate.Request{
			GrossIncome:  grossText(request.GrossIncome),
			RequestDate:  requested,
			ContractType: contract,
		})
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(rw, http.StatusBadRequest, "invalid grossIncome")
			return
		}
		if err != nil {
			s.Logger.Log("msg", "estimate failed", "err", err)
			writeError(rw, http.StatusInternalServerError, "failed estimate")
			return
		}

		response := response{
			GrossIncome:  result.Gross.StringFixed(2),
			RequestDate:  calendar.FormatDate(result.RequestDate),
			ContractType: result.Contract.String(),
			Currency:     string(s.Local),
			Rate:         float64(result.Rate),
			Direct:       newQuote(result.Direct),
			Marketplace:  newQuote(result.Marketplace),
		}

		enc := json.NewEncoder(rw)
		err = enc.Encode(&response)
		if err != nil {
			s.Logger.Log("msg", "failed json encoding", "err", err)
		}
	}
}

// rate produces HTTP handler reporting the cached exchange rate
func (s *Server) rate() http.HandlerFunc {
	type response struct {
		From string  `json:"from"`
		To   string  `json:"to"`
		Rate float64 `json:"rate"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		response := response{
			From: string(s.Base),
			To:   string(s.Local),
			Rate: float64(s.Rates.Current()),
		}
		if err := json.NewEncoder(rw).Encode(&response); err != nil {
			s.Logger.Log("msg", "failed json encoding", "err", err)
		}
	}
}

// grossText accepts gross income as a JSON string or number
func grossText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	// keep the literal; it is range checked by estimate.ParseGross
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	return ""
}

func writeError(rw http.ResponseWriter, status int, msg string) {
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(map[string]string{"error": msg})
}
