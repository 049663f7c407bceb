package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apporder "github.com/AshwiniC929/OrderService/internal/application/order"
	domainOrder "github.com/AshwiniC929/OrderService/internal/domain/order"
	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/AshwiniC929/OrderService/internal/observability/logctx"
)

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
)

type Handler struct {
	orchestrator *apporder.Orchestrator
	log          observability.Logger
	tel          observability.Observability
}

func NewHandler(orchestrator *apporder.Orchestrator, logger observability.Logger, tel observability.Observability) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		orchestrator: orchestrator,
		log:          logger.With(observability.F("component", componentHTTPHandler)),
		tel:          tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Each route gets: trace extraction → request logger → metrics → access log.
	h.muxHandle(mux, http.MethodPost, "/order/placeOrder", h.handlePlaceOrder)
	h.muxHandle(mux, http.MethodGet, "/order/{orderId}", h.handleOrderDetails)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		r = r.WithContext(withRoute(r.Context(), method+" "+route))
		wrapped := ObservabilityMiddleware(h.log, h.tel)(
			h.withAccessLog(http.HandlerFunc(handler)),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type placeOrderRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"total_amount"`
	PaymentMode string `json:"payment_mode"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "MALFORMED_BODY", err.Error())
		return
	}

	orderID, err := h.orchestrator.PlaceOrder(r.Context(), apporder.PlaceOrderInput{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
	})
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{OrderID: orderID})
}

type productDetailsBody struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

type paymentDetailsBody struct {
	PaymentID   string        `json:"payment_id"`
	Status      dompay.Status `json:"status"`
	PaymentDate time.Time     `json:"payment_date"`
	PaymentMode dompay.Mode   `json:"payment_mode"`
}

type orderDetailsResponse struct {
	OrderID   string             `json:"order_id"`
	Status    domainOrder.Status `json:"status"`
	Amount    int64              `json:"amount"`
	OrderDate time.Time          `json:"order_date"`
	Product   productDetailsBody `json:"product_details"`
	Payment   paymentDetailsBody `json:"payment_details"`
}

func (h *Handler) handleOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")

	details, err := h.orchestrator.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderDetailsResponse{
		OrderID:   details.OrderID,
		Status:    details.Status,
		Amount:    details.Amount,
		OrderDate: details.OrderDate,
		Product: productDetailsBody{
			ProductID:   details.Product.ProductID,
			ProductName: details.Product.ProductName,
		},
		Payment: paymentDetailsBody{
			PaymentID:   details.Payment.PaymentID,
			Status:      details.Payment.Status,
			PaymentDate: details.Payment.PaymentDate,
			PaymentMode: details.Payment.Mode,
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes,
// using the request-scoped logger injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

// writeOrchestratorError surfaces the orchestration error taxonomy, using
// the status hint carried on the error. Everything else is a dependency
// failure propagated from the read path.
func writeOrchestratorError(w http.ResponseWriter, err error) {
	var oerr *apporder.Error
	if errors.As(err, &oerr) {
		writeError(w, oerr.Status, oerr.Code, oerr.Error())
		return
	}
	writeError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", err.Error())
}

type routeKey struct{}

func withRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
