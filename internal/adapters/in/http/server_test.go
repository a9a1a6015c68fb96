package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/memory"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []ports.StatusChange
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, change ports.StatusChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.changes)
}

type storeFactory struct{ store *memory.Store }

func (f storeFactory) Create() commands.OrderUoW { return f.store.Create() }

type ServerTestSuite struct {
	suite.Suite
	router   *echo.Echo
	notifier *recordingNotifier
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	clock := kernel.SystemClock{}
	factory := storeFactory{store: memory.NewStore()}
	reader := factory.store.Create().OrderRepository()
	s.notifier = &recordingNotifier{}

	server := orderhttp.NewServer(
		commands.NewCreateOrderCommandHandler(factory, clock, logger),
		commands.NewChangeOrderStatusCommandHandler(factory, s.notifier, clock, logger),
		commands.NewAdvanceOrderCommandHandler(factory, s.notifier, clock, logger),
		commands.NewProgressOrdersCommandHandler(factory, s.notifier, clock, logger),
		commands.NewTransitionOrdersCommandHandler(factory, s.notifier, clock, logger),
		queries.NewGetOrderQueryHandler(reader),
		queries.NewGetAllOrdersQueryHandler(reader),
	)
	s.router = orderhttp.NewRouter(server, logger)
}

func (s *ServerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) createOrder() servers.Order {
	rec := s.do(http.MethodPost, "/api/orders",
		`{"items":[{"itemId":"burger-1","itemName":"Classic Burger","quantity":2,"price":12.99}]}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func (s *ServerTestSuite) setStatus(id string, status servers.OrderStatus) *httptest.ResponseRecorder {
	return s.do(http.MethodPut, "/api/orders/"+id+"/status?status="+string(status), "")
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/orders/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Orders service is healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestCreateOrder() {
	created := s.createOrder()

	s.Equal(servers.PENDING, created.Status)
	s.Equal("25.98", created.Total.StringFixed(2))
	s.Require().Len(created.Items, 1)
	s.Equal("Classic Burger", created.Items[0].ItemName)
	s.Equal(created.CreatedAt, created.UpdatedAt)
	s.Zero(s.notifier.count())
}

func (s *ServerTestSuite) TestCreateOrder_Invalid() {
	tests := map[string]string{
		"malformed json":    `{"items":`,
		"no items":          `{"items":[]}`,
		"zero quantity":     `{"items":[{"itemId":"a","itemName":"A","quantity":0,"price":1}]}`,
		"missing item name": `{"items":[{"itemId":"a","quantity":1,"price":1}]}`,
		"negative price":    `{"items":[{"itemId":"a","itemName":"A","quantity":1,"price":-1}]}`,
	}

	for name, body := range tests {
		s.Run(name, func() {
			rec := s.do(http.MethodPost, "/api/orders", body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *ServerTestSuite) TestGetOrder() {
	created := s.createOrder()

	rec := s.do(http.MethodGet, "/api/orders/"+created.OrderId.String(), "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var fetched servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fetched))
	s.Equal(created.OrderId, fetched.OrderId)

	rec = s.do(http.MethodGet, "/api/orders/"+kernel.NewUUID().String(), "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/orders/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestGetOrders() {
	first := s.createOrder()
	second := s.createOrder()

	rec := s.do(http.MethodGet, "/api/orders", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var orders []servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &orders))
	s.Require().Len(orders, 2)
	s.Equal(first.OrderId, orders[0].OrderId)
	s.Equal(second.OrderId, orders[1].OrderId)
}

func (s *ServerTestSuite) TestUpdateOrderStatus() {
	created := s.createOrder()

	rec := s.setStatus(created.OrderId.String(), servers.CONFIRMED)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Equal(servers.CONFIRMED, updated.Status)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
	s.Equal(1, s.notifier.count())

	s.Equal(http.StatusConflict, s.setStatus(created.OrderId.String(), servers.DELIVERED).Code)
	s.Equal(http.StatusBadRequest, s.setStatus(created.OrderId.String(), "SHIPPED").Code)
	s.Equal(http.StatusNotFound, s.setStatus(kernel.NewUUID().String(), servers.CONFIRMED).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/orders/"+created.OrderId.String()+"/status", "").Code)
}

func (s *ServerTestSuite) TestUpdateOrderStatus_AcceptsLowercase() {
	created := s.createOrder()

	rec := s.setStatus(created.OrderId.String(), "cancelled")

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestSimulateProgression() {
	created := s.createOrder()
	target := "/api/orders/" + created.OrderId.String() + "/simulate-progression"

	for _, expected := range []servers.OrderStatus{
		servers.CONFIRMED, servers.PREPARING, servers.READY, servers.OUTFORDELIVERY, servers.DELIVERED,
	} {
		rec := s.do(http.MethodPost, target, "")
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var updated servers.Order
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
		s.Equal(expected, updated.Status)
	}

	s.Equal(http.StatusConflict, s.do(http.MethodPost, target, "").Code)
	s.Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/api/orders/"+kernel.NewUUID().String()+"/simulate-progression", "").Code)
}

func (s *ServerTestSuite) TestBulkStatusUpdate() {
	confirmed := s.createOrder()
	s.Require().Equal(http.StatusOK, s.setStatus(confirmed.OrderId.String(), servers.CONFIRMED).Code)
	pending := s.createOrder()

	rec := s.do(http.MethodPost, "/api/orders/bulk-status-update", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var report servers.ProgressionReport
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.True(report.Success)
	s.Equal("Order status progression processing completed", report.Message)
	s.Equal(1, report.TotalOrdersUpdated)
	s.Require().Len(report.StepResults, 4)
	step := report.StepResults["confirmed_to_preparing"]
	s.Equal(servers.CONFIRMED, step.FromStatus)
	s.Equal(servers.PREPARING, step.ToStatus)
	s.Equal(1, step.UpdatedCount)
	s.WithinDuration(time.Now(), report.Timestamp, time.Minute)

	rec = s.do(http.MethodGet, "/api/orders/"+pending.OrderId.String(), "")
	var fetched servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fetched))
	s.Equal(servers.PENDING, fetched.Status)
}

func (s *ServerTestSuite) TestBulkStatusTransition() {
	first := s.createOrder()
	second := s.createOrder()

	rec := s.do(http.MethodPost, "/api/orders/bulk-status-transition?fromStatus=PENDING&toStatus=CANCELLED", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result servers.StepResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.True(result.Success)
	s.Equal(2, result.UpdatedCount)
	s.Equal("Successfully updated 2 orders from PENDING to CANCELLED", result.Message)

	for _, id := range []string{first.OrderId.String(), second.OrderId.String()} {
		var fetched servers.Order
		s.Require().NoError(json.Unmarshal(s.do(http.MethodGet, "/api/orders/"+id, "").Body.Bytes(), &fetched))
		s.Equal(servers.CANCELLED, fetched.Status)
	}
}

func (s *ServerTestSuite) TestBulkStatusTransition_Rejected() {
	s.createOrder()

	rec := s.do(http.MethodPost, "/api/orders/bulk-status-transition?fromStatus=DELIVERED&toStatus=PENDING", "")
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders/bulk-status-transition?fromStatus=PENDING&toStatus=LOST", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders/bulk-status-transition?fromStatus=PENDING", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	s.Zero(s.notifier.count())
}

func (s *ServerTestSuite) TestOperationalRoutes() {
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/health", "").Code)

	rec := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "orders_http_requests_total")

	rec = s.do(http.MethodGet, "/openapi.json", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var doc map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
	s.Contains(doc, "paths")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestRequestValidator(t *testing.T) {
	v := orderhttp.NewRequestValidator()

	require.Error(t, v.Validate(&servers.NewOrder{}))
	assert.NoError(t, v.Validate(&servers.NewOrder{Items: []servers.OrderItem{{
		ItemId: "a", ItemName: "A", Quantity: 1,
	}}}))
}
