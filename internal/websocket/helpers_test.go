package websocket

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
)

// MockFilterService is a mock implementation of FilterService
type MockFilterService struct {
	mock.Mock
}

func (m *MockFilterService) Dataset(ctx context.Context) (*domain.Dataset, domain.FilterOptions, error) {
	args := m.Called()
	ds, _ := args.Get(0).(*domain.Dataset)
	return ds, args.Get(1).(domain.FilterOptions), args.Error(2)
}

func (m *MockFilterService) View(ctx context.Context, source string, req api.ViewRequest) (domain.DashboardView, error) {
	args := m.Called(source, req)
	return args.Get(0).(domain.DashboardView), args.Error(1)
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Source:      "dashboard_ready_scaled.xlsx",
		Sheet:       "Sheet1",
		TotalRows:   3,
		DroppedRows: 1,
		LoadedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Records: []domain.Record{
			{Index: 0, LocationName: "Star Market", VisitCount: 150, HuffPredicted: 100},
			{Index: 1, LocationName: "Stop & Shop", VisitCount: 80, HuffPredicted: 78},
		},
	}
}

func testOptions() domain.FilterOptions {
	return domain.FilterOptions{HasCluster: true, Clusters: []float64{0, 1}}
}

// fakeConn is an in-memory Connection
type fakeConn struct {
	incoming chan []byte
	done     chan struct{}

	mu       sync.Mutex
	written  [][]byte
	closeErr error
	once     sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan []byte, 8),
		done:     make(chan struct{}),
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if messageType == 1 { // text frame
		c.written = append(c.written, append([]byte(nil), data...))
	}
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg, ok := <-c.incoming:
		if !ok {
			return 0, nil, io.EOF
		}
		return 1, msg, nil
	case <-c.done:
		return 0, nil, io.EOF
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.closeErr
}

func (c *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetReadLimit(int64)                {}
func (c *fakeConn) SetPongHandler(func(string) error) {}

func (c *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}
}

func (c *fakeConn) Written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.written...)
}
