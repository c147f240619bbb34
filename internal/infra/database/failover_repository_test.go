package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockLeadRepo) FindAll(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) UpdateScheduling(ctx context.Context, email string, update entity.SchedulingUpdate) (*entity.Lead, error) {
	args := m.Called(ctx, email, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func TestIsConnectivityError(t *testing.T) {
	assert.True(t, isConnectivityError(driver.ErrBadConn))
	assert.True(t, isConnectivityError(context.DeadlineExceeded))
	assert.True(t, isConnectivityError(&net.DNSError{Err: "no such host", Name: "db.supabase.co"}))
	assert.True(t, isConnectivityError(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))

	// Rechazos del propio Postgres no se reintentan por otro transporte
	assert.False(t, isConnectivityError(nil))
	assert.False(t, isConnectivityError(&pq.Error{Code: "23505"}))
	assert.False(t, isConnectivityError(errors.New("syntax error")))
}

func TestFailoverCreateUsesRestOnNetworkError(t *testing.T) {
	primary := new(mockLeadRepo)
	fallback := new(mockLeadRepo)

	primary.On("Create", mock.Anything, mock.Anything).
		Return(&net.DNSError{Err: "no such host", Name: "db.supabase.co"})
	fallback.On("Create", mock.Anything, mock.Anything).Return(nil)

	repo := NewFailoverLeadRepository(primary, fallback)
	err := repo.Create(context.Background(), sampleLead())

	assert.NoError(t, err)
	fallback.AssertNumberOfCalls(t, "Create", 1)
}

func TestFailoverDoesNotMaskStoreRejections(t *testing.T) {
	primary := new(mockLeadRepo)
	fallback := new(mockLeadRepo)

	pqErr := &pq.Error{Code: "23505", Message: "duplicate key"}
	primary.On("Create", mock.Anything, mock.Anything).Return(pqErr)

	repo := NewFailoverLeadRepository(primary, fallback)
	err := repo.Create(context.Background(), sampleLead())

	assert.ErrorIs(t, err, pqErr)
	fallback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFailoverUpdateSchedulingFallsBack(t *testing.T) {
	primary := new(mockLeadRepo)
	fallback := new(mockLeadRepo)

	update := entity.SchedulingUpdate{EventID: "evt_1", Status: entity.SchedulingScheduled}
	netErr := &net.OpError{Op: "dial", Err: errors.New("i/o timeout")}

	primary.On("UpdateScheduling", mock.Anything, "ana@example.com", update).Return(nil, netErr)
	fallback.On("UpdateScheduling", mock.Anything, "ana@example.com", update).
		Return(&entity.Lead{ID: 7, CalendlyStatus: entity.SchedulingScheduled}, nil)

	repo := NewFailoverLeadRepository(primary, fallback)
	lead, err := repo.UpdateScheduling(context.Background(), "ana@example.com", update)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), lead.ID)
}

func TestFailoverWithoutFallbackReturnsOriginalError(t *testing.T) {
	primary := new(mockLeadRepo)

	netErr := &net.DNSError{Err: "no such host", Name: "db.supabase.co"}
	primary.On("FindAll", mock.Anything).Return(nil, netErr)

	repo := NewFailoverLeadRepository(primary, nil)
	_, err := repo.FindAll(context.Background())

	assert.ErrorIs(t, err, netErr)
}
