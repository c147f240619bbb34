package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"log"
	"net"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// FailoverLeadRepository: intenta la conexión directa a Postgres y, si la
// falla es de red/DNS, repite la operación por la vía REST de Supabase.
// El mismo almacén lógico, dos transportes intercambiables.
type FailoverLeadRepository struct {
	Primary  entity.LeadRepositoryInterface
	Fallback entity.LeadRepositoryInterface
}

func NewFailoverLeadRepository(primary, fallback entity.LeadRepositoryInterface) *FailoverLeadRepository {
	return &FailoverLeadRepository{
		Primary:  primary,
		Fallback: fallback,
	}
}

func (f *FailoverLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	err := f.Primary.Create(ctx, lead)
	if f.shouldFailover(err) {
		log.Printf("⚠️ Postgres inalcanzable (%v), insertando por la vía REST", err)
		return f.Fallback.Create(ctx, lead)
	}
	return err
}

func (f *FailoverLeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	leads, err := f.Primary.FindAll(ctx)
	if f.shouldFailover(err) {
		log.Printf("⚠️ Postgres inalcanzable (%v), leyendo por la vía REST", err)
		return f.Fallback.FindAll(ctx)
	}
	return leads, err
}

func (f *FailoverLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	lead, err := f.Primary.FindByEmail(ctx, email)
	if f.shouldFailover(err) {
		log.Printf("⚠️ Postgres inalcanzable (%v), leyendo por la vía REST", err)
		return f.Fallback.FindByEmail(ctx, email)
	}
	return lead, err
}

func (f *FailoverLeadRepository) UpdateScheduling(ctx context.Context, email string, update entity.SchedulingUpdate) (*entity.Lead, error) {
	lead, err := f.Primary.UpdateScheduling(ctx, email, update)
	if f.shouldFailover(err) {
		log.Printf("⚠️ Postgres inalcanzable (%v), actualizando por la vía REST", err)
		return f.Fallback.UpdateScheduling(ctx, email, update)
	}
	return lead, err
}

func (f *FailoverLeadRepository) shouldFailover(err error) bool {
	return err != nil && f.Fallback != nil && isConnectivityError(err)
}

// isConnectivityError separa la clase "no se pudo llegar al servidor" (red,
// DNS, timeout, conexión podrida del pool) de los rechazos del propio
// Postgres, que no tiene sentido reintentar por otro transporte.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
