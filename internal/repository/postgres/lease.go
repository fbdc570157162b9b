package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/repository"
)

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

const leaseColumns = `id, landlord_id, tenant_id, property_label, status,
	contract_start::text, contract_end::text, rent_cents, deposit_cents,
	tenant_response, auto_renewal_applied, renewal_notice_sent_at,
	termination_status, termination_requested_date::text, termination_reason,
	termination_requested_at, termination_confirmed_at, termination_requested_by,
	deductions, return_override_cents, version, created_on, updated_on`

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = domain.LeaseStatusOccupied
	}
	query := `INSERT INTO leases (id, landlord_id, tenant_id, property_label, status,
	          contract_start, contract_end, rent_cents, deposit_cents, tenant_response,
	          auto_renewal_applied, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.LandlordID, l.TenantID, l.PropertyLabel, l.Status,
		l.ContractStart, l.ContractEnd, l.RentCents, l.DepositCents,
		l.TenantResponse, l.AutoRenewalApplied)
	if err != nil {
		return err
	}
	l.Version = 1
	return nil
}

func (r *leaseRepository) GetByID(ctx context.Context, id string) (*domain.Lease, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leaseColumns+` FROM leases WHERE id = $1`, id)
	return scanLease(row)
}

func (r *leaseRepository) ListByLandlord(ctx context.Context, landlordID string, page, pageSize int32) ([]domain.Lease, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases WHERE landlord_id = $1`, landlordID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE landlord_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, landlordID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, 0, err
		}
		leases = append(leases, *l)
	}
	return leases, count, rows.Err()
}

func (r *leaseRepository) UpdateTermination(ctx context.Context, l *domain.Lease) error {
	var (
		status        *string
		requestedDate *string
		reason        *string
		requestedAt   *time.Time
		confirmedAt   *time.Time
		requestedBy   *string
		deductions    interface{}
		override      *int64
	)
	if tc := l.Termination; tc != nil {
		s := string(tc.Status)
		status = &s
		requestedDate = &tc.RequestedDate
		reason = &tc.Reason
		at := tc.RequestedAt
		requestedAt = &at
		confirmedAt = tc.ConfirmedAt
		requestedBy = &tc.RequestedBy
		override = tc.ReturnOverrideCents
		if len(tc.Deductions) > 0 {
			b, err := json.Marshal(tc.Deductions)
			if err != nil {
				return fmt.Errorf("failed to encode deductions: %w", err)
			}
			deductions = b
		}
	}

	query := `UPDATE leases SET termination_status=$1, termination_requested_date=$2,
	          termination_reason=$3, termination_requested_at=$4, termination_confirmed_at=$5,
	          termination_requested_by=$6, deductions=$7, return_override_cents=$8,
	          version=version+1, updated_on=NOW()
	          WHERE id=$9 AND version=$10`
	if err := r.versionedExec(ctx, query,
		status, requestedDate, reason, requestedAt, confirmedAt, requestedBy,
		deductions, override, l.ID, l.Version); err != nil {
		return err
	}
	l.Version++
	return nil
}

func (r *leaseRepository) UpdateOccupancy(ctx context.Context, l *domain.Lease) error {
	query := `UPDATE leases SET status=$1, tenant_id=$2, tenant_response=$3,
	          version=version+1, updated_on=NOW()
	          WHERE id=$4 AND version=$5`
	if err := r.versionedExec(ctx, query, l.Status, l.TenantID, l.TenantResponse, l.ID, l.Version); err != nil {
		return err
	}
	l.Version++
	return nil
}

// CompleteTermination moves the case to its terminal status and clears the
// occupancy in a single versioned statement. Splitting these across two
// updates could strand a terminated-but-occupied lease if the second write
// failed.
func (r *leaseRepository) CompleteTermination(ctx context.Context, l *domain.Lease) error {
	query := `UPDATE leases SET termination_status=$1, status=$2, tenant_id=$3,
	          tenant_response=$4, version=version+1, updated_on=NOW()
	          WHERE id=$5 AND version=$6`
	if err := r.versionedExec(ctx, query,
		string(l.Termination.Status), l.Status, l.TenantID, l.TenantResponse, l.ID, l.Version); err != nil {
		return err
	}
	l.Version++
	return nil
}

func (r *leaseRepository) UpdateRenewal(ctx context.Context, l *domain.Lease) error {
	query := `UPDATE leases SET contract_end=$1, tenant_response=$2, auto_renewal_applied=$3,
	          renewal_notice_sent_at=$4, version=version+1, updated_on=NOW()
	          WHERE id=$5 AND version=$6`
	if err := r.versionedExec(ctx, query,
		l.ContractEnd, l.TenantResponse, l.AutoRenewalApplied, l.RenewalNoticeSentAt, l.ID, l.Version); err != nil {
		return err
	}
	l.Version++
	return nil
}

// versionedExec runs an optimistic-concurrency update: zero affected rows
// means the version moved (or the lease is gone) and nothing was written.
func (r *leaseRepository) versionedExec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleLease
	}
	return nil
}

func (r *leaseRepository) ListRenewalCandidates(ctx context.Context, cutoff string) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases
	          WHERE status = 'OCCUPIED'
	            AND contract_end IS NOT NULL
	            AND auto_renewal_applied = FALSE
	            AND termination_status IS NULL
	            AND (contract_end <= $1::date OR tenant_response = 'WANTS_TO_RENEW')`
	return r.queryLeases(ctx, query, cutoff)
}

func (r *leaseRepository) ListNoticeCandidates(ctx context.Context, from, to string) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases
	          WHERE status = 'OCCUPIED'
	            AND contract_end IS NOT NULL
	            AND contract_end BETWEEN $1::date AND $2::date
	            AND tenant_response = ''
	            AND renewal_notice_sent_at IS NULL
	            AND termination_status IS NULL`
	return r.queryLeases(ctx, query, from, to)
}

func (r *leaseRepository) queryLeases(ctx context.Context, query string, args ...interface{}) ([]domain.Lease, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, *l)
	}
	return leases, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLease(row rowScanner) (*domain.Lease, error) {
	var (
		l             domain.Lease
		contractStart sql.NullString
		contractEnd   sql.NullString
		noticeSentAt  sql.NullTime
		tcStatus      sql.NullString
		tcDate        sql.NullString
		tcReason      sql.NullString
		tcRequestedAt sql.NullTime
		tcConfirmedAt sql.NullTime
		tcRequestedBy sql.NullString
		deductions    []byte
		override      sql.NullInt64
	)

	err := row.Scan(&l.ID, &l.LandlordID, &l.TenantID, &l.PropertyLabel, &l.Status,
		&contractStart, &contractEnd, &l.RentCents, &l.DepositCents,
		&l.TenantResponse, &l.AutoRenewalApplied, &noticeSentAt,
		&tcStatus, &tcDate, &tcReason, &tcRequestedAt, &tcConfirmedAt, &tcRequestedBy,
		&deductions, &override, &l.Version, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}

	if contractStart.Valid {
		l.ContractStart = &contractStart.String
	}
	if contractEnd.Valid {
		l.ContractEnd = &contractEnd.String
	}
	if noticeSentAt.Valid {
		l.RenewalNoticeSentAt = &noticeSentAt.Time
	}

	if tcStatus.Valid {
		tc := &domain.TerminationCase{
			Status:        domain.TerminationStatus(tcStatus.String),
			RequestedDate: tcDate.String,
			Reason:        tcReason.String,
			RequestedAt:   tcRequestedAt.Time,
			RequestedBy:   tcRequestedBy.String,
		}
		if tcConfirmedAt.Valid {
			tc.ConfirmedAt = &tcConfirmedAt.Time
		}
		if override.Valid {
			tc.ReturnOverrideCents = &override.Int64
		}
		if len(deductions) > 0 {
			if err := json.Unmarshal(deductions, &tc.Deductions); err != nil {
				return nil, fmt.Errorf("failed to decode deductions: %w", err)
			}
		}
		l.Termination = tc
	}

	return &l, nil
}
