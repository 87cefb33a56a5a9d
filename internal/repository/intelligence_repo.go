package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"honeypot-llm/internal/domain"
)

type IntelligenceRepository interface {
	Create(ctx context.Context, report domain.IntelligenceReport) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.IntelligenceReport, error)
}

type PgIntelligenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgIntelligenceRepository(pool *pgxpool.Pool) *PgIntelligenceRepository {
	return &PgIntelligenceRepository{pool: pool}
}

func (r *PgIntelligenceRepository) Create(ctx context.Context, report domain.IntelligenceReport) error {
	const query = `
		INSERT INTO intelligence_reports (id, session_id, verdict, bank_accounts, upi_handles, phishing_links, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.SessionID,
		string(report.Verdict),
		report.BankAccounts,
		report.UPIHandles,
		report.PhishingLinks,
		report.CreatedAt,
	)
	return err
}

func (r *PgIntelligenceRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.IntelligenceReport, error) {
	const query = `
		SELECT id, session_id, verdict, bank_accounts, upi_handles, phishing_links, created_at
		FROM intelligence_reports
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.IntelligenceReport
	for rows.Next() {
		var report domain.IntelligenceReport
		var verdict string

		err = rows.Scan(
			&report.ID,
			&report.SessionID,
			&verdict,
			&report.BankAccounts,
			&report.UPIHandles,
			&report.PhishingLinks,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		report.Verdict = domain.Verdict(verdict)
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
