package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vessels/internal/apperror"
	"vessels/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgreSQL error code for foreign_key_violation.
const fkViolation = "23503"

// Storage persists the vessel registry in PostgreSQL.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// mapErr turns driver errors into apperror sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
		return fmt.Errorf("%w: %s", apperror.ErrReference, pqErr.Constraint)
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Company

func (s *Storage) CreateCompany(ctx context.Context, c *models.Company) error {
	query := `INSERT INTO company (name) VALUES ($1) RETURNING id`
	return mapErr(s.db.QueryRowContext(ctx, query, c.Name).Scan(&c.ID))
}

func (s *Storage) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	c := &models.Company{}
	query := `SELECT id, name FROM company WHERE id=$1`
	if err := s.db.GetContext(ctx, c, query, id); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (s *Storage) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	query := `SELECT id, name FROM company ORDER BY id`
	if err := s.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, err
	}
	return companies, nil
}

// DeleteCompany removes the company together with its persons, its ships and
// the visits of those ships.
func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		steps := []string{
			`DELETE FROM visit WHERE ship_id IN (SELECT id FROM ship WHERE company_id=$1)`,
			`DELETE FROM ship WHERE company_id=$1`,
			`DELETE FROM person WHERE company_id=$1`,
		}
		for _, query := range steps {
			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM company WHERE id=$1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// Person

func (s *Storage) CreatePerson(ctx context.Context, p *models.Person) error {
	query := `
        INSERT INTO person (company_id, name, email, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return mapErr(s.db.QueryRowContext(ctx, query, p.CompanyID, p.Name, p.Email, p.Phone).Scan(&p.ID))
}

func (s *Storage) ListPersons(ctx context.Context) ([]models.Person, error) {
	persons := []models.Person{}
	query := `SELECT id, company_id, name, email, phone FROM person ORDER BY id`
	if err := s.db.SelectContext(ctx, &persons, query); err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *Storage) DeletePerson(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM person WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Ship

const shipColumns = `id, company_id, name, tonnage, max_load_draft, dry_draft, flag, beam, length, year_built, type`

func (s *Storage) CreateShip(ctx context.Context, sh *models.Ship) error {
	query := `
        INSERT INTO ship
            (company_id, name, tonnage, max_load_draft, dry_draft, flag, beam, length, year_built, type)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`
	err := s.db.QueryRowContext(ctx, query,
		sh.CompanyID, sh.Name, sh.Tonnage, sh.MaxLoadDraft, sh.DryDraft,
		sh.Flag, sh.Beam, sh.Length, sh.YearBuilt, sh.Type).
		Scan(&sh.ID)
	return mapErr(err)
}

func (s *Storage) GetShip(ctx context.Context, id int64) (*models.Ship, error) {
	sh := &models.Ship{}
	query := `SELECT ` + shipColumns + ` FROM ship WHERE id=$1`
	if err := s.db.GetContext(ctx, sh, query, id); err != nil {
		return nil, mapErr(err)
	}
	return sh, nil
}

func (s *Storage) UpdateShip(ctx context.Context, sh *models.Ship) error {
	query := `
        UPDATE ship
        SET company_id=$1, name=$2, tonnage=$3, max_load_draft=$4, dry_draft=$5,
            flag=$6, beam=$7, length=$8, year_built=$9, type=$10
        WHERE id=$11`
	res, err := s.db.ExecContext(ctx, query,
		sh.CompanyID, sh.Name, sh.Tonnage, sh.MaxLoadDraft, sh.DryDraft,
		sh.Flag, sh.Beam, sh.Length, sh.YearBuilt, sh.Type, sh.ID)
	if err != nil {
		return mapErr(err)
	}
	return requireAffected(res)
}

// ListShips returns ships matching f, ordered by id. Search is a
// case-insensitive substring match over name, type and year_built.
func (s *Storage) ListShips(ctx context.Context, f models.ShipFilter) ([]models.Ship, error) {
	var args []interface{}
	var conds []string

	if f.Type != nil {
		args = append(args, string(*f.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR type ILIKE $%d OR year_built ILIKE $%d)", n, n, n))
	}

	query := "SELECT " + shipColumns + " FROM ship"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	ships := []models.Ship{}
	if err := s.db.SelectContext(ctx, &ships, query, args...); err != nil {
		return nil, err
	}
	return ships, nil
}

// DeleteShip removes the ship and its visits.
func (s *Storage) DeleteShip(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM visit WHERE ship_id=$1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM ship WHERE id=$1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (s *Storage) ListShipVisits(ctx context.Context, shipID int64) ([]models.ShipVisit, error) {
	query := `
        SELECT h.name AS harbour_name, v.entry_time, v.exit_time
        FROM visit v
        JOIN harbour h ON h.id = v.harbour_id
        WHERE v.ship_id = $1
        ORDER BY v.id`
	visits := []models.ShipVisit{}
	if err := s.db.SelectContext(ctx, &visits, query, shipID); err != nil {
		return nil, err
	}
	return visits, nil
}

// ShipsDockedAt returns the distinct ships with a visit at the harbour whose
// window contains at. Both bounds are inclusive; NULL bounds never match.
func (s *Storage) ShipsDockedAt(ctx context.Context, harbourID int64, at time.Time) ([]models.Ship, error) {
	query := `
        SELECT DISTINCT s.id, s.company_id, s.name, s.tonnage, s.max_load_draft, s.dry_draft,
               s.flag, s.beam, s.length, s.year_built, s.type
        FROM ship s
        JOIN visit v ON v.ship_id = s.id
        WHERE v.harbour_id = $1
          AND v.entry_time <= $2
          AND v.exit_time >= $2
        ORDER BY s.id`
	ships := []models.Ship{}
	if err := s.db.SelectContext(ctx, &ships, query, harbourID, at); err != nil {
		return nil, err
	}
	return ships, nil
}

// Harbour

func (s *Storage) CreateHarbour(ctx context.Context, h *models.Harbour) error {
	query := `
        INSERT INTO harbour (name, max_berth_depth, harbour_master, city, country)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	err := s.db.QueryRowContext(ctx, query,
		h.Name, h.MaxBerthDepth, h.HarbourMaster, h.City, h.Country).
		Scan(&h.ID)
	return mapErr(err)
}

func (s *Storage) GetHarbour(ctx context.Context, id int64) (*models.Harbour, error) {
	h := &models.Harbour{}
	query := `SELECT id, name, max_berth_depth, harbour_master, city, country FROM harbour WHERE id=$1`
	if err := s.db.GetContext(ctx, h, query, id); err != nil {
		return nil, mapErr(err)
	}
	return h, nil
}

func (s *Storage) ListHarbours(ctx context.Context) ([]models.HarbourSummary, error) {
	harbours := []models.HarbourSummary{}
	query := `SELECT id, name, max_berth_depth FROM harbour ORDER BY id`
	if err := s.db.SelectContext(ctx, &harbours, query); err != nil {
		return nil, err
	}
	return harbours, nil
}

// DeleteHarbour removes the harbour and its visits.
func (s *Storage) DeleteHarbour(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM visit WHERE harbour_id=$1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM harbour WHERE id=$1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// Visit

func (s *Storage) CreateVisit(ctx context.Context, v *models.Visit) error {
	query := `
        INSERT INTO visit (ship_id, harbour_id, entry_time, exit_time)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	err := s.db.QueryRowContext(ctx, query, v.ShipID, v.HarbourID, v.EntryTime, v.ExitTime).Scan(&v.ID)
	return mapErr(err)
}

func (s *Storage) ListVisits(ctx context.Context) ([]models.Visit, error) {
	visits := []models.Visit{}
	query := `SELECT id, ship_id, harbour_id, entry_time, exit_time FROM visit ORDER BY id`
	if err := s.db.SelectContext(ctx, &visits, query); err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *Storage) DeleteVisit(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visit WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
