package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vinyasaclub/models"
)

const vinCounter = "member_vin"

type SQLMemberRepo struct {
	DB *sql.DB
}

func NewSQLMemberRepo(db *sql.DB) *SQLMemberRepo {
	return &SQLMemberRepo{DB: db}
}

func (r *SQLMemberRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, vin, seq, name, email, branch, year
		FROM members
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	list := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.VIN, &m.Seq, &m.Name, &m.Email, &m.Branch, &m.Year); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *SQLMemberRepo) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m := &models.Member{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, vin, seq, name, email, branch, year
		FROM members
		WHERE id = $1
	`, id).Scan(&m.ID, &m.VIN, &m.Seq, &m.Name, &m.Email, &m.Branch, &m.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (r *SQLMemberRepo) CreateMember(ctx context.Context, member *models.Member) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, `
		UPDATE counters SET value = value + 1
		WHERE name = $1
		RETURNING value
	`, vinCounter).Scan(&seq)
	if err != nil {
		return fmt.Errorf("next vin: %w", err)
	}

	member.ID = uuid.NewString()
	member.Seq = seq
	member.VIN = models.FormatVIN(seq)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO members (id, vin, seq, name, email, branch, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, member.ID, member.VIN, member.Seq, member.Name, member.Email, member.Branch, member.Year)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return tx.Commit()
}

func (r *SQLMemberRepo) DeleteMember(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE member_id = $1`, id); err != nil {
		return fmt.Errorf("delete member attendance: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM performance WHERE member_id = $1`, id); err != nil {
		return fmt.Errorf("delete member performance: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *SQLMemberRepo) CountMembers(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}
