// Package sqlite is the embedded durable row store backing the local
// persistence layer. Every table carries a province_scope column so that
// tenants (provinces) never see each other's rows.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"folharh/internal/storage"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir a base de dados: %w", err)
	}

	store := &Store{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao inicializar tabelas: %w", err)
	}

	return store, nil
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS employees (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			identity_card TEXT,
			nif TEXT,
			social_security_number TEXT,
			birth_date TEXT,
			hire_date TEXT,
			position TEXT,
			department TEXT,
			branch_id TEXT,
			base_salary REAL,
			food_allowance REAL,
			transport_allowance REAL,
			family_allowance REAL,
			dependents REAL,
			bank_name TEXT,
			bank_account TEXT,
			phone TEXT,
			email TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			address TEXT,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS branches (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			name TEXT,
			code TEXT,
			province TEXT,
			municipality TEXT,
			address TEXT,
			phone TEXT,
			email TEXT,
			manager_name TEXT,
			is_headquarters INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS users (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			username TEXT,
			full_name TEXT,
			email TEXT,
			password_hash TEXT,
			role TEXT,
			branch_id TEXT,
			custom_permissions TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			last_login_at TEXT,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS deductions (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			employee_id TEXT,
			kind TEXT,
			description TEXT,
			amount REAL,
			percentage REAL,
			start_date TEXT,
			end_date TEXT,
			is_recurring INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS absences (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			employee_id TEXT,
			kind TEXT,
			start_date TEXT,
			end_date TEXT,
			days REAL,
			reason TEXT,
			justified INTEGER NOT NULL DEFAULT 0,
			affects_salary INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS holidays (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			employee_id TEXT,
			year REAL,
			days_entitled REAL,
			days_used REAL,
			days_remaining REAL,
			updated_at TEXT,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS payroll_records (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			record_type TEXT NOT NULL,
			name TEXT,
			year REAL,
			month REAL,
			status TEXT,
			processed_at TEXT,
			period_id TEXT,
			employee_id TEXT,
			gross_salary REAL,
			base_salary REAL,
			allowances_total REAL,
			irt_amount REAL,
			inss_amount REAL,
			other_deductions REAL,
			net_salary REAL,
			days_worked REAL,
			paid INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (id, province_scope)
		);

		CREATE TABLE IF NOT EXISTS settings (
			id TEXT NOT NULL,
			province_scope TEXT NOT NULL,
			company_name TEXT,
			company_nif TEXT,
			address TEXT,
			phone TEXT,
			email TEXT,
			currency TEXT,
			language TEXT,
			payroll_day REAL,
			selected_province TEXT,
			network_mode TEXT,
			server_ip TEXT,
			server_port REAL,
			PRIMARY KEY (id, province_scope)
		);

		CREATE INDEX IF NOT EXISTS idx_employees_scope ON employees(province_scope);
		CREATE INDEX IF NOT EXISTS idx_branches_scope ON branches(province_scope);
		CREATE INDEX IF NOT EXISTS idx_payroll_scope ON payroll_records(province_scope, record_type);
	`)

	return err
}

func (s *Store) FetchAll(ctx context.Context, table, province string) ([]storage.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE province_scope = ?", table), province)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", table, err)
	}
	defer rows.Close()

	var out []storage.Row
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler colunas de %s: %w", table, err)
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("erro ao ler linha de %s: %w", table, err)
		}

		row := make(storage.Row, len(cols))
		for i, col := range cols {
			if col == "province_scope" {
				continue
			}
			row[col] = normalize(values[i])
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *Store) FetchByID(ctx context.Context, table, province, id string) (storage.Row, error) {
	rows, err := s.FetchAllWhere(ctx, table, province, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchAllWhere narrows FetchAll to a single id. Kept separate so FetchAll
// stays a plain scan.
func (s *Store) FetchAllWhere(ctx context.Context, table, province, id string) ([]storage.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE province_scope = ? AND id = ?", table), province, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler colunas de %s: %w", table, err)
	}

	var out []storage.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("erro ao ler linha de %s: %w", table, err)
		}
		row := make(storage.Row, len(cols))
		for i, col := range cols {
			if col == "province_scope" {
				continue
			}
			row[col] = normalize(values[i])
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, table, province string, row storage.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}

	cols, args := columnsAndArgs(row, province)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders),
		args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir em %s: %w", table, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, table, province, id string, row storage.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}

	var (
		sets []string
		args []any
	)
	for _, col := range sortedColumns(row) {
		if col == "id" {
			continue
		}
		if err := checkIdentifier(col); err != nil {
			return err
		}
		sets = append(sets, col+" = ?")
		args = append(args, row[col])
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, province)

	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND province_scope = ?", table, strings.Join(sets, ", ")),
		args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar %s: %w", table, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, table, province, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ? AND province_scope = ?", table), id, province)
	if err != nil {
		return fmt.Errorf("erro ao apagar de %s: %w", table, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func columnsAndArgs(row storage.Row, province string) ([]string, []any) {
	cols := sortedColumns(row)
	args := make([]any, 0, len(cols)+1)
	out := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		if checkIdentifier(col) != nil {
			continue
		}
		out = append(out, col)
		args = append(args, row[col])
	}
	out = append(out, "province_scope")
	args = append(args, province)
	return out, args
}

func sortedColumns(row storage.Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func checkTable(table string) error {
	if _, ok := storage.SpecForTable(table); !ok {
		return fmt.Errorf("%w: %s", storage.ErrUnknownTable, table)
	}
	return nil
}

func checkIdentifier(name string) error {
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("nome de coluna inválido: %q", name)
	}
	if name == "" {
		return fmt.Errorf("nome de coluna vazio")
	}
	return nil
}

// normalize converts driver values to the forms mappers expect.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return t
	}
}
