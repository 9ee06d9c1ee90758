// Package postgres is the optional server-mode row store: when an instance
// shares its data on the network and DATABASE_URI is set, durable rows live
// in Postgres instead of the embedded SQLite file. The contract is the same
// storage.RowStore either way.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"folharh/internal/app/server/config"
	"folharh/internal/infrastructure/migration"
	"folharh/internal/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(cfg *config.Config) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) FetchAll(ctx context.Context, table, province string) ([]storage.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE province_scope = $1", table), province)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", table, err)
	}
	defer rows.Close()

	return collect(rows, table)
}

func (s *Store) FetchByID(ctx context.Context, table, province, id string) (storage.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE province_scope = $1 AND id = $2", table), province, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", table, err)
	}
	defer rows.Close()

	out, err := collect(rows, table)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (s *Store) Insert(ctx context.Context, table, province string, row storage.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}

	cols := sortedColumns(row)
	names := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		if checkIdentifier(col) != nil {
			continue
		}
		names = append(names, col)
		args = append(args, row[col])
	}
	names = append(names, "province_scope")
	args = append(args, province)

	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(names, ", "), strings.Join(placeholders, ", ")),
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
		if col == "id" || checkIdentifier(col) != nil {
			continue
		}
		args = append(args, row[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, province)

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND province_scope = $%d",
			table, strings.Join(sets, ", "), len(args)-1, len(args)),
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

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND province_scope = $2", table), id, province)
	if err != nil {
		return fmt.Errorf("erro ao apagar de %s: %w", table, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func collect(rows pgx.Rows, table string) ([]storage.Row, error) {
	fields := rows.FieldDescriptions()

	var out []storage.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha de %s: %w", table, err)
		}
		row := make(storage.Row, len(fields))
		for i, fd := range fields {
			if fd.Name == "province_scope" {
				continue
			}
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
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
	if name == "" {
		return errors.New("nome de coluna vazio")
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("nome de coluna inválido: %q", name)
	}
	return nil
}
