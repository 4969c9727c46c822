package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"

	_ "modernc.org/sqlite" // SQLite driver
)

// RunInfo describes the run a graph came from.
type RunInfo struct {
	RunID     string
	Seed      uint64
	Status    string
	Params    params.Params
	CreatedAt time.Time
}

// SQLiteExporter writes one run's graph into a SQLite database file.
type SQLiteExporter struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and initializes the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteExporter{db: db, path: path}, nil
}

// Path returns the database file path.
func (e *SQLiteExporter) Path() string {
	return e.path
}

// Export replaces the database content with info and g in one transaction.
func (e *SQLiteExporter) Export(ctx context.Context, info RunInfo, g *graph.Graph) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"edges", "users", "run"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	created := info.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	p := info.Params
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO run (run_id, seed, status, num_community_users, num_other_users,
			num_resources, num_tags, community_activity, other_activity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.RunID, strconv.FormatUint(info.Seed, 10), info.Status,
		p.NumCommunityUsers, p.NumOtherUsers, p.NumResources, p.NumTags,
		p.CommunityActivity, p.OtherActivity, created.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	userStmt, err := tx.PrepareContext(ctx, `INSERT INTO users (id, community, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare user insert: %w", err)
	}
	defer userStmt.Close()
	for i, u := range g.Nodes() {
		if _, err := userStmt.ExecContext(ctx, u.ID, u.Community, i); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (source, target, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, edge := range g.Edges() {
		if _, err := edgeStmt.ExecContext(ctx, edge.Source, edge.Target, edge.Weight); err != nil {
			return fmt.Errorf("failed to insert edge %s-%s: %w", edge.Source, edge.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}

// Load reads back the exported run and graph.
func (e *SQLiteExporter) Load(ctx context.Context) (*RunInfo, *graph.Graph, error) {
	var (
		info    RunInfo
		seed    string
		created string
		p       params.Params
	)
	err := e.db.QueryRowContext(ctx, `
		SELECT run_id, seed, status, num_community_users, num_other_users,
			num_resources, num_tags, community_activity, other_activity, created_at
		FROM run`).Scan(&info.RunID, &seed, &info.Status,
		&p.NumCommunityUsers, &p.NumOtherUsers, &p.NumResources, &p.NumTags,
		&p.CommunityActivity, &p.OtherActivity, &created)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("no run exported in %s", e.path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}
	info.Params = p
	if info.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, nil, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	if info.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, nil, fmt.Errorf("invalid created_at %q: %w", created, err)
	}

	rows, err := e.db.QueryContext(ctx, `SELECT id, community FROM users ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query users: %w", err)
	}
	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Community); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	rows.Close() // Close before the next query; the pool has a single connection.
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read users: %w", err)
	}

	g := graph.New(users)
	edgeRows, err := e.db.QueryContext(ctx, `SELECT source, target, weight FROM edges`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var source, target string
		var weight int
		if err := edgeRows.Scan(&source, &target, &weight); err != nil {
			return nil, nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		for range weight {
			if err := g.Increment(source, target); err != nil {
				return nil, nil, fmt.Errorf("invalid edge %s-%s: %w", source, target, err)
			}
		}
	}
	if err := edgeRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read edges: %w", err)
	}
	return &info, g, nil
}

// Close closes the database.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}
