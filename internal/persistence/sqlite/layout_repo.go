package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docktree/docktree/internal/logging"
	"github.com/docktree/docktree/pkg/dock"
)

// LayoutInfo summarizes a stored layout without its document body.
type LayoutInfo struct {
	Name      string
	Panes     int
	UpdatedAt time.Time
}

// LayoutRepository stores named layout documents.
type LayoutRepository struct {
	db *sql.DB
}

// NewLayoutRepository creates a repository over an open connection.
func NewLayoutRepository(db *sql.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// Save upserts the document under name. The pane count is derived from the
// document's floating and referenced panels for listing purposes.
func (r *LayoutRepository) Save(ctx context.Context, name string, doc dock.Document) error {
	log := logging.FromContext(ctx)

	if name == "" {
		return errors.New("layout name cannot be empty")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid layout: %w", err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal layout document")
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin layout transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("layout rollback reported non-terminal error")
		}
	}()

	const upsert = `
INSERT INTO layouts (name, document, panes, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	document   = excluded.document,
	panes      = excluded.panes,
	updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, name, string(body), countPanes(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert layout %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit layout transaction: %w", err)
	}

	log.Debug().Str("name", name).Int("records", len(doc)).Msg("layout stored")
	return nil
}

// Get returns the document stored under name, or (nil, nil) when absent.
func (r *LayoutRepository) Get(ctx context.Context, name string) (dock.Document, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		"SELECT document FROM layouts WHERE name = ?", name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query layout %q: %w", name, err)
	}

	var doc dock.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("name", name).
			Msg("failed to unmarshal stored layout")
		return nil, err
	}
	return doc, nil
}

// List returns summaries of all stored layouts, newest first.
func (r *LayoutRepository) List(ctx context.Context) ([]LayoutInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, panes, updated_at FROM layouts ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []LayoutInfo
	for rows.Next() {
		var info LayoutInfo
		if err := rows.Scan(&info.Name, &info.Panes, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layout rows: %w", err)
	}
	return infos, nil
}

// Delete removes the layout stored under name. Deleting an absent layout is
// not an error.
func (r *LayoutRepository) Delete(ctx context.Context, name string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("name", name).Msg("deleting stored layout")

	if _, err := r.db.ExecContext(ctx, "DELETE FROM layouts WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	return nil
}

// countPanes counts the distinct panel references in a document: children
// of containers that are not themselves records, plus floating nodes.
func countPanes(doc dock.Document) int {
	seen := map[string]struct{}{}
	for _, rec := range doc {
		switch rec.Type {
		case dock.RecordSplitPane, dock.RecordTabPane, dock.RecordCollection:
			for _, ref := range rec.Children {
				if child, ok := doc[ref]; ok &&
					(child.Type == dock.RecordSplitPane || child.Type == dock.RecordTabPane) {
					continue
				}
				seen[ref] = struct{}{}
			}
		case dock.RecordFloatingNode:
			seen[rec.Name] = struct{}{}
		}
	}
	return len(seen)
}
