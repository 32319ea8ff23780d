// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// QueryOptions holds parameters for corpus queries. Filters combine with
// AND semantics.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over sentence text.
	Query string

	// Relation filters by relation label.
	Relation types.Relation

	// SubjType and ObjType filter by entity type.
	SubjType types.EntityType
	ObjType  types.EntityType

	// Partition filters by corpus split.
	Partition types.Partition

	// DocID filters by source document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Relation == "" && q.SubjType == "" &&
		q.ObjType == "" && q.Partition == "" && q.DocID == ""
}

// QueryResult is one matching example, summarized for display.
type QueryResult struct {
	ID         string           `json:"id" yaml:"id"`
	DocID      string           `json:"docid" yaml:"docid"`
	Relation   types.Relation   `json:"relation" yaml:"relation"`
	Partition  types.Partition  `json:"partition,omitempty" yaml:"partition,omitempty"`
	Sentence   string           `json:"sentence" yaml:"sentence"`
	SubjText   string           `json:"subj_text" yaml:"subj_text"`
	SubjType   types.EntityType `json:"subj_type" yaml:"subj_type"`
	ObjText    string           `json:"obj_text" yaml:"obj_text"`
	ObjType    types.EntityType `json:"obj_type" yaml:"obj_type"`
	TokenCount int              `json:"token_count" yaml:"token_count"`
}

// Retrieve queries the corpus with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by partition and example ID.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT e.id, e.docid, e.relation, e.part, e.sentence,
				e.subj_text, e.subj_type, e.obj_text, e.obj_type, e.token_count
			FROM examples_fts
			JOIN examples e ON e.rowid = examples_fts.rowid
			WHERE examples_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT e.id, e.docid, e.relation, e.part, e.sentence,
				e.subj_text, e.subj_type, e.obj_text, e.obj_type, e.token_count
			FROM examples e
			WHERE 1=1`)
	}

	if opts.Relation != "" {
		qb.WriteString(` AND e.relation = ?`)
		args = append(args, string(opts.Relation))
	}
	if opts.SubjType != "" {
		qb.WriteString(` AND e.subj_type = ?`)
		args = append(args, string(opts.SubjType))
	}
	if opts.ObjType != "" {
		qb.WriteString(` AND e.obj_type = ?`)
		args = append(args, string(opts.ObjType))
	}
	if opts.Partition != "" {
		qb.WriteString(` AND e.part = ?`)
		args = append(args, string(opts.Partition))
	}
	if opts.DocID != "" {
		qb.WriteString(` AND e.docid = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY examples_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY e.part, e.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr   QueryResult
			part sql.NullString
		)
		if err := rows.Scan(
			&qr.ID, &qr.DocID, &qr.Relation, &part, &qr.Sentence,
			&qr.SubjText, &qr.SubjType, &qr.ObjText, &qr.ObjType, &qr.TokenCount,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if part.Valid {
			qr.Partition = types.Partition(part.String)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}

// Get loads the full stored example with all token annotations.
func (s *Store) Get(ctx context.Context, id string) (*types.Example, error) {
	var (
		e          types.Example
		part       sql.NullString
		tokensJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, docid, relation, part,
			subj_type, subj_start, subj_end,
			obj_type, obj_start, obj_end, tokens
		 FROM examples WHERE id = ?`, id,
	).Scan(
		&e.ID, &e.DocID, &e.Relation, &part,
		&e.SubjType, &e.Subj.Start, &e.Subj.End,
		&e.ObjType, &e.Obj.Start, &e.Obj.End, &tokensJSON,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("example %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up example: %w", err)
	}
	if part.Valid {
		e.Partition = types.Partition(part.String)
	}
	if err := json.Unmarshal([]byte(tokensJSON), &e.Tokens); err != nil {
		return nil, fmt.Errorf("decoding tokens for %s: %w", id, err)
	}
	return &e, nil
}

// Trace renders the stored example back into its tabular textual form.
func (s *Store) Trace(ctx context.Context, id string) (string, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := conll.Write(&b, e); err != nil {
		return "", fmt.Errorf("rendering example %s: %w", id, err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
