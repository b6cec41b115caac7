package graph

import (
	"context"
	"fmt"

	"unit-translator/internal/glossary"
	"unit-translator/internal/worker"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Term sides stored on :Term nodes.
const (
	SideSource = "source"
	SideTarget = "target"
)

// GlossaryGraph mirrors a glossary into Neo4j as
// (:Term {side:"source"})-[:TRANSLATES_TO {role, line}]->(:Term {side:"target"}).
type GlossaryGraph struct {
	driver neo4j.DriverWithContext
}

// NewGlossaryGraph creates a graph writer/reader over driver.
func NewGlossaryGraph(driver neo4j.DriverWithContext) *GlossaryGraph {
	return &GlossaryGraph{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (g *GlossaryGraph) EnsureSchema(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT term_identity IF NOT EXISTS FOR (t:Term) REQUIRE (t.side, t.text) IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Sync replaces the edges previously stored for glossaryPath with entries.
// It returns the number of entries written.
func (g *GlossaryGraph) Sync(ctx context.Context, glossaryPath string, entries []glossary.Entry, batchSize int) (int, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `
		MATCH (:Term)-[r:TRANSLATES_TO {glossary: $glossary}]->(:Term)
		DELETE r
	`, map[string]any{"glossary": glossaryPath}); err != nil {
		return 0, fmt.Errorf("clear glossary edges: %w", err)
	}

	written := 0
	for _, chunk := range worker.Batch(entries, batchSize) {
		_, err := session.Run(ctx, `
			UNWIND $rows AS row
			MERGE (s:Term {side: "source", text: row.source})
			MERGE (t:Term {side: "target", text: row.target})
			MERGE (s)-[r:TRANSLATES_TO {glossary: $glossary, line: row.line}]->(t)
			SET r.role = row.role
		`, map[string]any{
			"glossary": glossaryPath,
			"rows":     entryRows(chunk),
		})
		if err != nil {
			return written, fmt.Errorf("upsert glossary entries: %w", err)
		}
		written += len(chunk)
	}

	log.Info().Str("glossary", glossaryPath).Int("entries", written).Msg("Synced glossary graph")
	return written, nil
}

// entryRows converts entries into UNWIND parameters.
func entryRows(entries []glossary.Entry) []map[string]any {
	rows := make([]map[string]any, len(entries))
	for i, e := range entries {
		rows[i] = map[string]any{
			"source": e.Source,
			"target": e.Target,
			"role":   e.Role.String(),
			"line":   int64(e.Line),
		}
	}
	return rows
}
