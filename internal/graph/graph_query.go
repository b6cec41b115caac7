package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// AmbiguousTarget is a target term reached from more than one source.
type AmbiguousTarget struct {
	Target  string
	Sources []string
	Lines   []int
}

// AmbiguousTargets lists targets of glossaryPath with several distinct sources.
// Unlike the integrity checker it does not apply the section/key homonym exemption.
func (g *GlossaryGraph) AmbiguousTargets(ctx context.Context, glossaryPath string) ([]AmbiguousTarget, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Term)-[r:TRANSLATES_TO {glossary: $glossary}]->(t:Term)
		WITH t, collect(DISTINCT s.text) AS sources, collect(r.line) AS lines
		WHERE size(sources) > 1
		RETURN t.text AS target, sources, lines
		ORDER BY target
	`, map[string]any{"glossary": glossaryPath})
	if err != nil {
		return nil, fmt.Errorf("query ambiguous targets: %w", err)
	}

	var out []AmbiguousTarget
	for result.Next(ctx) {
		record := result.Record()
		target, _ := record.Get("target")
		sources, _ := record.Get("sources")
		lines, _ := record.Get("lines")

		at := AmbiguousTarget{Target: toString(target)}
		for _, s := range toSlice(sources) {
			at.Sources = append(at.Sources, toString(s))
		}
		for _, l := range toSlice(lines) {
			if n, ok := l.(int64); ok {
				at.Lines = append(at.Lines, int(n))
			}
		}
		out = append(out, at)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate ambiguous targets: %w", err)
	}

	return out, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
