package repository

import (
	"strings"
	"testing"

	"wordscramble/internal/database"
)

// The round statements must bind every boolean column as a parameter.
// Postgres type-checks a literal 0 or 1 as integer against BOOLEAN and
// rejects the statement, so flags can never ride along as literals.
func TestRoundStatementsBindBooleans(t *testing.T) {
	pg := database.NewPostgresDialect()

	t.Run("create round", func(t *testing.T) {
		if got := strings.Count(createRoundQuery, "?"); got != 7 {
			t.Errorf("createRoundQuery has %d placeholders, want 7 (one per column)", got)
		}
		rewritten := pg.RewriteQuery(createRoundQuery)
		if !strings.Contains(rewritten, "$7") {
			t.Errorf("postgres rewrite = %q, want placeholders through $7", rewritten)
		}
		values := rewritten[strings.Index(rewritten, "VALUES"):]
		for _, literal := range []string{"0", "1"} {
			if strings.Contains(values, ", "+literal+",") || strings.Contains(values, "("+literal+",") {
				t.Errorf("postgres rewrite carries literal %s in VALUES: %q", literal, values)
			}
		}
	})

	t.Run("mark hint used", func(t *testing.T) {
		if strings.Contains(markHintUsedQuery, "hint_used = 1") {
			t.Errorf("markHintUsedQuery sets an integer literal: %q", markHintUsedQuery)
		}
		got := pg.RewriteQuery(markHintUsedQuery)
		want := "UPDATE rounds SET hint_used = $1 WHERE id = $2"
		if got != want {
			t.Errorf("postgres rewrite = %q, want %q", got, want)
		}
	})
}
