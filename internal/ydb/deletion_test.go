package ydb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// YQL отклоняет DECLARE после первого DML-оператора, поэтому проверяем
// порядок блоков в собранном запросе.
func assertDeclaresPrecedeDML(t *testing.T, query string) {
	t.Helper()

	sawDML := false
	for _, stmt := range strings.Split(query, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if strings.HasPrefix(stmt, "DECLARE") {
			require.False(t, sawDML, "DECLARE after DML: %s", stmt)
			continue
		}
		sawDML = true
	}
	require.True(t, sawDML, "query has no DML statements")
}

func TestResolveDeletionQueryWithoutSoftDelete(t *testing.T) {
	query := resolveDeletionQuery(false)

	assertDeclaresPrecedeDML(t, query)
	assert.NotContains(t, query, "$video_id")
	assert.NotContains(t, query, "UPDATE videos")
	assert.Contains(t, query, "UPDATE video_deletion_requests")
	assert.Contains(t, query, "REPLACE INTO admin_action_logs")
}

func TestResolveDeletionQuerySoftDeleteKeepsDeclaresFirst(t *testing.T) {
	query := resolveDeletionQuery(true)

	assertDeclaresPrecedeDML(t, query)
	assert.Contains(t, query, "DECLARE $video_id AS Text;")
	assert.Contains(t, query, "UPDATE videos")
	assert.Contains(t, query, "SET is_active = false")
}
