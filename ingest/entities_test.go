package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanEntitiesDeduplicatesInOrder(t *testing.T) {
	t.Parallel()

	pool := ScanEntities([]string{
		"first c@x.com",
		"a@x.com",
		"d@x.com a@x.com",
	})

	assert.Equal(t, []string{"c@x.com", "a@x.com", "d@x.com"}, pool.Emails.Items())
}

func TestScanEntitiesProgramCodesAndNames(t *testing.T) {
	t.Parallel()

	pool := ScanEntities([]string{"101A,Alice Smith,alice@x.com"})

	assert.Equal(t, []string{"101A"}, pool.ProgramCodes.Items())
	assert.Equal(t, []string{"Alice Smith"}, pool.TeacherNames.Items())
	assert.Equal(t, []string{"alice@x.com"}, pool.Emails.Items())
}

func TestScanEntitiesProgrammeLines(t *testing.T) {
	t.Parallel()

	pool := ScanEntities([]string{"Bachelor of Arts,BA,x@y.com"})

	assert.Equal(t, []string{"Bachelor of Arts"}, pool.ProgramCodes.Items())
}

func TestScanEntitiesRejectsNonNames(t *testing.T) {
	t.Parallel()

	pool := ScanEntities([]string{"Sl. No,Bob,Programme Name,Email List,R2D2 Unit,Class Section,Sita Devi,Class Wise/"})

	assert.Equal(t, []string{"Sita Devi"}, pool.TeacherNames.Items())
}

func TestPoolDraw(t *testing.T) {
	t.Parallel()

	pool := newPool()
	pool.add("a")
	pool.add("b")
	pool.add("a")
	pool.add("c")
	require.Equal(t, 3, pool.Len())

	got, ok := pool.Draw("a")
	require.True(t, ok)
	assert.Equal(t, "b", got)

	got, ok = pool.Draw()
	require.True(t, ok)
	assert.Equal(t, "c", got)

	_, ok = pool.Draw()
	assert.False(t, ok)
}

func TestPoolDrawSingleMemberReused(t *testing.T) {
	t.Parallel()

	pool := newPool()
	pool.add("only@x.com")

	for i := 0; i < 3; i++ {
		got, ok := pool.Draw()
		require.True(t, ok)
		assert.Equal(t, "only@x.com", got)
	}

	_, ok := newPool().Draw()
	assert.False(t, ok)
}
