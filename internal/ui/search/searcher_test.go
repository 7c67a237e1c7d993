package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lines = []string{
	"STEP 1/4: FROM docker.io/library/alpine:3.20",
	"STEP 2/4: RUN apk add --no-cache curl",
	"COMMIT localhost/djf/web",
	"STEP 1/2: FROM scratch",
}

func TestSearchIndexesMatchesPerLine(t *testing.T) {
	s := New()
	require.NoError(t, s.Search(lines, `STEP \d`))

	assert.Equal(t, 3, s.MatchCount())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Len(t, s.MatchesOnLine(0), 1)
	assert.Empty(t, s.MatchesOnLine(2))
	assert.True(t, s.IsCurrentMatchLine(0))
}

func TestSearchInvalidPatternKeepsError(t *testing.T) {
	s := New()
	require.Error(t, s.Search(lines, `[`))
	assert.Error(t, s.Err())
	assert.False(t, s.Active())
	assert.Zero(t, s.MatchCount())
}

func TestNextPrevWrapAround(t *testing.T) {
	s := New()
	require.NoError(t, s.Search(lines, "STEP"))

	assert.Equal(t, 1, s.Next().Line)
	assert.Equal(t, 3, s.Next().Line)
	assert.Equal(t, 0, s.Next().Line) // 环回
	assert.Equal(t, 3, s.Prev().Line) // 反向环回
}

func TestSeekDirectional(t *testing.T) {
	s := New()
	require.NoError(t, s.Search(lines, "STEP"))

	assert.Equal(t, 3, s.Seek(2, false).Line)
	assert.Equal(t, 1, s.Seek(2, true).Line)
	// 起点越过末尾命中时环回到第一个
	assert.Equal(t, 0, s.Seek(5, false).Line)
}

func TestRescanKeepsCurrentMatch(t *testing.T) {
	s := New()
	require.NoError(t, s.Search(lines, "STEP"))
	s.Next() // 行 1

	grown := append(append([]string{"new head line"}, lines...), "STEP 9/9: tail")
	s.Rescan(grown)

	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, 2, cur.Line) // 原行 1 整体下移一行
	assert.Equal(t, 4, s.MatchCount())
}

func TestNormalizeLine(t *testing.T) {
	assert.Equal(t, "done 100%", NormalizeLine("done 25%\rdone 50%\rdone 100%"))
	assert.Equal(t, "done 50%", NormalizeLine("done 50%\r"))
	assert.Equal(t, "a    b", NormalizeLine("a\tb"))
	assert.Equal(t, "plain", NormalizeLine("plain"))
}
