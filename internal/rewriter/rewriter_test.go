package rewriter

import (
	"testing"

	"unit-translator/internal/dictionary"
	"unit-translator/internal/glossary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGlossary = `
[core] = [核心]
[hiddenAction] = [隐藏行动]
speed = 速度
movementType = 移动类型
action = 动作
running = 奔跑
run = 跑
AI = 智能
LAND = 陆地
WATER = 水上
true = 是
`

func newRewriter(t *testing.T, dir dictionary.Direction) *Rewriter {
	t.Helper()
	entries := glossary.ParseString(testGlossary)
	require.NotEmpty(t, entries)
	return New(dictionary.Build(entries, dir))
}

func TestLineForward(t *testing.T) {
	rw := newRewriter(t, dictionary.Forward)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"section", "[core]", "[核心]"},
		{"section prefix fallback", "[hiddenAction_landDefense]", "[隐藏行动_landDefense]"},
		{"unknown section", "[turret_1]", "[turret_1]"},
		{"key with comment", "speed: 10 # base value", "速度: 10 # base value"},
		{"literal value", "movementType: LAND", "移动类型: 陆地"},
		{"comma list", "movementType: LAND,WATER", "移动类型: 陆地, 水上"},
		{"longest match in text", "action: running_fast", "动作: 奔跑_fast"},
		{"no match inside word", "action: AIRPORT", "动作: AIRPORT"},
		{"indentation kept", "  speed = 2", "  速度 = 2"},
		{"comment line", "# speed: 10", "# speed: 10"},
		{"prose", "free form text", "free form text"},
		{"literal needs whole value", "canFly: true story", "canFly: true story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := rw.Line(tt.in, NewCache())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineReverse(t *testing.T) {
	rw := newRewriter(t, dictionary.Reverse)

	tests := []struct {
		in   string
		want string
	}{
		{"[核心]", "[core]"},
		{"[隐藏行动_landDefense]", "[hiddenAction_landDefense]"},
		{"速度: 10 # base value", "speed: 10 # base value"},
		{"移动类型: 陆地, 水上", "movementType: LAND, WATER"},
		{"动作: 奔跑_fast", "action: running_fast"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, _ := rw.Line(tt.in, NewCache())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextKeepsLineEndingsAndCountsStats(t *testing.T) {
	rw := newRewriter(t, dictionary.Forward)
	in := "[core]\r\nspeed: 10\r\nmovementType: LAND,WATER\r\n# note\r\n"

	res := rw.Text(in, NewCache())

	assert.Equal(t, "[核心]\r\n速度: 10\r\n移动类型: 陆地, 水上\r\n# note\r\n", res.Text)
	assert.True(t, res.Changed())
	assert.Equal(t, 1, res.Stats.SectionsTranslated)
	assert.Equal(t, 2, res.Stats.KeysTranslated)
	assert.Equal(t, 2, res.Stats.LiteralsTranslated)
	assert.Equal(t, 0, res.Stats.TextTranslated)
	assert.Equal(t, 3, res.Stats.LinesChanged)
	assert.Len(t, res.Substitutions, 5)
}

func TestForwardIsIdempotent(t *testing.T) {
	rw := newRewriter(t, dictionary.Forward)
	in := "[core]\nspeed: 10 # base value\nmovementType: LAND, WATER\naction: running_fast\n"

	once := rw.Text(in, NewCache())
	twice := rw.Text(once.Text, NewCache())

	assert.Equal(t, once.Text, twice.Text)
	assert.False(t, twice.Changed())
}

func TestRoundTrip(t *testing.T) {
	fwd := newRewriter(t, dictionary.Forward)
	rev := newRewriter(t, dictionary.Reverse)
	in := "[core]\nspeed: 10 # base value\nmovementType: LAND, WATER\n\n[hiddenAction_landDefense]\naction: running_fast\n"

	there := fwd.Text(in, NewCache())
	back := rev.Text(there.Text, NewCache())

	assert.Equal(t, in, back.Text)
}

func TestValueCacheIsUsed(t *testing.T) {
	rw := newRewriter(t, dictionary.Forward)
	vc := NewCache()

	rw.Text("a: LAND\nb: LAND\nc: LAND\n", vc)

	hits, misses := vc.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestIdentityRewriter(t *testing.T) {
	rw := New(nil)
	in := "[core]\nspeed: LAND\n"

	res := rw.Text(in, nil)

	assert.Equal(t, in, res.Text)
	assert.False(t, res.Changed())
	assert.Equal(t, dictionary.Forward, rw.Direction())
}

func TestStatsMerge(t *testing.T) {
	a := Stats{FilesProcessed: 1, KeysTranslated: 2, LinesChanged: 2}
	b := Stats{FilesSkipped: 1, KeysTranslated: 1, TextTranslated: 3}

	got := a.Merge(b)

	assert.Equal(t, Stats{FilesProcessed: 1, FilesSkipped: 1, KeysTranslated: 3, TextTranslated: 3, LinesChanged: 2}, got)
	assert.Equal(t, 6, got.Substitutions())
}
