package compiler

import (
	"testing"

	"github.com/specialistvlad/cargogo/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []signal.Signal
}

func (r *recorder) handle(s signal.Signal) { r.got = append(r.got, s) }

func (r *recorder) names() []signal.Name {
	out := []signal.Name{}
	for _, s := range r.got {
		out = append(out, s.Name)
	}
	return out
}

func TestCache_ReusesProgramForSameText(t *testing.T) {
	bus := signal.NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.handle)
	cache := NewCache(bus)

	first, err := cache.Parse("DRIVE\nTURN LEFT")
	require.NoError(t, err)
	second, err := cache.Parse("  drive\nturn left  ")
	require.NoError(t, err)

	require.Len(t, second, 2)
	assert.Same(t, first[0], second[0], "unchanged text must return the cached program")
	assert.Equal(t, []signal.Name{signal.ProgramParsed}, rec.names())
	assert.Equal(t, 2, rec.got[0].Count)
}

func TestCache_ReparsesChangedText(t *testing.T) {
	cache := NewCache(nil)

	first, err := cache.Parse("DRIVE")
	require.NoError(t, err)
	second, err := cache.Parse("DRIVE\nDRIVE")
	require.NoError(t, err)

	assert.NotSame(t, first[0], second[0])
	assert.Len(t, second, 2)
}

func TestCache_EmptyProgram(t *testing.T) {
	bus := signal.NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.handle)
	cache := NewCache(bus)

	program, err := cache.Parse("   ")
	require.NoError(t, err)
	assert.Empty(t, program)

	_, err = cache.Parse("")
	require.NoError(t, err)

	assert.Equal(t, []signal.Name{signal.ProgramParsed, signal.ProgramEmpty, signal.ProgramEmpty}, rec.names())
}

func TestCache_ParseErrorInvalidates(t *testing.T) {
	bus := signal.NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.handle)
	cache := NewCache(bus)

	_, err := cache.Parse("DRIVE")
	require.NoError(t, err)

	_, err = cache.Parse("DRIVE\nFLY")
	require.Error(t, err)

	_, ok := cache.Program()
	assert.False(t, ok, "a failed parse clears the cache")

	last := rec.got[len(rec.got)-1]
	assert.Equal(t, signal.ParseError, last.Name)
	assert.Equal(t, 2, last.Line)
	assert.Equal(t, "FLY", last.Text)
	assert.Error(t, last.Err)

	_, err = cache.Parse("DRIVE")
	require.NoError(t, err)
	assert.Equal(t, signal.ProgramParsed, rec.got[len(rec.got)-1].Name, "the same text parses fresh after a failure")
}
