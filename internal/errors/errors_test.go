package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := NotFound("result missing")
	assert.Equal(t, "result missing", err.Error())

	wrapped := Wrap(stderrors.New("dial tcp: refused"), "failed to save record")
	assert.Equal(t, "failed to save record: dial tcp: refused", wrapped.Error())
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := Configurationf("finish count %d exceeds racers", 5)
	outer := Wrap(inner, "building race")

	assert.True(t, IsConfiguration(outer))
	assert.ErrorIs(t, outer, inner)
}

func TestWrap_UnknownForForeignErrors(t *testing.T) {
	outer := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeUnknown, outer.Code)
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestWithMeta(t *testing.T) {
	err := Invariant("policy returned option out of range").
		WithMeta("race_id", "r-1").
		WithMeta("turn", 12)

	require.NotNil(t, err.Meta)
	assert.Equal(t, "r-1", err.Meta["race_id"])
	assert.Equal(t, 12, err.Meta["turn"])
	assert.True(t, IsInvariant(err))
}

func TestWrap_CopiesMeta(t *testing.T) {
	inner := Invariant("bad hook").WithMeta("racer", 2)
	outer := Wrap(inner, "turn aborted")

	outer.WithMeta("racer", 3)
	assert.Equal(t, 2, inner.Meta["racer"])
	assert.Equal(t, 3, outer.Meta["racer"])
}

func TestIs_ChecksCodes(t *testing.T) {
	assert.True(t, IsInvalidArgument(InvalidArgument("nope")))
	assert.True(t, IsNotFound(NotFoundf("id %s", "x")))
	assert.False(t, IsNotFound(Internal("oops")))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}
