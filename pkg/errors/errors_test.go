package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/pairsync/pairsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestConflictError(t *testing.T) {
	t.Run("single key", func(t *testing.T) {
		err := pkgerrors.NewConflictError("", []pkgerrors.KeyConflict{
			{Key: "displayname", SideA: "abc", SideB: "xyz"},
		})
		assert.Equal(t, "conflicting keys: displayname", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrConflict))
		assert.True(t, pkgerrors.IsConflict(err))
	})

	t.Run("with pair name", func(t *testing.T) {
		err := pkgerrors.NewConflictError("my_pair", []pkgerrors.KeyConflict{
			{Key: "displayname"},
			{Key: "color"},
		})
		assert.Equal(t, "conflicting keys for my_pair: displayname, color", err.Error())
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		base := pkgerrors.NewConflictError("", []pkgerrors.KeyConflict{{Key: "color"}})
		wrapped := errors.Join(errors.New("sync failed"), base)

		var conflict *pkgerrors.ConflictError
		require.ErrorAs(t, wrapped, &conflict)
		assert.Equal(t, "color", conflict.Conflicts[0].Key)
		assert.True(t, pkgerrors.IsConflict(wrapped))
	})
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("pair", "my_pair")
	assert.Equal(t, `pair "my_pair" not found`, err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("storage", "bad name", "only letters, digits and underscores are allowed in storage names")
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "validation failed for storage")
}

func TestStorageError(t *testing.T) {
	base := errors.New("connection refused")
	err := pkgerrors.NewStorageError("side_a", "get", "displayname", base)

	assert.Equal(t, `storage side_a: failed to get "displayname": connection refused`, err.Error())
	assert.ErrorIs(t, err, base)
}

func TestCommandErrorFormat(t *testing.T) {
	t.Run("no problems", func(t *testing.T) {
		err := pkgerrors.NewCommandError("invalid configuration")
		assert.Equal(t, "invalid configuration", err.Format())
	})

	t.Run("one problem", func(t *testing.T) {
		err := pkgerrors.NewCommandError("invalid configuration", "general.status_path is required")
		assert.Equal(t, "invalid configuration: general.status_path is required", err.Format())
	})

	t.Run("many problems", func(t *testing.T) {
		err := pkgerrors.NewCommandError("invalid configuration",
			"pair p side a references unknown storage x",
			"pair p side b references unknown storage y",
		)
		want := "invalid configuration:\n" +
			"  - pair p side a references unknown storage x\n" +
			"  - pair p side b references unknown storage y"
		assert.Equal(t, want, err.Format())
		assert.Equal(t, want, err.Error())
	})
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "/tmp/x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "status.yaml", nil))
	assert.NoError(t, pkgerrors.WrapConfig("pairs", nil))

	base := errors.New("boom")
	err := pkgerrors.WrapIO("write", "/tmp/x", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, base)

	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Operation)
	assert.Equal(t, "/tmp/x", ioErr.Path)
}
