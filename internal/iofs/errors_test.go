package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		txt  string
	}{
		{"create dir", CreateDirError("/test/dir", orig),
			errcode.CreateDirError, "cannot create directory"},
		{"copy file", CopyFileError("/test/config.yaml", orig),
			errcode.CopyFileError, "cannot copy file"},
		{"read file", ReadFileError("/test/config.yaml", orig),
			errcode.ReadFileError, "cannot read"},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.ErrorAs(t, v.err, &gnErr, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		require.Len(t, gnErr.Vars, 1, v.msg)
		assert.Contains(t, gnErr.Msg, "%s", v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
		assert.Contains(t, gnErr.Err.Error(), v.txt, v.msg)
	}
}
