package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/stretchr/testify/require"
)

type role string

func TestCSV(t *testing.T) {
	require.Equal(t, []string{"ROLE_ADMIN", "ROLE_VIEWER"}, utils.SplitCSV("ROLE_ADMIN, ROLE_VIEWER,,"))
	require.Empty(t, utils.SplitCSV(""))
	require.Equal(t, "a,b", utils.JoinCSV([]role{"a", "b"}))
	require.Equal(t, "", utils.JoinCSV([]role{}))
}

func TestPointers(t *testing.T) {
	require.Equal(t, 0, utils.Value[int](nil))
	require.Equal(t, "x", utils.Value(utils.Ptr("x")))
	require.Equal(t, "-", utils.ValueOr[string](nil, "-"))
	require.Equal(t, "-", utils.ValueOr(utils.Ptr(""), "-"))
	require.Equal(t, "HR", utils.ValueOr(utils.Ptr("HR"), "-"))
	require.Equal(t, []string{"a"}, utils.ToStringSlice([]any{"a", 1, nil}))
}
