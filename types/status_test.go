package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, TaskStatus{Code: StatusCodeOK, Message: "running"}.Validate())
	require.NoError(t, TaskStatus{Code: StatusCodeError}.Validate())
	require.ErrorIs(t, TaskStatus{Code: StatusCodeComplete}.Validate(), ErrStatusMessageRequired)
}

func TestTaskStatusEqual(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name string
		a, b TaskStatus
		want bool
	}{
		{
			name: "identical code and message",
			a:    TaskStatus{Code: StatusCodeOK, Message: "ok", Timestamp: now},
			b:    TaskStatus{Code: StatusCodeOK, Message: "ok", Timestamp: now.Add(time.Minute)},
			want: true,
		},
		{
			name: "same message different code is not equal",
			a:    TaskStatus{Code: StatusCodeOK, Message: "x"},
			b:    TaskStatus{Code: StatusCodeError, Message: "x"},
			want: false,
		},
		{
			name: "same code different message is not equal",
			a:    TaskStatus{Code: StatusCodeOK, Message: "x"},
			b:    TaskStatus{Code: StatusCodeOK, Message: "y"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}
