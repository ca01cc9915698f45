package server

import (
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/proto"
)

func TestRequestValidator_check(t *testing.T) {
	v, err := newRequestValidator()
	require.NoError(t, err)

	tests := []struct {
		name string
		msg  any
		want *errdetails.BadRequest
	}{
		{
			name: "valid request",
			msg:  &TranslateRequest{Text: "Hello", To: "es"},
		},
		{
			name: "missing target",
			msg:  &TranslateRequest{Text: "Hello"},
			want: &errdetails.BadRequest{FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: "to", Description: "to is a required field"},
			}},
		},
		{
			name: "too many targets",
			msg:  &MultiTranslateRequest{Text: "Hello", Targets: []string{"de", "es", "fr", "ja"}},
			want: &errdetails.BadRequest{FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: "targets", Description: "targets must contain at maximum 3 items"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connectErr := v.check(tt.msg)
			if tt.want == nil {
				assert.Nil(t, connectErr)
				return
			}
			require.NotNil(t, connectErr)
			assert.Equal(t, connect.CodeInvalidArgument, connectErr.Code())
			assert.True(t, proto.Equal(tt.want, badRequestDetail(t, connectErr)))
		})
	}
}

func TestInvalidArgument(t *testing.T) {
	connectErr := invalidArgument("from", "unknown language: Elvish")

	assert.Equal(t, connect.CodeInvalidArgument, connectErr.Code())
	assert.Equal(t, "unknown language: Elvish", connectErr.Message())
	want := &errdetails.BadRequest{FieldViolations: []*errdetails.BadRequest_FieldViolation{
		{Field: "from", Description: "unknown language: Elvish"},
	}}
	assert.True(t, proto.Equal(want, badRequestDetail(t, connectErr)))
}

func badRequestDetail(t *testing.T, connectErr *connect.Error) *errdetails.BadRequest {
	t.Helper()
	require.Len(t, connectErr.Details(), 1)
	value, err := connectErr.Details()[0].Value()
	require.NoError(t, err)
	badRequest, ok := value.(*errdetails.BadRequest)
	require.True(t, ok)
	return badRequest
}
