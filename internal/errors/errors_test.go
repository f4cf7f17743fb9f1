package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "display not found",
			expected: "NOT_FOUND: display not found",
		},
		{
			name:     "out of range error",
			code:     errors.CodeOutOfRange,
			message:  "total 13 is outside [2, 12]",
			expected: "OUT_OF_RANGE: total 13 is outside [2, 12]",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestInvalidInput() {
	err := errors.InvalidInput("sides", "num_rolls")

	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.Equal("Please enter positive integers for all fields.", err.Message)
	s.Equal([]string{"sides", "num_rolls"}, err.Meta["fields"])
	s.True(errors.IsInvalidInput(err))
	s.True(errors.IsInvalidArgument(err))

	s.Nil(errors.InvalidInput().Meta)
}

func (s *ErrorsTestSuite) TestIsInvalidInputThroughWrap() {
	wrapped := errors.Wrap(errors.InvalidInput("sides"), "failed to roll")

	s.True(errors.IsInvalidInput(wrapped))
	s.False(errors.IsInvalidInput(errors.InvalidArgument("limit exceeded")))
	s.False(errors.IsInvalidInput(fmt.Errorf("plain")))
	s.False(errors.IsInvalidInput(nil))
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to save display")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to save display", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("display not found")
	wrapped := errors.Wrapf(baseErr, "viewer %s", "tty")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("viewer tty", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("missing").WithMeta("viewer_id", "tty")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "store unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("tty", wrapped.Meta["viewer_id"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.Is(errors.NotFound("a"), errors.NotFound("b")))
	s.False(errors.Is(errors.NotFound("a"), errors.Internal("a")))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFoundf("display %s not found", "d1").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))

	s.Equal("value", errors.GetMeta(wrapped)["key"])
	s.Nil(errors.GetMeta(fmt.Errorf("standard error")))

	s.Equal("display d1 not found", errors.GetMessage(err))
	s.Equal("wrapped", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeOutOfRange, http.StatusBadRequest},
		{errors.CodeCanceled, http.StatusRequestTimeout},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.InvalidInput("sides")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Equal(errors.InvalidInputMessage, st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsInvalidInput(back))
	s.Equal([]interface{}{"sides"}, errors.GetMeta(back)["fields"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPassThrough() {
	s.Nil(errors.ToGRPCError(nil))

	existing := status.Error(codes.NotFound, "gone")
	s.Equal(existing, errors.ToGRPCError(existing))

	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeOutOfRange, codes.OutOfRange},
		{errors.CodeCanceled, codes.Canceled},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
