package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeNotFound, "record not found")
	wrapped := fmt.Errorf("load player: %w", Wrap(CodeNotFound, "player missing", errors.New("sql: no rows")))

	if !errors.Is(wrapped, sentinel) {
		t.Fatal("expected wrapped error to match sentinel by code")
	}
	if errors.Is(wrapped, New(CodeStoreUnavailable, "store down")) {
		t.Fatal("expected code mismatch to not match")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeStoreUnavailable, "save player", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodePlayerEmptyID, codes.InvalidArgument},
		{CodeDiceInvalidBounds, codes.InvalidArgument},
		{CodeBattleDeadCombatants, codes.FailedPrecondition},
		{CodeInventoryNothingToSteal, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodeStoreUnavailable, codes.Unavailable},
		{CodeUnknown, codes.Internal},
		{Code("SOMETHING_ELSE"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("GRPCCode(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestToGRPCStatusAttachesErrorInfo(t *testing.T) {
	err := WithMetadata(CodeMapNoDestination, "no reachable map", map[string]string{"map": "Kindale"})

	st := status.Convert(err.ToGRPCStatus())
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", st.Code())
	}

	var info *errdetails.ErrorInfo
	for _, detail := range st.Details() {
		if ei, ok := detail.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}
	if info == nil {
		t.Fatal("expected ErrorInfo detail")
	}
	if info.Reason != string(CodeMapNoDestination) {
		t.Fatalf("expected reason %s, got %s", CodeMapNoDestination, info.Reason)
	}
	if info.Domain != Domain {
		t.Fatalf("expected domain %s, got %s", Domain, info.Domain)
	}
	if info.Metadata["map"] != "Kindale" {
		t.Fatalf("expected map metadata, got %v", info.Metadata)
	}
}
