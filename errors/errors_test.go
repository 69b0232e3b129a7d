package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

type anErrorType string

func (e *anErrorType) Error() string {
	return string(*e)
}

func TestE(t *testing.T) {
	wrappedErr := anErrorType("wrappedError")
	got := E(OpFilter, KUnknownColumn, &wrappedErr).(*Error)

	if got.Op != OpFilter {
		t.Errorf("TestE: got Op == %v, want Op == %v", got.Op, OpFilter)
	}
	if got.Kind != KUnknownColumn {
		t.Errorf("TestE: got Kind == %v, want Kind == %v", got.Kind, KUnknownColumn)
	}

	if diff := pretty.Compare(wrappedErr, got.Err); diff != "" {
		t.Errorf("TestE: internal error: -want/+got:\n%s", diff)
	}
}

func TestW(t *testing.T) {
	inner := E(OpIngest, KIO, io.EOF)
	outer := W(inner, ES(OpIngest, KBadFormat, "header row could not be read"))

	if !errors.Is(outer, io.EOF) {
		t.Errorf("TestW: errors.Is(outer, io.EOF): got false, want true")
	}

	var err = new(Error)
	if !errors.As(outer, &err) {
		t.Errorf("TestW: errors.As(outer, &Error{}): got false, want true")
	}
	if diff := pretty.Compare(outer, err); diff != "" {
		t.Errorf("TestW: errors.As(outer, &Error{}): -want/+got:\n%s", diff)
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		want Kind
	}{
		{desc: "plain error", err: io.EOF, want: KOther},
		{desc: "direct", err: ES(OpTable, KShapeMismatch, "bad shape"), want: KShapeMismatch},
		{
			desc: "wrapped reports the outer kind",
			err: W(
				ES(OpAggregate, KUnsupportedAggregation, "no such aggregate"),
				ES(OpPipeline, KCancelled, "stage 2 failed"),
			),
			want: KCancelled,
		},
	}

	for _, test := range tests {
		if got := GetKind(test.err); got != test.want {
			t.Errorf("Test(%s): got %v, want %v", test.desc, got, test.want)
		}
	}
}

func TestStringRendering(t *testing.T) {
	err := ES(OpSelect, KUnknownColumn, "column %q not found", "mass")
	want := `Op(OpSelect): Kind(KUnknownColumn): column "mass" not found`
	if err.Error() != want {
		t.Errorf("TestStringRendering: got %q, want %q", err.Error(), want)
	}
}
