package maperr

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	for _, tc := range []struct {
		err *Error

		error string
		json  string
	}{
		{
			err:   Lex(WithMessage("unexpected dedent at line 4")),
			error: "lex error tag:malformed-indentation unexpected dedent at line 4",
			json:  `{"error-class":"lex","error-tag":"malformed-indentation","error-message":"unexpected dedent at line 4"}`,
		},
		{
			err:   Extraction("interfaces/interface/config/type", "Xyz1"),
			error: "extraction error tag:extraction-failure path:interfaces/interface/config/type key:Xyz1",
			json:  `{"error-class":"extraction","error-tag":"extraction-failure","error-path":"interfaces/interface/config/type","error-key":"Xyz1"}`,
		},
		{
			err:   MissingLeaf("interfaces/interface/config/name"),
			error: "validation error tag:missing-leaf path:interfaces/interface/config/name",
			json:  `{"error-class":"validation","error-tag":"missing-leaf","error-path":"interfaces/interface/config/name"}`,
		},
		{
			err:   BadValue("interfaces/interface/config/mtu", WithMessage("out of range")),
			error: "validation error tag:bad-value path:interfaces/interface/config/mtu out of range",
			json:  `{"error-class":"validation","error-tag":"bad-value","error-path":"interfaces/interface/config/mtu","error-message":"out of range"}`,
		},
		{
			err:   UnknownNode("interfaces/frobnicator"),
			error: "validation error tag:unknown-node path:interfaces/frobnicator",
			json:  `{"error-class":"validation","error-tag":"unknown-node","error-path":"interfaces/frobnicator"}`,
		},
		{
			err:   MustViolation("interfaces", WithMessage("interface MTU must be at least 68")),
			error: "validation error tag:must-violation path:interfaces interface MTU must be at least 68",
			json:  `{"error-class":"validation","error-tag":"must-violation","error-path":"interfaces","error-message":"interface MTU must be at least 68"}`,
		},
		{
			err:   KindMismatch("interfaces/interface", WithKey("Fa1"), WithMessage("want list, got leaf")),
			error: "validation error tag:kind-mismatch path:interfaces/interface key:Fa1 want list, got leaf",
			json:  `{"error-class":"validation","error-tag":"kind-mismatch","error-path":"interfaces/interface","error-key":"Fa1","error-message":"want list, got leaf"}`,
		},
	} {
		t.Run(tc.error, func(t *testing.T) {
			ck := assert.New(t)
			ck.Equal(tc.error, tc.err.Error())
			b, err := json.Marshal(tc.err)
			ck.NoError(err)
			ck.Equal(tc.json, string(b))
		})
	}
}

func TestAbsent(t *testing.T) {
	ck := assert.New(t)
	ck.True(IsAbsent(ErrAbsent))
	ck.True(IsAbsent(errors.Wrap(ErrAbsent, "leaf description")))
	ck.False(IsAbsent(Extraction("a/b", "k")))
	ck.False(IsAbsent(nil))
}

func TestIsError(t *testing.T) {
	ck := assert.New(t)
	orig := Extraction("a/b", "k", WithMessage("no rule"))
	wrapped := errors.Wrap(orig, "mapping")
	me, ok := IsError(wrapped)
	ck.True(ok)
	ck.Equal(orig, me)
	_, ok = IsError(errors.New("other"))
	ck.False(ok)
}
