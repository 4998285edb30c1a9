package plist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalarKinds(t *testing.T) {
	obj, err := Parse([]byte(`{
		s = hello;
		q = "quoted string";
		i = 42;
		neg = -7;
		h = 0x1F;
		negh = -0x10;
		r = 3.5;
		exp = 1e3;
		t = YES;
		f = NO;
		d = <68656c6c6f>;
	}`))
	require.NoError(t, err)

	dict, ok := obj.(*Dictionary)
	require.True(t, ok)

	expect := map[string]Object{
		"s":    String("hello"),
		"q":    String("quoted string"),
		"i":    Integer(42),
		"neg":  Integer(-7),
		"h":    Integer(0x1F),
		"negh": Integer(-0x10),
		"r":    Real(3.5),
		"exp":  Real(1e3),
		"t":    Boolean(true),
		"f":    Boolean(false),
		"d":    Data("hello"),
	}
	for k, want := range expect {
		got, ok := dict.Get(k)
		require.Truef(t, ok, "missing key %q", k)
		assert.Truef(t, want.Equal(got), "%s: want %#v got %#v", k, want, got)
	}
}

func TestParseNestedContainers(t *testing.T) {
	obj, err := Parse([]byte(`{
		list = (1, 2, 3);
		nested = {a = (YES, NO);};
	}`))
	require.NoError(t, err)

	dict := obj.(*Dictionary)
	list, ok := dict.Get("list")
	require.True(t, ok)
	arr := list.(*Array)
	require.Equal(t, 3, arr.Len())
	assert.Equal(t, Integer(1), arr.At(0))
	assert.Equal(t, Integer(3), arr.At(2))

	nestedVal, ok := dict.Get("nested")
	require.True(t, ok)
	nested := nestedVal.(*Dictionary)
	aVal, ok := nested.Get("a")
	require.True(t, ok)
	aArr := aVal.(*Array)
	require.Equal(t, 2, aArr.Len())
	assert.Equal(t, Boolean(true), aArr.At(0))
}

func TestParseTopLevelArray(t *testing.T) {
	obj, err := Parse([]byte(`(1, 2, 3)`))
	require.NoError(t, err)
	arr, ok := obj.(*Array)
	require.True(t, ok)
	assert.Equal(t, 3, arr.Len())
}

func TestParseIsInvariantUnderCommentsAndWhitespace(t *testing.T) {
	plain := `{a=1;b=2;}`
	decorated := `
		{
			a = 1; // trailing comment
			/* a block comment */
			b = 2;
		}
	`
	plainObj, err := Parse([]byte(plain))
	require.NoError(t, err)
	decoratedObj, err := Parse([]byte(decorated))
	require.NoError(t, err)
	assert.True(t, plainObj.Equal(decoratedObj))
}

func TestParseDictionaryPreservesInsertionOrder(t *testing.T) {
	obj, err := Parse([]byte(`{z = 1; a = 2; m = 3;}`))
	require.NoError(t, err)
	dict := obj.(*Dictionary)
	assert.Equal(t, []string{"z", "a", "m"}, dict.Keys())
}

func TestParseDuplicateKeyLastWriteWinsAndWarns(t *testing.T) {
	var warned bool
	obj, err := Parse([]byte(`{a = 1; a = 2;}`), WithTrace(func(kind, message string, offset int) {
		if kind == "duplicate-key" {
			warned = true
		}
	}))
	require.NoError(t, err)
	dict := obj.(*Dictionary)
	v, ok := dict.Get("a")
	require.True(t, ok)
	assert.Equal(t, Integer(2), v)
	assert.True(t, warned)
}

func TestParseBooleanWordAsDictionaryKeyBecomesString(t *testing.T) {
	obj, err := Parse([]byte(`{YES = 1; NO = 2;}`))
	require.NoError(t, err)
	dict := obj.(*Dictionary)
	v, ok := dict.Get("YES")
	require.True(t, ok)
	assert.Equal(t, Integer(1), v)
	v2, ok := dict.Get("NO")
	require.True(t, ok)
	assert.Equal(t, Integer(2), v2)
}

func TestParseGNUStepTypedLiterals(t *testing.T) {
	obj, err := Parse([]byte(`{
		i = <*I-5>;
		r = <*R1.5>;
		b = <*BY>;
		d = <*D2024-01-02 03:04:05 +0000>;
	}`), WithStyle(GNUStepStyle))
	require.NoError(t, err)
	dict := obj.(*Dictionary)

	iv, _ := dict.Get("i")
	assert.Equal(t, Integer(-5), iv)

	rv, _ := dict.Get("r")
	assert.Equal(t, Real(1.5), rv)

	bv, _ := dict.Get("b")
	assert.Equal(t, Boolean(true), bv)

	_, ok := dict.Get("d")
	require.True(t, ok)
}

func TestParseFailureReportsOffset(t *testing.T) {
	_, err := Parse([]byte(`{a = 1 b = 2;}`))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Greater(t, perr.Offset, 0)
}

func TestParseFileWrapsIOErrors(t *testing.T) {
	_, err := ParseFile("/nonexistent/path/does/not/exist.plist")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrIO, perr.Kind)
}

func TestParseInvokesErrorReporterOnFailure(t *testing.T) {
	var reportedLine, reportedColumn int
	var reportedMessage string
	_, err := Parse([]byte("{a = 1\nb = 2;}"), WithErrorReporter(func(line, column int, message string) {
		reportedLine, reportedColumn, reportedMessage = line, column, message
	}))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)

	assert.Equal(t, 2, reportedLine, "the unseparated entry starts on the second line")
	assert.GreaterOrEqual(t, reportedColumn, 0)
	assert.Equal(t, perr.Message, reportedMessage)
}

func TestParseDoesNotInvokeErrorReporterOnSuccess(t *testing.T) {
	called := false
	_, err := Parse([]byte(`{a = 1;}`), WithErrorReporter(func(line, column int, message string) {
		called = true
	}))
	require.NoError(t, err)
	assert.False(t, called)
}

func TestParseFileReportsIOErrorsToo(t *testing.T) {
	var reportedMessage string
	_, err := ParseFile("/nonexistent/path/does/not/exist.plist", WithErrorReporter(func(line, column int, message string) {
		reportedMessage = message
	}))
	require.Error(t, err)
	assert.NotEmpty(t, reportedMessage)
}

func TestParseRealLiteralOverflowYieldsInf(t *testing.T) {
	obj, err := Parse([]byte(`{x = 1e400;}`))
	require.NoError(t, err)
	dict := obj.(*Dictionary)
	v, ok := dict.Get("x")
	require.True(t, ok)
	real, ok := v.(Real)
	require.True(t, ok)
	assert.True(t, math.IsInf(float64(real), 1))
}
