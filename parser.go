package plist

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// gnuStepDateLayout is the layout GNUStep's <*D…> typed literal uses,
// carried from text_parser.go's parseGNUStepValue (textPlistTimeLayout)
// since spec.md's grammar names the typed literal but not its date
// format.
const gnuStepDateLayout = "2006-01-02 15:04:05 -0700"

type parseState int

const (
	statePList parseState = iota
	stateKeyValSeparator
	stateEntrySeparator
)

// containerFrame is an in-progress Array or Dictionary on the
// parser's context stack (spec §3's ParserContext).
type containerFrame struct {
	isDict        bool
	dict          *Dictionary
	array         *Array
	pendingKey    string
	hasPendingKey bool
}

// parser is spec §3's ParserContext paired with the Lexer it drives.
// Unlike textPlistParser's recursive descent over a byteReader, this
// is a flat loop over a container-frame stack, grounded directly on
// ASCIIParser.cpp's ASCIIParserParse state machine.
type parser struct {
	lexer *Lexer
	opts  *parserOptions
	stack []*containerFrame
	level int
	done  bool
	root  Object
}

// Parse consumes a complete ASCII plist buffer and returns its single
// top-level Object, or an Error. It does not mutate data. On failure,
// besides returning the error, it invokes the configured error
// reporter (WithErrorReporter) exactly once, per spec §6/§7.
func Parse(data []byte, opts ...Option) (obj Object, err error) {
	popts := newParserOptions(opts)
	p := &parser{lexer: NewLexer(data, popts.style), opts: popts}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			obj, err = nil, e
		}
		if err != nil {
			popts.reportError(data, err)
		}
	}()

	obj, err = p.run()
	return obj, err
}

// ParseFile reads path entirely into memory and parses it (spec §6:
// files are never streamed).
func ParseFile(path string, opts ...Option) (Object, error) {
	popts := newParserOptions(opts)
	data, ioErr := os.ReadFile(path)
	if ioErr != nil {
		e := &Error{Kind: ErrIO, Message: ioErr.Error(), Offset: 0}
		popts.reportError(data, e)
		return nil, e
	}
	return Parse(data, opts...)
}

func (p *parser) run() (Object, error) {
	state := statePList
	for {
		tok := p.lexer.Next()
		offset := p.lexer.TokenOffset()

		if tok < 0 {
			return nil, lexErrorToError(tok, offset)
		}
		if tok == TokenEOF {
			if p.done && len(p.stack) == 0 {
				return p.root, nil
			}
			return nil, newError(ErrPrematureEOF, offset, "encountered premature EOF")
		}
		if tok == TokenInlineComment || tok == TokenLongComment {
			continue
		}

		var next parseState
		var err error
		switch state {
		case statePList:
			next, err = p.handlePList(tok, offset)
		case stateKeyValSeparator:
			next, err = p.handleKeyValSeparator(tok, offset)
		case stateEntrySeparator:
			next, err = p.handleEntrySeparator(tok, offset)
		}
		if err != nil {
			return nil, err
		}
		state = next
	}
}

func (p *parser) currentFrame() *containerFrame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) expectingKey() bool {
	f := p.currentFrame()
	return f != nil && f.isDict && !f.hasPendingKey
}

func (p *parser) handlePList(tok Token, offset int) (parseState, error) {
	if p.done {
		return 0, newError(ErrTrailingToken, offset, "encountered token when finished")
	}

	switch tok {
	case TokenDictionaryStart:
		p.stack = append(p.stack, &containerFrame{isDict: true, dict: NewDictionary(8)})
		p.level++
		return statePList, nil
	case TokenArrayStart:
		p.stack = append(p.stack, &containerFrame{isDict: false, array: NewArray(8)})
		p.level++
		return statePList, nil
	case TokenDictionaryEnd:
		return p.closeContainer(true, offset)
	case TokenArrayEnd:
		return p.closeContainer(false, offset)
	default:
		obj, err := p.decodeLiteral(tok, offset)
		if err != nil {
			return 0, err
		}
		return p.store(obj, offset)
	}
}

func (p *parser) handleKeyValSeparator(tok Token, offset int) (parseState, error) {
	if tok != TokenKeyValSeparator {
		return 0, newError(ErrMissingKeyValSeparator, offset, "expected '=' after dictionary key")
	}
	return statePList, nil
}

func (p *parser) handleEntrySeparator(tok Token, offset int) (parseState, error) {
	switch tok {
	case Token(';'):
		f := p.currentFrame()
		if f == nil || !f.isDict {
			return 0, newError(ErrMissingEntrySeparator, offset, "expected ',' or ')'")
		}
		return statePList, nil
	case Token(','):
		f := p.currentFrame()
		if f == nil || f.isDict {
			return 0, newError(ErrMissingEntrySeparator, offset, "expected ';'")
		}
		return statePList, nil
	case TokenArrayEnd:
		f := p.currentFrame()
		if f == nil || f.isDict {
			return 0, newError(ErrMismatchedCloser, offset, "encountered ')' while inside a dictionary")
		}
		return p.closeContainer(false, offset)
	case TokenDictionaryEnd:
		f := p.currentFrame()
		if f == nil || !f.isDict {
			return 0, newError(ErrMismatchedCloser, offset, "encountered '}' while inside an array")
		}
		return 0, newError(ErrMissingEntrySeparator, offset, "missing ';' before '}'")
	default:
		return 0, newError(ErrMissingEntrySeparator, offset, "expected entry separator or array end")
	}
}

// closeContainer pops the top frame (which must match wantDict) and
// feeds the finished container back through store, exactly as a
// scalar value would be: the completed Array/Dictionary becomes the
// root, a dictionary value, or an array element depending on what the
// (now new) top of stack is.
func (p *parser) closeContainer(wantDict bool, offset int) (parseState, error) {
	f := p.currentFrame()
	if f == nil || f.isDict != wantDict {
		return 0, newError(ErrMismatchedCloser, offset, "mismatched closing bracket")
	}
	if f.isDict && f.hasPendingKey {
		return 0, newError(ErrMissingEntrySeparator, offset, "missing ';' before '}'")
	}

	var obj Object
	if f.isDict {
		obj = f.dict
	} else {
		obj = f.array
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.level--
	return p.store(obj, offset)
}

// store files obj as the root, a dictionary key, a dictionary value,
// or an array element, depending on the current frame — the single
// place spec §4.2's "value-storage rules" live, shared by scalar
// tokens and just-closed containers alike.
func (p *parser) store(obj Object, offset int) (parseState, error) {
	if len(p.stack) == 0 {
		p.root = obj
		p.done = true
		return statePList, nil
	}

	f := p.currentFrame()
	if f.isDict {
		if !f.hasPendingKey {
			s, ok := obj.(String)
			if !ok {
				return 0, newError(ErrInvalidDictionaryKey, offset, "dictionary key must be a string")
			}
			f.pendingKey = string(s)
			f.hasPendingKey = true
			return stateKeyValSeparator, nil
		}
		if existed := f.dict.Set(f.pendingKey, obj); existed {
			p.opts.tracef("duplicate-key", fmt.Sprintf("duplicate dictionary key %q", f.pendingKey), offset)
		}
		f.hasPendingKey = false
		return stateEntrySeparator, nil
	}

	f.array.Push(obj)
	return stateEntrySeparator, nil
}

// decodeLiteral turns a scalar token into its Object. When the
// current frame is a dictionary awaiting a key, every non-Data token
// is taken as its raw text and stored as a String — matching
// ASCIIParser.cpp, where the dictionary-key path converts whatever
// token it receives into a string rather than special-casing
// booleans or numbers, and only Data is rejected outright. This is
// how YES/NO used as a dictionary key ends up a String (spec.md's
// first Open Question).
func (p *parser) decodeLiteral(tok Token, offset int) (Object, error) {
	if p.expectingKey() {
		if tok == TokenData {
			return nil, newError(ErrInvalidDictionaryKey, offset, "data cannot be a dictionary key")
		}
		text, err := DecodeQuotedString(p.lexer.Literal())
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Offset = offset
			}
			return nil, err
		}
		return String(text), nil
	}

	switch tok {
	case TokenUnquotedString, TokenQuotedString:
		text, err := DecodeQuotedString(p.lexer.Literal())
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Offset = offset
			}
			return nil, err
		}
		return String(text), nil
	case TokenNumber:
		return p.decodeNumber(p.lexer.Literal(), offset)
	case TokenHexNumber:
		return p.decodeHexNumber(p.lexer.Literal(), offset)
	case TokenBoolTrue:
		return Boolean(true), nil
	case TokenBoolFalse:
		return Boolean(false), nil
	case TokenData:
		return p.decodeDataToken(p.lexer.Literal(), offset)
	default:
		return nil, newError(ErrUnexpectedToken, offset, "encountered unexpected token code")
	}
}

// decodeNumber classifies a Number literal as Real if it contains '.',
// 'e' or 'E', and Integer otherwise (spec §4.2), which is a slightly
// wider real-detection rule than ASCIIParser.cpp's `strchr(contents,
// '.')`-only check; spec.md states the wider rule explicitly, so it
// takes precedence over the reference here.
func (p *parser) decodeNumber(lit []byte, offset int) (Object, error) {
	s := string(lit)
	if strings.ContainsAny(s, ".eE") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// ParseFloat reports magnitude overflow as ErrRange while
			// still returning the rounded ±Inf value (atof() never
			// errors on overflow either); only a syntactically
			// malformed literal is a real error here.
			if isRangeErr(err) {
				return Real(v), nil
			}
			return nil, newError(ErrMalformedNumber, offset, "invalid real literal %q", s)
		}
		return Real(v), nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if isRangeErr(err) {
			return nil, newError(ErrIntegerOutOfRange, offset, "integer literal %q out of range", s)
		}
		return nil, newError(ErrMalformedNumber, offset, "invalid integer literal %q", s)
	}
	return Integer(v), nil
}

// decodeHexNumber parses a HexNumber literal, accepting a leading
// sign (spec.md's Open Question: "-0x10" is accepted, per the
// reference).
func (p *parser) decodeHexNumber(lit []byte, offset int) (Object, error) {
	s := string(lit)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	digits := s[2:] // strip 0x/0X

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if isRangeErr(err) {
			return nil, newError(ErrIntegerOutOfRange, offset, "hex integer literal %q out of range", lit)
		}
		return nil, newError(ErrMalformedNumber, offset, "invalid hex integer literal %q", lit)
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	if v > limit {
		return nil, newError(ErrIntegerOutOfRange, offset, "hex integer literal %q out of range", lit)
	}

	iv := int64(v)
	if neg {
		iv = -iv
	}
	return Integer(iv), nil
}

func (p *parser) decodeDataToken(lit []byte, offset int) (Object, error) {
	if p.opts.style == GNUStepStyle && len(lit) > 0 && lit[0] == '*' {
		return p.decodeGNUStepValue(lit, offset)
	}
	d, err := DecodeData(lit)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Offset = offset
			return nil, e
		}
		return nil, newError(ErrInvalidToken, offset, "%v", err)
	}
	return d, nil
}

// decodeGNUStepValue interprets a <*T…> typed literal, grounded on
// text_parser.go's parseGNUStepValue.
func (p *parser) decodeGNUStepValue(lit []byte, offset int) (Object, error) {
	if len(lit) < 3 {
		return nil, newError(ErrInvalidToken, offset, "invalid GNUStep extended value")
	}
	typ := lit[1]
	rest := string(lit[2:])

	switch typ {
	case 'I':
		v, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			if isRangeErr(err) {
				return nil, newError(ErrIntegerOutOfRange, offset, "GNUStep integer literal %q out of range", rest)
			}
			return nil, newError(ErrMalformedNumber, offset, "invalid GNUStep integer literal %q", rest)
		}
		return Integer(v), nil
	case 'R':
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, newError(ErrMalformedNumber, offset, "invalid GNUStep real literal %q", rest)
		}
		return Real(v), nil
	case 'B':
		return Boolean(strings.HasPrefix(rest, "Y")), nil
	case 'D':
		t, err := time.Parse(gnuStepDateLayout, rest)
		if err != nil {
			return nil, newError(ErrMalformedNumber, offset, "invalid GNUStep date literal %q", rest)
		}
		return Date(t.In(time.UTC)), nil
	default:
		return nil, newError(ErrInvalidToken, offset, "invalid GNUStep type %q", string(typ))
	}
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// lexErrorToError maps a negative Lexer token into the matching
// Error, grounded on ASCIIParserParse's token<0 dispatch in
// ASCIIParser.cpp.
func lexErrorToError(tok Token, offset int) *Error {
	switch tok {
	case TokenUnterminatedLongComment:
		return newError(ErrUnterminatedLongComment, offset, "")
	case TokenUnterminatedQuotedString:
		return newError(ErrUnterminatedQuotedString, offset, "")
	case TokenUnterminatedUnquotedString:
		return newError(ErrUnterminatedUnquotedString, offset, "")
	case TokenUnterminatedData:
		return newError(ErrUnterminatedData, offset, "")
	default:
		return newError(ErrInvalidToken, offset, "")
	}
}
