package plist

// Option configures a Parse/ParseFile call. Grounded on options.go's
// functional-options shape (`Option func(optionReceiver) (bool,
// error)`), collapsed to the knobs this single-dialect core needs:
// dialect style, an optional trace callback (spec §9's replacement
// for the original's global debug macro), and an optional error
// reporter (spec §6/§7: every parse failure is reported through the
// callback in addition to being returned, mirroring
// ASCIIParser.cpp's `error(0, 0, context.error)` call on the failure
// path).
type Option func(*parserOptions)

type parserOptions struct {
	style         Style
	trace         func(kind, message string, offset int)
	errorReporter ErrorReporter
}

func newParserOptions(opts []Option) *parserOptions {
	o := &parserOptions{style: ASCIIStyle}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStyle selects the ASCII dialect variant. The default is
// ASCIIStyle.
func WithStyle(style Style) Option {
	return func(o *parserOptions) { o.style = style }
}

// WithTrace installs a callback invoked for non-fatal diagnostics. The
// only diagnostic emitted is the duplicate-dictionary-key warning
// (spec §7), with kind "duplicate-key"; state-machine transitions are
// not traced.
func WithTrace(fn func(kind, message string, offset int)) Option {
	return func(o *parserOptions) { o.trace = fn }
}

// WithErrorReporter installs a callback that Parse/ParseFile invoke
// with the failing line and column (derived from the byte offset via
// lineColumn) and message on every failure, in addition to returning
// the error as usual. Not called on success.
func WithErrorReporter(fn ErrorReporter) Option {
	return func(o *parserOptions) { o.errorReporter = fn }
}

func (o *parserOptions) tracef(kind, message string, offset int) {
	if o.trace != nil {
		o.trace(kind, message, offset)
	}
}

// reportError invokes the configured error reporter, if any, deriving
// line/column from data and err's offset.
func (o *parserOptions) reportError(data []byte, err error) {
	if o.errorReporter == nil {
		return
	}
	perr, ok := err.(*Error)
	if !ok {
		o.errorReporter(0, 0, err.Error())
		return
	}
	line, column := lineColumn(data, perr.Offset)
	o.errorReporter(line, column, perr.Message)
}
