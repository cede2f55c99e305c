package scanner

import "strings"

// Lexical is the default Scanner. It walks the source once, skipping over
// comments and literals, and inspects every `require` identifier that is
// neither a property access nor a function declaration name.
//
// A method named require, as in `{ require(x) { ... } }`, is recognized by the
// body that follows its parameter list and is not treated as a call.
//
// Known limits: require calls inside template literal interpolations are not
// seen, and regular expression literals are recognized with the usual
// previous-token heuristic rather than a full grammar.
type Lexical struct{}

// NewLexical returns the comment and literal aware scanner.
func NewLexical() *Lexical {
	return &Lexical{}
}

func (*Lexical) Scan(src string) ([]string, error) {
	l := &lexer{src: src, seen: make(map[string]struct{}), specs: []string{}}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.specs, nil
}

// keywords after which a slash starts a regular expression, not a division.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true,
	"in": true, "instanceof": true, "new": true, "delete": true, "void": true,
	"throw": true, "yield": true, "await": true,
}

type lexer struct {
	src string
	pos int

	// prev is the last significant byte outside comments; 0 at the start.
	prev byte
	// before is the significant byte preceding prev.
	before byte
	// prevWord is the identifier that produced prev, if any.
	prevWord string

	specs []string
	seen  map[string]struct{}
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '/' && l.peek(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case c == '/' && l.regexAllowed():
			l.skipRegex()
			l.mark('/', "")
		case c == '\'' || c == '"':
			if _, err := l.readQuoted(); err != nil {
				return err
			}
			l.mark(c, "")
		case c == '`':
			if err := l.skipTemplate(); err != nil {
				return err
			}
			l.mark(c, "")
		case isIdentStart(c):
			start := l.pos
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			word := l.src[start:l.pos]
			if word == callee && !l.memberAccess() && l.prevWord != "function" {
				if err := l.call(start); err != nil {
					return err
				}
			}
			l.mark('a', word)
		default:
			l.pos++
			l.mark(c, "")
		}
	}
	return nil
}

// call inspects the text after a require identifier that starts at start.
// A bare reference such as `typeof require` is not a call and is ignored.
func (l *lexer) call(start int) error {
	l.skipSpace()
	if l.peek(0) != '(' {
		return nil
	}
	open := l.pos
	l.pos++
	l.skipSpace()

	switch l.peek(0) {
	case '\'', '"':
	case '`':
		return l.errorAt(start, "template literal specifiers are not supported")
	case ')':
		if l.methodDefinition(open) {
			return nil
		}
		return l.errorAt(start, "require call without a specifier")
	default:
		if l.methodDefinition(open) {
			return nil
		}
		return l.errorAt(start, "specifier must be a single quoted string literal")
	}

	spec, err := l.readQuoted()
	if err != nil {
		return err
	}
	l.skipSpace()
	switch l.peek(0) {
	case ')':
		l.pos++
	case ',':
		return l.errorAt(start, "require call with more than one argument")
	default:
		return l.errorAt(start, "specifier must be a single quoted string literal")
	}
	if spec == "" {
		return l.errorAt(start, "empty specifier")
	}
	l.specs = appendUnique(l.specs, l.seen, spec)
	return nil
}

func (l *lexer) mark(c byte, word string) {
	l.before = l.prev
	l.prev, l.prevWord = c, word
}

// memberAccess reports whether the identifier being read follows a property
// dot. A spread (`...require(x)`) ends in a dot too but is not an access.
func (l *lexer) memberAccess() bool {
	return l.prev == '.' && l.before != '.'
}

// methodDefinition reports whether the parameter list opening at open is
// followed by a function body. The read position is left unchanged.
func (l *lexer) methodDefinition(open int) bool {
	saved := l.pos
	defer func() { l.pos = saved }()

	l.pos = open
	depth := 0
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\'', '"':
			if _, err := l.readQuoted(); err != nil {
				return false
			}
			continue
		case '`':
			if err := l.skipTemplate(); err != nil {
				return false
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				l.skipSpace()
				return l.peek(0) == '{'
			}
		}
		l.pos++
	}
	return false
}

func (l *lexer) regexAllowed() bool {
	if l.prevWord != "" {
		return regexKeywords[l.prevWord]
	}
	switch l.prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) skipBlockComment() error {
	start := l.pos
	end := strings.Index(l.src[l.pos+2:], "*/")
	if end < 0 {
		return l.errorAt(start, "unterminated block comment")
	}
	l.pos += 2 + end + 2
	return nil
}

// readQuoted consumes a single or double quoted literal and returns its
// content with escapes reduced to the escaped character. A line break ends
// the literal early, matching how engines recover from the same mistake.
func (l *lexer) readQuoted() (string, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.src):
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
		case c == quote:
			l.pos++
			return b.String(), nil
		case c == '\n':
			return b.String(), nil
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return "", l.errorAt(start, "unterminated string literal")
}

func (l *lexer) skipTemplate() error {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '`':
			l.pos++
			return nil
		default:
			l.pos++
		}
	}
	return l.errorAt(start, "unterminated template literal")
}

func (l *lexer) skipRegex() {
	l.pos++
	inClass := false
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == '\\':
			l.pos += 2
			continue
		case c == '\n':
			return
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			l.pos++
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			return
		}
		l.pos++
	}
}

func (l *lexer) errorAt(offset int, reason string) error {
	line, col := 1, 1
	for i := 0; i < offset && i < len(l.src); i++ {
		if l.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Column: col, Reason: reason}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
