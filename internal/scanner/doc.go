// Package scanner extracts dependency specifiers from JavaScript source text.
//
// A specifier is the single string literal passed to a require call, for
// example "./util" in require('./util'). Scanning is deliberately shallow: it
// locates require calls and nothing else, so any implementation can be swapped
// for a real parser behind the Scanner interface without touching graph
// construction or bundle emission.
//
// Two implementations are provided:
//
//   - Lexical (the default) tokenizes just enough JavaScript to skip comments,
//     string and template literals and regular expression literals. Calls that
//     cannot be resolved statically, such as require(name) or
//     require('./a', opts), are reported as a *SyntaxError instead of being
//     dropped.
//   - Pattern matches the raw text with a regular expression. It never fails,
//     but it also reports require calls that only appear inside comments or
//     unrelated string literals.
package scanner
