package token

import "strings"

// keywords maps lowercase keyword strings to token types.
// Keywords are case-insensitive; identifiers are not.
var keywords = map[string]Token{
	"select":   SELECT,
	"distinct": DISTINCT,
	"where":    WHERE,
	"as":       AS,
	"and":      AND,
	"or":       OR,
	"like":     LIKE,
	"not":      NOT,
	"limit":    LIMIT,
}

// LookupIdent returns the keyword token for an identifier, or IDENT.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}
