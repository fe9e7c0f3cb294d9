package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-report/payload"
)

// TokenType represents the type of a template token.
type TokenType int

const (
	TokenText TokenType = iota
	TokenVariable
	TokenHelper
	TokenOpen
	TokenElse
	TokenClose
	TokenComment
)

// Token is one lexical unit of a template.
type Token struct {
	Type TokenType
	// Name is the variable, helper or block name.
	Name string
	Args []Arg
	// Raw is the source text, including the braces.
	Raw string
}

// Arg is a directive argument: either a literal or a name to resolve.
type Arg struct {
	Name      string
	Literal   any
	IsLiteral bool
}

func (a Arg) String() string {
	if !a.IsLiteral {
		return a.Name
	}
	if s, ok := a.Literal.(string); ok {
		return strconv.Quote(s)
	}
	if a.Literal == nil {
		return "null"
	}
	return payload.String(a.Literal)
}

var tokenRegex = regexp.MustCompile(`\{\{\{([^}]*)\}\}\}|\{\{(!--[\s\S]*?--|[^}]*)\}\}`)

// Tokenize splits markup into text and directive tokens.
func Tokenize(input string) []Token {
	var tokens []Token
	lastEnd := 0

	for _, match := range tokenRegex.FindAllStringSubmatchIndex(input, -1) {
		if match[0] > lastEnd {
			tokens = append(tokens, Token{Type: TokenText, Raw: input[lastEnd:match[0]]})
		}

		raw := input[match[0]:match[1]]
		var content string
		if match[2] >= 0 {
			content = input[match[2]:match[3]]
		} else {
			content = input[match[4]:match[5]]
		}
		tokens = append(tokens, parseToken(strings.TrimSpace(content), raw))
		lastEnd = match[1]
	}

	if lastEnd < len(input) {
		tokens = append(tokens, Token{Type: TokenText, Raw: input[lastEnd:]})
	}
	return tokens
}

func parseToken(content, raw string) Token {
	if content == "" {
		return Token{Type: TokenVariable, Raw: raw}
	}

	switch content[0] {
	case '!':
		return Token{Type: TokenComment, Raw: raw}
	case '#':
		words := splitArgs(content[1:])
		if len(words) == 0 {
			return Token{Type: TokenOpen, Raw: raw}
		}
		return Token{Type: TokenOpen, Name: words[0], Args: parseArgs(words[1:]), Raw: raw}
	case '/':
		return Token{Type: TokenClose, Name: strings.TrimSpace(content[1:]), Raw: raw}
	}

	words := splitArgs(content)
	if len(words) == 1 && words[0] == "else" {
		return Token{Type: TokenElse, Raw: raw}
	}
	if len(words) == 1 {
		return Token{Type: TokenVariable, Name: words[0], Raw: raw}
	}
	return Token{Type: TokenHelper, Name: words[0], Args: parseArgs(words[1:]), Raw: raw}
}

// splitArgs splits on whitespace, keeping quoted strings together.
func splitArgs(content string) []string {
	var (
		words   []string
		current strings.Builder
		quote   rune
		inWord  bool
	)
	flush := func() {
		if inWord {
			words = append(words, current.String())
			current.Reset()
			inWord = false
		}
	}

	for _, r := range content {
		switch {
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
			current.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			inWord = true
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

func parseArgs(words []string) []Arg {
	args := make([]Arg, 0, len(words))
	for _, word := range words {
		args = append(args, parseArg(word))
	}
	return args
}

func parseArg(word string) Arg {
	if len(word) >= 2 {
		first, last := word[0], word[len(word)-1]
		if (first == '"' || first == '\'') && last == first {
			return Arg{Literal: word[1 : len(word)-1], IsLiteral: true}
		}
	}
	switch word {
	case "true":
		return Arg{Literal: true, IsLiteral: true}
	case "false":
		return Arg{Literal: false, IsLiteral: true}
	case "null", "undefined":
		return Arg{Literal: nil, IsLiteral: true}
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil && isNumericWord(word) {
		return Arg{Literal: f, IsLiteral: true}
	}
	return Arg{Name: word}
}

func isNumericWord(word string) bool {
	for i, r := range word {
		if (r >= '0' && r <= '9') || r == '.' || (i == 0 && r == '-') {
			continue
		}
		return false
	}
	return true
}
