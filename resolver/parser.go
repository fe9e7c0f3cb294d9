package resolver

// Block kinds understood by the parser. Any other "#name" opener is left
// unresolved.
const (
	BlockIf            = "if"
	BlockUnless        = "unless"
	BlockEach          = "each"
	BlockEachWithIndex = "eachWithIndex"
	BlockCompare       = "compare"
)

var blockKinds = map[string]bool{
	BlockIf:            true,
	BlockUnless:        true,
	BlockEach:          true,
	BlockEachWithIndex: true,
	BlockCompare:       true,
}

// Node is an element of the parsed template tree.
type Node interface {
	node()
}

// TextNode is literal markup.
type TextNode struct {
	Text string
}

// VariableNode substitutes a value: {{name}}.
type VariableNode struct {
	Name string
	Raw  string
}

// HelperNode calls a helper: {{helper key args...}}.
type HelperNode struct {
	Name string
	Args []Arg
	Raw  string
}

// BlockNode is a block directive with an optional else branch.
type BlockNode struct {
	Kind string
	Args []Arg
	Body []Node
	Else []Node
	Raw  string
}

// InvalidNode is directive syntax that cannot be resolved: unknown blocks,
// stray closers or else markers, unclosed openers.
type InvalidNode struct {
	Raw    string
	Reason string
}

func (TextNode) node()     {}
func (VariableNode) node() {}
func (HelperNode) node()   {}
func (BlockNode) node()    {}
func (InvalidNode) node()  {}

// Parse builds a node tree from tokens. It never fails: malformed structure
// becomes InvalidNode entries and the enclosed content is kept in place.
func Parse(tokens []Token) []Node {
	p := &parser{tokens: tokens}
	return p.parseTop()
}

type parser struct {
	tokens []Token
	pos    int
	open   []string
}

func (p *parser) parseTop() []Node {
	var nodes []Node
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++
		switch tok.Type {
		case TokenClose:
			nodes = append(nodes, InvalidNode{Raw: tok.Raw, Reason: "unmatched closing directive"})
		case TokenElse:
			nodes = append(nodes, InvalidNode{Raw: tok.Raw, Reason: "else outside of a block"})
		default:
			nodes = append(nodes, p.parseToken(tok)...)
		}
	}
	return nodes
}

func (p *parser) parseToken(tok Token) []Node {
	switch tok.Type {
	case TokenText:
		return []Node{TextNode{Text: tok.Raw}}
	case TokenComment:
		return nil
	case TokenVariable:
		return []Node{VariableNode{Name: tok.Name, Raw: tok.Raw}}
	case TokenHelper:
		return []Node{HelperNode{Name: tok.Name, Args: tok.Args, Raw: tok.Raw}}
	case TokenOpen:
		if !blockKinds[tok.Name] {
			return []Node{InvalidNode{Raw: tok.Raw, Reason: "unknown block " + tok.Name}}
		}
		return p.parseBlock(tok)
	default:
		return []Node{InvalidNode{Raw: tok.Raw, Reason: "unexpected directive"}}
	}
}

// parseBlock consumes tokens up to the matching closer. When the block is
// never closed the opener becomes invalid and its content is spliced back.
func (p *parser) parseBlock(open Token) []Node {
	p.open = append(p.open, open.Name)
	defer func() { p.open = p.open[:len(p.open)-1] }()

	var (
		body     []Node
		elseBody []Node
		elseTok  *Token
	)
	appendNode := func(nodes ...Node) {
		if elseTok != nil {
			elseBody = append(elseBody, nodes...)
			return
		}
		body = append(body, nodes...)
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.Type {
		case TokenClose:
			if tok.Name == open.Name {
				return []Node{BlockNode{Kind: open.Name, Args: open.Args, Body: body, Else: elseBody, Raw: open.Raw}}
			}
			if p.isOpen(tok.Name) {
				// closes an enclosing block; leave it for the caller
				p.pos--
				return p.unclosed(open, body, elseTok, elseBody)
			}
			appendNode(InvalidNode{Raw: tok.Raw, Reason: "unmatched closing directive"})
		case TokenElse:
			if elseTok == nil {
				t := tok
				elseTok = &t
				continue
			}
			appendNode(InvalidNode{Raw: tok.Raw, Reason: "duplicate else"})
		default:
			appendNode(p.parseToken(tok)...)
		}
	}
	return p.unclosed(open, body, elseTok, elseBody)
}

func (p *parser) unclosed(open Token, body []Node, elseTok *Token, elseBody []Node) []Node {
	nodes := []Node{InvalidNode{Raw: open.Raw, Reason: "unclosed block " + open.Name}}
	nodes = append(nodes, body...)
	if elseTok != nil {
		nodes = append(nodes, InvalidNode{Raw: elseTok.Raw, Reason: "else outside of a block"})
		nodes = append(nodes, elseBody...)
	}
	return nodes
}

func (p *parser) isOpen(name string) bool {
	// the innermost entry is the block being parsed
	for i := len(p.open) - 2; i >= 0; i-- {
		if p.open[i] == name {
			return true
		}
	}
	return false
}
