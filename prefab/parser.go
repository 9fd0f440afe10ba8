package prefab

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/scenekit/vmath"
)

// ErrNoEntities is returned when a scene source contains no entity blocks
var ErrNoEntities = errors.New("no entities found")

// legacyKeyword is accepted before an entity header for backward
// compatibility with older content files; it changes nothing.
const legacyKeyword = "Entity"

// prefabKey introduces a base-prefab reference inside an entity body
const prefabKey = "prefab"

// Parser is a recursive-descent consumer of the token stream.
// Parsing is fail-fast: the first error is sticky and every later
// call short-circuits; partial trees are dropped, never returned.
type Parser struct {
	file     string
	lexer    *Lexer
	curToken Token
	peekTok  Token
	err      error
}

func NewParser(file string, input []byte) *Parser {
	l := NewLexer(file, input)
	p := &Parser{
		file:  file,
		lexer: l,
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single entity block from source. Trailing content
// after the block is an error: prefab files hold exactly one template.
func Parse(file string, input []byte) (*Prefab, error) {
	p := NewParser(file, input)
	root := p.parseEntity(0)
	if p.err != nil {
		return nil, p.err
	}
	if p.curToken.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after entity block", p.curToken)
	}
	return root, nil
}

// ParseScene parses a sequence of top-level entity blocks until end of
// input. Zero entities is itself an error.
func ParseScene(file string, input []byte) ([]*Prefab, error) {
	p := NewParser(file, input)
	var roots []*Prefab
	for p.curToken.Type != TokenEOF {
		root := p.parseEntity(0)
		if p.err != nil {
			return nil, p.err
		}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%s: %w", file, ErrNoEntities)
	}
	return roots, nil
}

// Err returns the sticky error of the most recent parse, if any
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) nextToken() {
	p.curToken = p.peekTok
	p.peekTok = p.lexer.Next()
}

// errorf records the first error with source position and flips the
// parser into its panic state
func (p *Parser) errorf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	msg := fmt.Sprintf(format, args...)
	p.err = fmt.Errorf("%s:%d:%d: %s", p.file, p.curToken.Line, p.curToken.Col, msg)
	return p.err
}

// failed reports the panic state, also promoting a pending lexer error
// token into the parser error
func (p *Parser) failed() bool {
	if p.err != nil {
		return true
	}
	if p.curToken.Type == TokenError {
		p.err = errors.New(p.curToken.Literal)
		return true
	}
	return false
}

func (p *Parser) expect(typ TokenType, what string) bool {
	if p.failed() {
		return false
	}
	if p.curToken.Type != typ {
		p.errorf("expected %s, got %s", what, p.curToken)
		return false
	}
	p.nextToken()
	return true
}

// parseEntity parses one entity block:
//
//	["Entity"] [name] ["@" "(" x "," y ")"] "{" body "}"
//
// The legacy "Entity" keyword is optional; header detection works
// identically with or without it.
func (p *Parser) parseEntity(depth int) *Prefab {
	if p.failed() {
		return nil
	}

	node := &Prefab{}

	if p.curToken.Type == TokenIdent && p.curToken.Literal == legacyKeyword {
		p.nextToken()
	}
	if p.curToken.Type == TokenIdent {
		node.Name = p.curToken.Literal
		p.nextToken()
	}
	if p.curToken.Type == TokenAt {
		p.nextToken()
		if !p.parsePosition(node) {
			return nil
		}
	}
	if !p.expect(TokenLBrace, "'{'") {
		return nil
	}

	for {
		if p.failed() {
			return nil
		}
		switch p.curToken.Type {
		case TokenRBrace:
			p.nextToken()
			return node

		case TokenEOF:
			p.errorf("unexpected end of input, missing '}'")
			return nil

		case TokenIdent:
			if p.peekTok.Type == TokenColon {
				if !p.parseBodyAssign(node) {
					return nil
				}
				continue
			}
			// Identifier not followed by ':' opens a child block
			fallthrough

		case TokenLBrace, TokenAt:
			if len(node.Children) >= MaxChildren {
				p.errorf("too many children (limit %d)", MaxChildren)
				return nil
			}
			child := p.parseEntity(depth + 1)
			if child == nil {
				return nil
			}
			node.Children = append(node.Children, child)

		default:
			p.errorf("unexpected %s in entity body", p.curToken)
			return nil
		}
	}
}

// parsePosition parses "(" number "," number ")" after '@'
func (p *Parser) parsePosition(node *Prefab) bool {
	if !p.expect(TokenLParen, "'(' after '@'") {
		return false
	}
	x, ok := p.parseNumber()
	if !ok {
		return false
	}
	if !p.expect(TokenComma, "','") {
		return false
	}
	y, ok := p.parseNumber()
	if !ok {
		return false
	}
	if !p.expect(TokenRParen, "')'") {
		return false
	}
	node.Position = vmath.Vec2{X: x, Y: y}
	return true
}

// parseBodyAssign handles `ident ":" ...` inside an entity body:
// either a base-prefab reference or a component config
func (p *Parser) parseBodyAssign(node *Prefab) bool {
	name := p.curToken.Literal
	p.nextToken() // name
	p.nextToken() // colon

	if name == prefabKey {
		if p.curToken.Type != TokenString {
			p.errorf("expected string after 'prefab:', got %s", p.curToken)
			return false
		}
		node.Base = p.curToken.Literal
		p.nextToken()
		return true
	}

	if len(node.Components) >= MaxComponents {
		p.errorf("too many components (limit %d)", MaxComponents)
		return false
	}

	cfg := ComponentConfig{Name: name}
	if p.curToken.Type == TokenLBrace {
		if !p.parseFieldBlock(&cfg) {
			return false
		}
	} else {
		// Single-scalar shorthand normalizes to one field named "value"
		val, ok := p.parseValue()
		if !ok {
			return false
		}
		cfg.Fields = append(cfg.Fields, FieldAssign{Name: ShorthandField, Value: val})
	}
	node.Components = append(node.Components, cfg)
	return true
}

// parseFieldBlock parses "{" (name ":" value [","])* "}"
func (p *Parser) parseFieldBlock(cfg *ComponentConfig) bool {
	p.nextToken() // consume {

	for p.curToken.Type != TokenRBrace {
		if p.failed() {
			return false
		}
		if p.curToken.Type == TokenEOF {
			p.errorf("unexpected end of input in component block")
			return false
		}
		if p.curToken.Type != TokenIdent {
			p.errorf("expected field name, got %s", p.curToken)
			return false
		}
		if len(cfg.Fields) >= MaxFields {
			p.errorf("too many fields in component %q (limit %d)", cfg.Name, MaxFields)
			return false
		}
		fieldName := p.curToken.Literal
		p.nextToken()
		if !p.expect(TokenColon, "':' after field name") {
			return false
		}
		val, ok := p.parseValue()
		if !ok {
			return false
		}
		cfg.Fields = append(cfg.Fields, FieldAssign{Name: fieldName, Value: val})

		if p.curToken.Type == TokenComma {
			p.nextToken()
		}
	}
	p.nextToken() // consume }
	return true
}

// parseValue parses string | identifier | number | vector
func (p *Parser) parseValue() (Value, bool) {
	if p.failed() {
		return Value{}, false
	}
	switch p.curToken.Type {
	case TokenString:
		v := StringValue(p.curToken.Literal)
		p.nextToken()
		return v, true

	case TokenIdent:
		lit := p.curToken.Literal
		p.nextToken()
		switch lit {
		case "true":
			return BoolValue(true), true
		case "false":
			return BoolValue(false), true
		}
		return IdentValue(lit), true

	case TokenInteger:
		v := IntValue(p.curToken.Int)
		p.nextToken()
		return v, true

	case TokenFloat:
		v := FloatValue(p.curToken.Float)
		p.nextToken()
		return v, true

	case TokenLParen:
		return p.parseVector()
	}
	p.errorf("expected value, got %s", p.curToken)
	return Value{}, false
}

// parseVector parses "(" number ("," number){1,3} ")"; any arity
// outside 2..4 is a parse error
func (p *Parser) parseVector() (Value, bool) {
	p.nextToken() // consume (

	var comps [4]float64
	n := 0
	for {
		if n >= 4 {
			p.errorf("vector has too many components (max 4)")
			return Value{}, false
		}
		f, ok := p.parseNumber()
		if !ok {
			return Value{}, false
		}
		comps[n] = f
		n++

		if p.curToken.Type == TokenComma {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(TokenRParen, "')' to close vector") {
		return Value{}, false
	}
	switch n {
	case 2:
		return Vec2Value(vmath.Vec2{X: comps[0], Y: comps[1]}), true
	case 3:
		return Vec3Value(vmath.Vec3{X: comps[0], Y: comps[1], Z: comps[2]}), true
	case 4:
		return Vec4Value(vmath.Vec4{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}), true
	}
	p.errorf("vector needs 2 to 4 components, got %d", n)
	return Value{}, false
}

// parseNumber accepts an integer or float token as float64
func (p *Parser) parseNumber() (float64, bool) {
	if p.failed() {
		return 0, false
	}
	switch p.curToken.Type {
	case TokenInteger:
		f := float64(p.curToken.Int)
		p.nextToken()
		return f, true
	case TokenFloat:
		f := p.curToken.Float
		p.nextToken()
		return f, true
	}
	p.errorf("expected number, got %s", p.curToken)
	return 0, false
}
