// Package cssparse implements the recoverable, top-down CSS 3 parser. It
// consumes a csslex.Lexer token stream and produces a CST (concrete syntax
// tree) of CSTNode values — the throwaway intermediate the interpreter
// walks to build the CSSOM. The CST is allocated for the lifetime of one
// parse and is never retained past the interpreter pass.
//
// Spec references:
// - CSS Syntax Level 3 §5 Parsing
// - CSS 2.1 §4.1.7 Rule sets, declaration blocks, and selectors (grounding
//   for the arity-based shape the interpreter later checks)
package cssparse

import "github.com/gocssom/cssom/internal/csslex"

// NodeType tags a CSTNode with the grammar production that built it. The
// interpreter dispatches on this, then on the arity/shape of the node's
// children, exactly as ph-css's CSSNode-to-CSSOM pass does.
type NodeType int

const (
	NStylesheet NodeType = iota
	NCharset
	NImport
	NNamespace
	NMediaList
	NMediaQuery
	NMediaExpression
	NStyleRule
	NSelectorList
	NSelector
	NSimpleSelector
	NAttributeSelector
	NPseudo
	NNth
	NHostBody
	NNegation
	NDeclarationList
	NDeclaration
	NImportant
	NExpression
	NExpressionMember
	NFunction
	NCalc
	NCalcSum
	NCalcProduct
	NLineNames
	NURI
	NMediaRule
	NSupportsRule
	NSupportsCondition
	NSupportsDeclaration
	NSupportsOperator
	NSupportsNegation
	NLayerRule
	NLayerNameList
	NKeyframesRule
	NKeyframeSelectorList
	NPageRule
	NPageSelector
	NPageMarginBox
	NUnknownAtRule
	NIdent
	NNumber
	NString
)

// CSTNode is the uniform tagged tree node the parser produces and the
// interpreter consumes. It never outlives a single parse.
type CSTNode struct {
	Type     NodeType
	Text     string // resolved image, when the node wraps a single token
	Value    any    // parser-attached structured value (operator text, flags, ...)
	Children []*CSTNode
	Parent   *CSTNode

	FirstToken *csslex.Token
	LastToken  *csslex.Token
}

// NewNode creates a node and wires up parent back-links for children
// passed at construction time.
func NewNode(t NodeType, children ...*CSTNode) *CSTNode {
	n := &CSTNode{Type: t, Children: children}
	for _, c := range children {
		if c != nil {
			c.Parent = n
		}
	}
	return n
}

// Append adds a child, wiring its parent back-link.
func (n *CSTNode) Append(c *CSTNode) {
	if c == nil {
		return
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Child returns the i-th child, or nil if out of range.
func (n *CSTNode) Child(i int) *CSTNode {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Arity is len(n.Children); the interpreter's shape checks are expressed
// as switches over this value.
func (n *CSTNode) Arity() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}
