package ast

import (
	"fmt"

	"github.com/mna/raviast/lang/token"
)

func (*LocalStmt) BlockEnding() bool         { return false }
func (*ExprStmt) BlockEnding() bool          { return false }
func (*AssignStmt) BlockEnding() bool        { return false }
func (*IfStmt) BlockEnding() bool            { return false }
func (*WhileStmt) BlockEnding() bool         { return false }
func (*RepeatStmt) BlockEnding() bool        { return false }
func (*ForNumStmt) BlockEnding() bool        { return false }
func (*ForInStmt) BlockEnding() bool         { return false }
func (*DoStmt) BlockEnding() bool            { return false }
func (*FunctionStmt) BlockEnding() bool      { return false }
func (*LocalFunctionStmt) BlockEnding() bool { return false }
func (*LabelStmt) BlockEnding() bool         { return false }
func (*GotoStmt) BlockEnding() bool          { return false }
func (*BadStmt) BlockEnding() bool           { return false }

// ReturnStmt is the only statement that must be the last one in a block.
func (*ReturnStmt) BlockEnding() bool { return true }

type (
	// LocalStmt represents `local Names: Types = Exprs`.
	LocalStmt struct {
		Local   token.Pos
		Names   []string
		NamePos []token.Pos
		Types   []TypeAnnotation
		Assign  token.Pos // invalid if there is no '=' / Exprs
		Exprs   []Expr
	}

	// ExprStmt represents a suffixed expression (typically a function
	// call) used as a statement.
	ExprStmt struct {
		X Expr
	}

	// AssignStmt represents `Lhs = Rhs`, with one or more targets.
	AssignStmt struct {
		Lhs    []Expr
		Assign token.Pos
		Rhs    []Expr
	}

	// IfClause is a single `if`/`elseif` condition and its body.
	IfClause struct {
		If   token.Pos // position of the 'if' or 'elseif' keyword
		Cond Expr
		Then token.Pos
		Body *Block
	}

	// IfStmt represents `if Cond then Body (elseif Cond then Body)* (else
	// Else)? end`.
	IfStmt struct {
		Clauses []*IfClause
		Else    *Block // nil if there is no else clause
		End     token.Pos
	}

	// WhileStmt represents `while Cond do Body end`.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Do    token.Pos
		Body  *Block
		End   token.Pos
	}

	// RepeatStmt represents `repeat Body until Cond`.
	RepeatStmt struct {
		Repeat token.Pos
		Body   *Block
		Until  token.Pos
		Cond   Expr
	}

	// ForNumStmt represents the numeric `for Name = Start, Stop[, Step] do
	// Body end`.
	ForNumStmt struct {
		For               token.Pos
		Name              string
		NamePos           token.Pos
		Type              TypeAnnotation
		Start, Stop, Step Expr // Step is nil if absent
		Do                token.Pos
		Body              *Block
		End               token.Pos
	}

	// ForInStmt represents the generic `for Names in Exprs do Body end`.
	ForInStmt struct {
		For     token.Pos
		Names   []string
		NamePos []token.Pos
		Types   []TypeAnnotation
		In      token.Pos
		Exprs   []Expr
		Do      token.Pos
		Body    *Block
		End     token.Pos
	}

	// DoStmt represents a bare `do Body end` block.
	DoStmt struct {
		Do   token.Pos
		Body *Block
		End  token.Pos
	}

	// FunctionStmt represents `function Name(.Name|:Name)* (Params) Body
	// end`; Fn.Body holds the function itself, and Method is true if the
	// name chain ends with a `:Name` (in which case an implicit `self`
	// parameter is prepended to Fn.Params by the parser).
	FunctionStmt struct {
		Function token.Pos
		Names    []string // dotted/method name path, e.g. {"a","b","c"} for a.b:c
		NamePos  []token.Pos
		Method   bool
		Fn       *FunctionExpr
	}

	// LocalFunctionStmt represents `local function Name (Params) Body end`.
	LocalFunctionStmt struct {
		Local   token.Pos
		Name    string
		NamePos token.Pos
		Fn      *FunctionExpr
	}

	// ReturnStmt represents `return Exprs?`.
	ReturnStmt struct {
		Return token.Pos
		Exprs  []Expr
	}

	// LabelStmt represents `::Name::`.
	LabelStmt struct {
		Start   token.Pos
		Name    string
		NamePos token.Pos
		End     token.Pos

		// Symbol is filled in by the resolver's goto/label pass.
		Symbol any
	}

	// GotoStmt represents `goto Name`. IsBreak is true for the synthetic
	// goto generated to implement `break`, in which case Name is empty and
	// the resolver targets the innermost loop's break label.
	GotoStmt struct {
		Goto    token.Pos
		Name    string
		NamePos token.Pos
		IsBreak bool

		// Target is filled in by the resolver's goto/label pass.
		Target *LabelStmt
	}

	// BadStmt is a placeholder for a syntactically invalid statement: the
	// parser reports the error and skips ahead to the next statement
	// boundary instead of aborting the whole parse.
	BadStmt struct {
		Start, End token.Pos
	}
)

func (n *LocalStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "local", map[string]int{"names": len(n.Names)})
}
func (n *LocalStmt) Span() (start, end token.Pos) {
	end = n.Local + 5
	if len(n.Exprs) > 0 {
		_, end = n.Exprs[len(n.Exprs)-1].Span()
	}
	return n.Local, end
}
func (n *LocalStmt) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "exprstmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.X) }

func (n *AssignStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign", map[string]int{"lhs": len(n.Lhs), "rhs": len(n.Rhs)})
}
func (n *AssignStmt) Span() (start, end token.Pos) {
	start, _ = n.Lhs[0].Span()
	_, end = n.Rhs[len(n.Rhs)-1].Span()
	return start, end
}
func (n *AssignStmt) Walk(v Visitor) {
	for _, e := range n.Lhs {
		Walk(v, e)
	}
	for _, e := range n.Rhs {
		Walk(v, e)
	}
}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "if", map[string]int{"clauses": len(n.Clauses)})
}
func (n *IfStmt) Span() (start, end token.Pos) {
	return n.Clauses[0].If, n.End + 3
}
func (n *IfStmt) Walk(v Visitor) {
	for _, c := range n.Clauses {
		Walk(v, c.Cond)
		Walk(v, c.Body)
	}
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos)  { return n.While, n.End + 3 }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}

func (n *RepeatStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "repeat", nil) }
func (n *RepeatStmt) Span() (start, end token.Pos) {
	_, end = n.Cond.Span()
	return n.Repeat, end
}
func (n *RepeatStmt) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.Cond)
}

func (n *ForNumStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "for", nil) }
func (n *ForNumStmt) Span() (start, end token.Pos)  { return n.For, n.End + 3 }
func (n *ForNumStmt) Walk(v Visitor) {
	Walk(v, n.Start)
	Walk(v, n.Stop)
	if n.Step != nil {
		Walk(v, n.Step)
	}
	Walk(v, n.Body)
}

func (n *ForInStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "for-in", map[string]int{"names": len(n.Names)})
}
func (n *ForInStmt) Span() (start, end token.Pos) { return n.For, n.End + 3 }
func (n *ForInStmt) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
	Walk(v, n.Body)
}

func (n *DoStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "do", nil) }
func (n *DoStmt) Span() (start, end token.Pos)  { return n.Do, n.End + 3 }
func (n *DoStmt) Walk(v Visitor)                { Walk(v, n.Body) }

func (n *FunctionStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "function", map[string]int{"names": len(n.Names)})
}
func (n *FunctionStmt) Span() (start, end token.Pos) {
	_, end = n.Fn.Span()
	return n.Function, end
}
func (n *FunctionStmt) Walk(v Visitor) { Walk(v, n.Fn) }

func (n *LocalFunctionStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "local function", nil) }
func (n *LocalFunctionStmt) Span() (start, end token.Pos) {
	_, end = n.Fn.Span()
	return n.Local, end
}
func (n *LocalFunctionStmt) Walk(v Visitor) { Walk(v, n.Fn) }

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "return", map[string]int{"exprs": len(n.Exprs)})
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Return + 6
	if len(n.Exprs) > 0 {
		_, end = n.Exprs[len(n.Exprs)-1].Span()
	}
	return n.Return, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}

func (n *LabelStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "::"+n.Name+"::", nil) }
func (n *LabelStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *LabelStmt) Walk(_ Visitor)                {}

func (n *GotoStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "goto "+n.Name, nil) }
func (n *GotoStmt) Span() (start, end token.Pos) {
	return n.Goto, n.NamePos + token.Pos(len(n.Name))
}
func (n *GotoStmt) Walk(_ Visitor) {}

func (n *BadStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "bad", nil) }
func (n *BadStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadStmt) Walk(_ Visitor)                {}
