package interp

import (
	"fmt"

	"github.com/aardvark-lang/aardvark/internal/ast"
	"github.com/aardvark-lang/aardvark/internal/diag"
	"github.com/aardvark-lang/aardvark/internal/token"
)

// Eval evaluates a parsed program. It mutates program in place (the
// inline resolver rewrites identifier/call nodes into resolved variants
// on first visit) and mutates i's internal tables; calling Eval again on
// the same *Interp continues in the same global/function namespace,
// while the resolved nodes skip lookup on re-entry.
func (i *Interp) Eval(program *ast.Node) (Value, error) {
	return i.eval(program)
}

func (i *Interp) eval(n *ast.Node) (Value, error) {
	switch n.Kind {
	case token.Program:
		return i.evalProgram(n)
	case token.Block:
		return i.evalBlock(n)
	case token.Declaration:
		return i.evalDeclaration(n)
	case token.Function:
		return noneValue(), nil
	case token.Assignment:
		return i.evalAssignment(n)
	case token.Identifier:
		if err := i.lookupVariable(n); err != nil {
			return Value{}, err
		}
		return i.readVariable(n), nil
	case token.KnownLocal, token.KnownGlobal:
		return i.readVariable(n), nil
	case token.ReturnStmt:
		if len(n.Children) == 1 {
			return i.eval(n.Children[0])
		}
		return voidValue(), nil
	case token.FunctionCall:
		if err := i.lookupFunction(n); err != nil {
			return Value{}, err
		}
		return i.eval(n)
	case token.KnownCall:
		return i.callUserFunction(n)
	case token.StandardCall:
		return i.callStandardFunction(n)
	case token.If_:
		return i.evalIf(n)
	case token.While_:
		return i.evalWhile(n)
	case token.Integer:
		return intValue(n.Integer), nil
	case token.String:
		return strValue(n.Str), nil
	case token.Plus, token.Minus, token.Multiply, token.Divide,
		token.Equal, token.NotEqual, token.Greater, token.Less,
		token.GreaterEqual, token.LessEqual:
		return i.evalBinary(n)
	case token.Not:
		return i.evalNot(n)
	default:
		return Value{}, diag.Errorf(diag.InvalidSyntaxInEval, "Error: Invalid syntax item for eval()")
	}
}

// evalProgram runs the reference's two-pass program evaluation: first
// register every top-level declaration as a global and every function in
// the function table (removing declarations from the child list so the
// second pass doesn't re-run their initializers), then evaluate the
// remaining children in order, short-circuiting on the first non-none
// result (a propagated top-level return).
func (i *Interp) evalProgram(n *ast.Node) (Value, error) {
	remaining := n.Children[:0:0]
	for _, child := range n.Children {
		switch child.Kind {
		case token.Declaration:
			if err := i.registerGlobal(child); err != nil {
				return Value{}, err
			}
		case token.Function:
			if err := i.registerFunction(child); err != nil {
				return Value{}, err
			}
			remaining = append(remaining, child)
		default:
			remaining = append(remaining, child)
		}
	}
	n.Children = remaining

	result := noneValue()
	for _, child := range n.Children {
		v, err := i.eval(child)
		if err != nil {
			return Value{}, err
		}
		result = v
		if result.Kind != None {
			return result, nil
		}
	}
	return result, nil
}

func (i *Interp) registerGlobal(decl *ast.Node) error {
	if len(i.global) >= i.opts.maxGlobals {
		return diag.Errorf(diag.ResourceLimitExceeded, "Error: Too many global variables")
	}
	initial := noneValue()
	if len(decl.Children) == 2 {
		v, err := i.eval(decl.Children[1])
		if err != nil {
			return err
		}
		initial = v
	}
	i.global = append(i.global, scopeEntry{ident: decl.Children[0].Ident, slot: int64(len(i.stack))})
	return i.pushStack(initial)
}

// pushStack appends to the value stack, enforcing the configured ceiling
// the way stackPush's assert does in the reference.
func (i *Interp) pushStack(v Value) error {
	if len(i.stack) >= i.opts.maxStack {
		return diag.Errorf(diag.ResourceLimitExceeded, "Error: Value stack overflow")
	}
	i.stack = append(i.stack, v)
	return nil
}

func (i *Interp) registerFunction(fn *ast.Node) error {
	if len(i.functions) >= i.opts.maxFunctions {
		return diag.Errorf(diag.ResourceLimitExceeded, "Error: Too many functions")
	}
	i.functions = append(i.functions, funcEntry{ident: fn.Children[0].Ident, node: fn})
	return nil
}

// evalBlock saves and restores stack/scope counts around its children,
// so declarations made inside the block don't leak past it.
func (i *Interp) evalBlock(n *ast.Node) (Value, error) {
	savedStack := len(i.stack)
	savedScope := len(i.local)
	result := noneValue()
	for _, child := range n.Children {
		v, err := i.eval(child)
		if err != nil {
			return Value{}, err
		}
		result = v
		if result.Kind != None {
			break
		}
	}
	i.stack = i.stack[:savedStack]
	i.local = i.local[:savedScope]
	return result, nil
}

func (i *Interp) evalDeclaration(n *ast.Node) (Value, error) {
	result := noneValue()
	if len(n.Children) == 2 {
		v, err := i.eval(n.Children[1])
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	ident := n.Children[0]
	if ident.Kind == token.Identifier {
		if err := i.declareLocal(ident); err != nil {
			return Value{}, err
		}
	}
	if err := i.pushStack(result); err != nil {
		return Value{}, err
	}
	return noneValue(), nil
}

// declareLocal mutates ident in place, matching the resolver's
// in-place-rewrite invariant: once declared, re-evaluating the same
// identifier node (e.g. within a loop body) hits the fast KnownLocal path.
func (i *Interp) declareLocal(ident *ast.Node) error {
	if len(i.local) >= i.opts.maxLocals {
		return diag.Errorf(diag.ResourceLimitExceeded, "Error: Too many local variables")
	}
	ident.Kind = token.KnownLocal
	ident.Slot = int64(len(i.stack) - i.frameStart)
	i.local = append(i.local, scopeEntry{ident: ident.Ident, slot: ident.Slot})
	return nil
}

func (i *Interp) evalAssignment(n *ast.Node) (Value, error) {
	lhs := n.Children[0]
	if lhs.Kind == token.Identifier {
		if err := i.lookupVariable(lhs); err != nil {
			return Value{}, err
		}
	}
	v, err := i.eval(n.Children[1])
	if err != nil {
		return Value{}, err
	}
	i.writeVariable(lhs, v)
	return noneValue(), nil
}

func (i *Interp) readVariable(n *ast.Node) Value {
	if n.Kind == token.KnownGlobal {
		return i.stack[n.Slot]
	}
	return i.stack[i.frameStart+int(n.Slot)]
}

func (i *Interp) writeVariable(n *ast.Node, v Value) {
	if n.Kind == token.KnownGlobal {
		i.stack[n.Slot] = v
		return
	}
	i.stack[i.frameStart+int(n.Slot)] = v
}

// lookupVariable is the resolver: on first visit it searches local scope
// newest-first, then global scope newest-first, and rewrites n's Kind
// and Slot so later visits skip straight to readVariable/writeVariable.
func (i *Interp) lookupVariable(n *ast.Node) error {
	for idx := len(i.local) - 1; idx >= 0; idx-- {
		if i.local[idx].ident == n.Ident {
			n.Kind = token.KnownLocal
			n.Slot = i.local[idx].slot
			return nil
		}
	}
	for idx := len(i.global) - 1; idx >= 0; idx-- {
		if i.global[idx].ident == n.Ident {
			n.Kind = token.KnownGlobal
			n.Slot = i.global[idx].slot
			return nil
		}
	}
	return diag.Errorf(diag.VariableNotInScope, "Error: Variable not in scope")
}

// lookupFunction is the resolver for call nodes: print is recognized by
// its fixed fingerprint before the function table is searched; it is not
// an entry in the function table. This means a user-defined function
// named print is shadowed by the built-in rather than replacing it.
func (i *Interp) lookupFunction(n *ast.Node) error {
	ident := n.Children[0].Ident
	if ident == token.PrintFingerprint {
		n.Kind = token.StandardCall
		return nil
	}
	for _, f := range i.functions {
		if f.ident == ident {
			n.Kind = token.KnownCall
			n.Func = f.node
			return nil
		}
	}
	return diag.Errorf(diag.FunctionNotFound, "Error: Function not found")
}

// callUserFunction evaluates arguments right-to-left onto the stack (so
// argument i ends up at frame-relative slot -(i+1)), binds parameters to
// those negative slots, swaps in a fresh frame pointer, evaluates the
// body, then unwinds the frame, the argument slots and the parameter
// scope entries.
func (i *Interp) callUserFunction(n *ast.Node) (Value, error) {
	fn := n.Func
	argList := n.Children[1]
	base := len(i.stack)
	for idx := len(argList.Children) - 1; idx >= 0; idx-- {
		v, err := i.eval(argList.Children[idx])
		if err != nil {
			return Value{}, err
		}
		if err := i.pushStack(v); err != nil {
			return Value{}, err
		}
	}

	paramList := fn.Children[1]
	for idx, param := range paramList.Children {
		if len(i.local) >= i.opts.maxLocals {
			return Value{}, diag.Errorf(diag.ResourceLimitExceeded, "Error: Too many local variables")
		}
		i.local = append(i.local, scopeEntry{ident: param.Ident, slot: -int64(idx + 1)})
	}

	savedFrameStart := i.frameStart
	i.frameStart = len(i.stack)

	result, err := i.eval(fn.Children[2])

	i.local = i.local[:len(i.local)-len(paramList.Children)]
	i.stack = i.stack[:base]
	i.frameStart = savedFrameStart

	if err != nil {
		return Value{}, err
	}
	return result, nil
}

// callStandardFunction dispatches a resolved STANDARD_CALL. print is the
// only built-in.
func (i *Interp) callStandardFunction(n *ast.Node) (Value, error) {
	ident := n.Children[0].Ident
	switch ident {
	case token.PrintFingerprint:
		return i.builtinPrint(n.Children[1])
	default:
		return Value{}, diag.Errorf(diag.UnknownStandardFunction, "Error: Unknown standard function")
	}
}

// builtinPrint evaluates each argument left-to-right, writes it
// space-separated (integers as decimal, strings raw, none/void as
// "None"), then a trailing newline. Writing to a nil output silently
// discards, which is handy for tests that only assert on the returned
// Value.
func (i *Interp) builtinPrint(argList *ast.Node) (Value, error) {
	if i.output == nil {
		for _, arg := range argList.Children {
			if _, err := i.eval(arg); err != nil {
				return Value{}, err
			}
		}
		return noneValue(), nil
	}
	for idx, arg := range argList.Children {
		if idx > 0 {
			fmt.Fprint(i.output, " ")
		}
		v, err := i.eval(arg)
		if err != nil {
			return Value{}, err
		}
		switch v.Kind {
		case Integer:
			fmt.Fprintf(i.output, "%d", v.Integer)
		case String:
			fmt.Fprint(i.output, v.Str)
		default:
			fmt.Fprint(i.output, "None")
		}
	}
	fmt.Fprintln(i.output)
	return noneValue(), nil
}

// evalIf walks (condition, branch) pairs in order; an odd child count
// means the trailing child is an unconditional else branch.
func (i *Interp) evalIf(n *ast.Node) (Value, error) {
	children := n.Children
	pairCount := len(children) &^ 1
	for idx := 0; idx < pairCount; idx += 2 {
		cond, err := i.evalCondition(children[idx])
		if err != nil {
			return Value{}, err
		}
		if cond != 0 {
			return i.eval(children[idx+1])
		}
	}
	if len(children)%2 == 1 {
		return i.eval(children[len(children)-1])
	}
	return noneValue(), nil
}

func (i *Interp) evalWhile(n *ast.Node) (Value, error) {
	cond, body := n.Children[0], n.Children[1]
	result := noneValue()
	for {
		c, err := i.evalCondition(cond)
		if err != nil {
			return Value{}, err
		}
		if c == 0 {
			return result, nil
		}
		v, err := i.eval(body)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != None {
			return v, nil
		}
	}
}

// evalCondition evaluates an if/while condition and extracts its integer
// part, the same way binary operators do.
func (i *Interp) evalCondition(n *ast.Node) (int64, error) {
	v, err := i.eval(n)
	if err != nil {
		return 0, err
	}
	return i.asInteger(v)
}

// asInteger extracts the integer payload of v. The reference reads
// `.integer` regardless of the union's actual tag, which is undefined
// behavior on a string or none operand. Here that case is a fatal error
// instead.
func (i *Interp) asInteger(v Value) (int64, error) {
	if v.Kind != Integer {
		return 0, diag.Errorf(diag.InvalidSyntaxInEval, "Error: Expected an integer operand")
	}
	return v.Integer, nil
}

func (i *Interp) evalBinary(n *ast.Node) (Value, error) {
	lv, err := i.eval(n.Children[0])
	if err != nil {
		return Value{}, err
	}
	l, err := i.asInteger(lv)
	if err != nil {
		return Value{}, err
	}
	rv, err := i.eval(n.Children[1])
	if err != nil {
		return Value{}, err
	}
	r, err := i.asInteger(rv)
	if err != nil {
		return Value{}, err
	}
	switch n.Kind {
	case token.Plus:
		return intValue(l + r), nil
	case token.Minus:
		return intValue(l - r), nil
	case token.Multiply:
		return intValue(l * r), nil
	case token.Divide:
		if r == 0 {
			return Value{}, diag.Errorf(diag.InvalidSyntaxInEval, "Error: Division by zero")
		}
		return intValue(l / r), nil
	case token.Equal:
		return boolValue(l == r), nil
	case token.NotEqual:
		return boolValue(l != r), nil
	case token.Greater:
		return boolValue(l > r), nil
	case token.Less:
		return boolValue(l < r), nil
	case token.GreaterEqual:
		return boolValue(l >= r), nil
	case token.LessEqual:
		return boolValue(l <= r), nil
	default:
		return Value{}, diag.Errorf(diag.InvalidSyntaxInEval, "Error: Invalid syntax item for eval()")
	}
}

func (i *Interp) evalNot(n *ast.Node) (Value, error) {
	v, err := i.eval(n.Children[0])
	if err != nil {
		return Value{}, err
	}
	operand, err := i.asInteger(v)
	if err != nil {
		return Value{}, err
	}
	return boolValue(operand == 0), nil
}
